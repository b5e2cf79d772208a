//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text with the native Tesseract engine via gosseract.
type Tesseract struct {
	// TessdataPrefix is the directory holding traineddata files.
	// Empty uses Tesseract's compiled-in default.
	TessdataPrefix string
}

// NewTesseract creates a recognizer. A client is created per call to
// Recognize, so the value is safe to share.
func NewTesseract(tessdataPrefix string) *Tesseract {
	return &Tesseract{TessdataPrefix: tessdataPrefix}
}

// Recognize encodes img as PNG and runs Tesseract on it with the English
// language data and the default page segmentation mode.
func (t *Tesseract) Recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if t.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.TessdataPrefix); err != nil {
			return "", fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}

	if err := client.SetLanguage(Language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// Version returns the version of the linked Tesseract library.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
