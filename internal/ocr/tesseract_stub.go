//go:build !cgo

package ocr

import "image"

// Tesseract is the stub recognizer used when cgo is disabled.
// Recognize always returns ErrOCRNotEnabled.
type Tesseract struct {
	TessdataPrefix string
}

// NewTesseract returns the stub recognizer.
func NewTesseract(tessdataPrefix string) *Tesseract {
	return &Tesseract{TessdataPrefix: tessdataPrefix}
}

// Recognize returns ErrOCRNotEnabled.
func (t *Tesseract) Recognize(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}

// Version reports that no engine is linked.
func Version() string {
	return "unavailable"
}
