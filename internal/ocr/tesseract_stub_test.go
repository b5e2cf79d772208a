//go:build !cgo

package ocr

import (
	"errors"
	"image"
	"testing"
)

func TestStubRecognizeReturnsError(t *testing.T) {
	_, err := NewTesseract("").Recognize(image.NewGray(image.Rect(0, 0, 4, 4)))
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
}

func TestStubExtractorReturnsError(t *testing.T) {
	ex := NewExtractor(nil, NewTesseract(""), 110, 2)
	_, err := ex.ExtractImage(image.NewGray(image.Rect(0, 0, 4, 4)))
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
}
