package ocr

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/image-segmenter/internal/imaging"
)

// Language is the Tesseract language used for every recognition.
const Language = "eng"

// ErrOCRNotEnabled is returned when the binary was built without the
// Tesseract bindings (cgo disabled).
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with CGO_ENABLED=1 and Tesseract installed")

// Recognizer turns a prepared image into text.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// ImageLoader provides decoded images by path. *imaging.ImageCache implements it.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// TextResult is the outcome of one extraction.
type TextResult struct {
	// Text is the raw recognizer output, without post-processing.
	Text string

	// Masked is the number of pixels blacked out by the occlusion mask.
	Masked int
}

// Extractor masks an image and runs OCR on it.
type Extractor struct {
	// TextThreshold is the gray level at or below which a pixel counts as ink.
	TextThreshold uint8

	// DilateIterations is the number of 3x3 dilation passes over the mask.
	DilateIterations int

	loader     ImageLoader
	recognizer Recognizer
}

// NewExtractor creates an Extractor reading images through loader and
// recognizing text with recognizer.
func NewExtractor(loader ImageLoader, recognizer Recognizer, threshold uint8, iterations int) *Extractor {
	return &Extractor{
		TextThreshold:    threshold,
		DilateIterations: iterations,
		loader:           loader,
		recognizer:       recognizer,
	}
}

// Extract loads the image at path and returns its text.
func (e *Extractor) Extract(path string) (*TextResult, error) {
	img, err := e.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	return e.ExtractImage(img)
}

// ExtractImage returns the text of an already decoded image.
//
// # Preprocessing
//
//  1. Grayscale conversion (BT.601 luma)
//  2. Inverse binary threshold at TextThreshold
//  3. Invert the threshold result
//  4. Dilate DilateIterations times with a 3x3 kernel
//  5. Bitwise AND of the grayscale image with the dilated mask
//
// The masked grayscale image is what the recognizer sees.
func (e *Extractor) ExtractImage(img image.Image) (*TextResult, error) {
	masked, occlusion := Prepare(img, e.TextThreshold, e.DilateIterations)

	text, err := e.recognizer.Recognize(masked)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	return &TextResult{
		Text:   text,
		Masked: imaging.CountZero(occlusion),
	}, nil
}

// Prepare returns the masked grayscale image fed to OCR together with the
// occlusion mask that produced it.
func Prepare(img image.Image, threshold uint8, iterations int) (masked, occlusion *image.Gray) {
	gray := imaging.Grayscale(img)
	occlusion = imaging.OcclusionMask(gray, threshold, iterations)
	return imaging.ApplyMask(gray, occlusion), occlusion
}
