// Package ocr extracts the text of an image using Tesseract.
//
// Before recognition the image is reduced to grayscale and passed through an
// occlusion mask (threshold, invert, dilate, bitwise AND). The mask is white
// on the page and on a thin rim around each dark stroke, so the AND keeps the
// page and stroke edges and blacks out the interior of large dark areas.
// Tesseract then runs on the masked image with the English language data.
//
// # Prerequisites
//
// Tesseract and its English data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// A non-default traineddata directory can be set with IMGSEG_TESSDATA_PREFIX.
//
// # Builds Without CGO
//
// gosseract needs cgo. When cgo is disabled the Tesseract recognizer is
// replaced by a stub whose Recognize returns ErrOCRNotEnabled; segmentation
// and the report still work, the text is just empty.
//
// # Error Handling
//
// Extract returns an error for unreadable or unsupported files and for
// engine failures. It never panics on bad input. Callers that want the
// "empty text on failure" behavior apply it themselves.
package ocr
