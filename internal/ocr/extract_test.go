package ocr

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-segmenter/internal/imaging"
)

// fakeRecognizer records the image it was given and returns a fixed result.
type fakeRecognizer struct {
	text  string
	err   error
	calls int
	seen  image.Image
}

func (f *fakeRecognizer) Recognize(img image.Image) (string, error) {
	f.calls++
	f.seen = img
	return f.text, f.err
}

// createBlockImage creates a white image with a filled square of the given gray level.
func createBlockImage(size int, block image.Rectangle, level uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, block, image.NewUniform(color.RGBA{level, level, level, 255}), image.Point{}, draw.Src)
	return img
}

func grayAt(t *testing.T, img image.Image, x, y int) uint8 {
	t.Helper()
	g, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("recognizer got %T, want *image.Gray", img)
	}
	return g.GrayAt(x, y).Y
}

func TestExtractImage_MasksInkInterior(t *testing.T) {
	img := createBlockImage(40, image.Rect(10, 10, 30, 30), 100)
	rec := &fakeRecognizer{text: "raw text\n"}

	result, err := NewExtractor(nil, rec, 110, 2).ExtractImage(img)
	if err != nil {
		t.Fatalf("ExtractImage failed: %v", err)
	}
	if rec.calls != 1 {
		t.Fatalf("recognizer calls: got %d, want 1", rec.calls)
	}

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"page stays white", 0, 0, 255},
		{"first dilation ring keeps ink", 10, 10, 100},
		{"second dilation ring keeps ink", 11, 20, 100},
		{"interior is blacked out", 20, 20, 0},
		{"far edge of interior", 27, 27, 0},
		{"far dilation ring", 28, 28, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grayAt(t, rec.seen, tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if result.Text != "raw text\n" {
		t.Errorf("Text should be returned unmodified, got %q", result.Text)
	}
	if result.Masked != 16*16 {
		t.Errorf("Masked: got %d, want %d", result.Masked, 16*16)
	}
}

func TestExtractImage_ZeroIterations(t *testing.T) {
	img := createBlockImage(40, image.Rect(10, 10, 30, 30), 100)
	rec := &fakeRecognizer{}

	result, err := NewExtractor(nil, rec, 110, 0).ExtractImage(img)
	if err != nil {
		t.Fatalf("ExtractImage failed: %v", err)
	}
	if got := grayAt(t, rec.seen, 10, 10); got != 0 {
		t.Errorf("undilated mask should black out the whole block, got %d", got)
	}
	if result.Masked != 20*20 {
		t.Errorf("Masked: got %d, want %d", result.Masked, 20*20)
	}
}

func TestExtractImage_LightContentUntouched(t *testing.T) {
	// Gray 200 is above the threshold, so nothing is masked.
	img := createBlockImage(30, image.Rect(5, 5, 25, 25), 200)
	rec := &fakeRecognizer{}

	result, err := NewExtractor(nil, rec, 110, 2).ExtractImage(img)
	if err != nil {
		t.Fatalf("ExtractImage failed: %v", err)
	}
	if result.Masked != 0 {
		t.Errorf("Masked: got %d, want 0", result.Masked)
	}
	if got := grayAt(t, rec.seen, 15, 15); got != 200 {
		t.Errorf("pixel (15,15): got %d, want 200", got)
	}
}

func TestExtractImage_RecognizerError(t *testing.T) {
	errEngine := errors.New("engine exploded")
	rec := &fakeRecognizer{err: errEngine}

	_, err := NewExtractor(nil, rec, 110, 2).ExtractImage(createBlockImage(10, image.Rect(0, 0, 1, 1), 0))
	if !errors.Is(err, errEngine) {
		t.Errorf("error should wrap the engine error, got %v", err)
	}
}

func TestExtract_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, createBlockImage(40, image.Rect(10, 10, 30, 30), 0)); err != nil {
		f.Close()
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	rec := &fakeRecognizer{text: "ok"}
	result, err := NewExtractor(imaging.NewImageCache(0), rec, 110, 2).Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.Text != "ok" {
		t.Errorf("Text: got %q, want ok", result.Text)
	}
}

func TestExtract_Errors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("definitely not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"missing file", filepath.Join(dir, "missing.png"), os.ErrNotExist},
		{"corrupt file", corrupt, imaging.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecognizer{}
			_, err := NewExtractor(imaging.NewImageCache(0), rec, 110, 2).Extract(tt.path)
			if !errors.Is(err, tt.target) {
				t.Errorf("error: got %v, want %v", err, tt.target)
			}
			if rec.calls != 0 {
				t.Error("recognizer should not run when loading fails")
			}
		})
	}
}
