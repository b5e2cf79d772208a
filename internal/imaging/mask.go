package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Grayscale converts img to an 8-bit grayscale image using the ITU-R BT.601
// luma weights (0.299*R + 0.587*G + 0.114*B). The result always starts at
// (0,0). Alpha is ignored, so transparent pixels keep their stored color.
func Grayscale(img image.Image) *image.Gray {
	nrgba := imaging.Grayscale(img)
	return grayFromChannel(nrgba.Pix, nrgba.Stride, 4, nrgba.Rect)
}

// ThresholdBinaryInv returns a binary mask where a pixel is 255 if its value is
// at or below level and 0 otherwise. Dark ink on a light page becomes white.
func ThresholdBinaryInv(gray *image.Gray, level uint8) *image.Gray {
	return mapGray(gray, func(v uint8) uint8 {
		if v > level {
			return 0
		}
		return 255
	})
}

// Invert returns the complement (255 - v) of every pixel.
func Invert(gray *image.Gray) *image.Gray {
	return mapGray(gray, func(v uint8) uint8 { return 255 - v })
}

// Dilate grows the bright regions of a mask with a 3x3 square structuring
// element, once per iteration. Zero iterations return a copy.
//
// bild allocates and sorts a nine-element neighbor slice per pixel and pass,
// so a two-pass mask over a 12 MP photo costs roughly 24M small allocations.
func Dilate(mask *image.Gray, iterations int) *image.Gray {
	out := mapGray(mask, func(v uint8) uint8 { return v })
	if out.Rect.Empty() {
		return out
	}
	for i := 0; i < iterations; i++ {
		// A radius of 1 gives bild a 3x3 window; picking the brightest
		// neighbor of a binary mask is a morphological dilation.
		dilated := effect.Dilate(out, 1)
		out = grayFromChannel(dilated.Pix, dilated.Stride, 4, dilated.Rect)
	}
	return out
}

// ApplyMask keeps the pixels of gray where mask is non-zero and sets all
// others to 0 (bitwise AND with a binary mask). Both images must have the same
// size; pixels outside the mask bounds are treated as masked out.
func ApplyMask(gray, mask *image.Gray) *image.Gray {
	b := gray.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	mb := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			mx, my := x+mb.Min.X, y+mb.Min.Y
			if mx >= mb.Max.X || my >= mb.Max.Y {
				continue
			}
			if mask.Pix[mask.PixOffset(mx, my)] == 0 {
				continue
			}
			dst.Pix[dst.PixOffset(x, y)] = gray.Pix[gray.PixOffset(x+b.Min.X, y+b.Min.Y)]
		}
	}
	return dst
}

// OcclusionMask builds the mask used to suppress background before OCR:
// the inverse-binary threshold at level is inverted (so the page rather
// than the ink is white) and then dilated.
func OcclusionMask(gray *image.Gray, level uint8, iterations int) *image.Gray {
	return Dilate(Invert(ThresholdBinaryInv(gray, level)), iterations)
}

// CountZero returns the number of pixels with value 0.
func CountZero(gray *image.Gray) int {
	n := 0
	b := gray.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.Pix[gray.PixOffset(x, y)] == 0 {
				n++
			}
		}
	}
	return n
}

// mapGray applies fn to every pixel, returning a new image anchored at (0,0).
func mapGray(gray *image.Gray, fn func(uint8) uint8) *image.Gray {
	b := gray.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := gray.PixOffset(b.Min.X, y+b.Min.Y)
		out := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[out+x] = fn(gray.Pix[src+x])
		}
	}
	return dst
}

// grayFromChannel copies the first channel of an interleaved pixel buffer
// into a new *image.Gray anchored at (0,0).
func grayFromChannel(pix []uint8, stride, channels int, rect image.Rectangle) *image.Gray {
	w, h := rect.Dx(), rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * stride
		out := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			dst.Pix[out+x] = pix[row+x*channels]
		}
	}
	return dst
}
