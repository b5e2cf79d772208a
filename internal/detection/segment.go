package detection

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-segmenter/internal/imaging"
)

// Contour is an outer boundary found in a binary mask. Only its axis-aligned
// bounding rectangle is kept.
type Contour struct {
	// Bounds is the bounding rectangle (inclusive Min, exclusive Max).
	Bounds image.Rectangle
}

// Area returns width * height of the bounding rectangle.
func (c Contour) Area() int {
	return c.Bounds.Dx() * c.Bounds.Dy()
}

// Segment is a visual element: a crop of the source color image around one
// external contour.
type Segment struct {
	// Index is the position in the segmentation result. It becomes the
	// segment_<Index>.png filename and the report reference.
	Index int

	// Bounds is the crop rectangle in source image coordinates.
	Bounds image.Rectangle

	// Image is the cropped region of the original color image.
	Image image.Image
}

// ImageLoader provides decoded images by path. *imaging.ImageCache implements it.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// Segmenter splits an image into visual elements.
type Segmenter struct {
	// Threshold is the gray level at or below which a pixel is foreground.
	Threshold uint8

	// MinArea discards contours whose bounding box area is not strictly greater.
	MinArea int

	loader ImageLoader
}

// NewSegmenter creates a Segmenter that reads images through loader.
func NewSegmenter(loader ImageLoader, threshold uint8, minArea int) *Segmenter {
	return &Segmenter{
		Threshold: threshold,
		MinArea:   minArea,
		loader:    loader,
	}
}

// Segment loads the image at path and returns its visual elements.
// An image without foreground yields an empty slice and no error.
func (s *Segmenter) Segment(path string) ([]Segment, error) {
	img, err := s.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	return s.SegmentImage(img)
}

// SegmentImage returns the visual elements of an already decoded image.
//
// # Algorithm
//
//  1. Grayscale conversion (BT.601 luma)
//  2. Inverse binary threshold: pixels <= Threshold become foreground
//  3. External contour search (nested contours are ignored)
//  4. Area filter: keep bounding boxes with width*height > MinArea
//  5. Crop each kept rectangle from the original color image
//
// Segments are returned in contour discovery order and indexed from 0.
func (s *Segmenter) SegmentImage(img image.Image) ([]Segment, error) {
	gray := imaging.Grayscale(img)
	binary := imaging.ThresholdBinaryInv(gray, s.Threshold)

	contours, err := FindExternalContours(binary)
	if err != nil {
		return nil, fmt.Errorf("find contours: %w", err)
	}

	// Contours are found on an origin-anchored copy; shift back to the
	// source coordinate space before cropping.
	origin := img.Bounds().Min
	segments := make([]Segment, 0, len(contours))
	for _, c := range contours {
		if c.Area() <= s.MinArea {
			continue
		}
		rect := c.Bounds.Add(origin)
		crop, err := imaging.CropRect(img, rect)
		if err != nil {
			return nil, fmt.Errorf("crop segment %d: %w", len(segments), err)
		}
		segments = append(segments, Segment{
			Index:  len(segments),
			Bounds: rect,
			Image:  crop,
		})
	}

	return segments, nil
}
