//go:build opencv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// FindExternalContours returns the outer contours of the foreground (non-zero)
// regions of a binary mask using OpenCV (RETR_EXTERNAL, CHAIN_APPROX_SIMPLE).
//
// The order of the result is the one OpenCV reports, which is not sorted by
// position or size.
func FindExternalContours(mask *image.Gray) ([]Contour, error) {
	if mask.Bounds().Empty() {
		return []Contour{}, nil
	}

	mat, err := gocv.ImageGrayToMatGray(mask)
	if err != nil {
		return nil, fmt.Errorf("convert mask: %w", err)
	}
	defer mat.Close()

	found := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	origin := mask.Bounds().Min
	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		rect := gocv.BoundingRect(found.At(i))
		contours = append(contours, Contour{Bounds: rect.Add(origin)})
	}
	return contours, nil
}
