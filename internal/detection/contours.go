//go:build !opencv

package detection

import "image"

// FindExternalContours returns the outer contours of the foreground (non-zero)
// regions of a binary mask, in discovery order.
//
// Foreground pixels are grouped into 8-connected components. A component is
// external when it touches the image frame or the background that is
// 4-connected to the frame; components sitting inside a hole of another
// component are skipped, the same way a RETR_EXTERNAL contour search ignores
// nested contours.
//
// Discovery order is a raster scan (top to bottom, left to right) of the
// first pixel of each component, which makes results reproducible between
// runs.
func FindExternalContours(mask *image.Gray) ([]Contour, error) {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return []Contour{}, nil
	}

	fg := func(x, y int) bool {
		return mask.Pix[mask.PixOffset(x+b.Min.X, y+b.Min.Y)] != 0
	}

	outside := markOuterBackground(fg, width, height)

	visited := make([]bool, width*height)
	contours := make([]Contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !fg(x, y) {
				continue
			}
			bounds, external := floodFillComponent(fg, visited, outside, x, y, width, height)
			if external {
				contours = append(contours, Contour{Bounds: bounds.Add(b.Min)})
			}
		}
	}

	return contours, nil
}

// markOuterBackground flags every background pixel reachable from the image
// frame through 4-connected background pixels.
func markOuterBackground(fg func(x, y int) bool, width, height int) []bool {
	outside := make([]bool, width*height)
	stack := make([]image.Point, 0, 2*(width+height))

	push := func(x, y int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		if outside[y*width+x] || fg(x, y) {
			return
		}
		outside[y*width+x] = true
		stack = append(stack, image.Point{X: x, Y: y})
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	return outside
}

// floodFillComponent performs iterative flood-fill of one 8-connected
// foreground component starting at (startX, startY).
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on large
// components. Returns the bounding rectangle of the component (exclusive Max)
// and whether the component borders the outer background or the frame.
func floodFillComponent(fg func(x, y int) bool, visited, outside []bool, startX, startY, width, height int) (image.Rectangle, bool) {
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	external := false

	visited[startY*width+startX] = true
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		if p.X == 0 || p.Y == 0 || p.X == width-1 || p.Y == height-1 {
			external = true
		}

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				i := ny*width + nx
				if !fg(nx, ny) {
					if (dx == 0 || dy == 0) && outside[i] {
						external = true
					}
					continue
				}
				if visited[i] {
					continue
				}
				visited[i] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return image.Rect(minX, minY, maxX+1, maxY+1), external
}
