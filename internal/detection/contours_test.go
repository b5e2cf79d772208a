//go:build !opencv

package detection

import (
	"image"
	"image/color"
	"testing"
)

// grayMask builds a binary mask from rows of '#' (foreground) and '.' characters.
func grayMask(rows ...string) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

func TestFindExternalContours(t *testing.T) {
	tests := []struct {
		name string
		mask *image.Gray
		want []image.Rectangle
	}{
		{
			name: "empty mask",
			mask: grayMask(
				".....",
				".....",
			),
			want: []image.Rectangle{},
		},
		{
			name: "diagonal pixels are one component",
			mask: grayMask(
				"......",
				".#....",
				"..#...",
				"...#..",
				"......",
			),
			want: []image.Rectangle{image.Rect(1, 1, 4, 4)},
		},
		{
			name: "component touching the frame",
			mask: grayMask(
				"##....",
				"##....",
				"......",
			),
			want: []image.Rectangle{image.Rect(0, 0, 2, 2)},
		},
		{
			name: "component inside a hole is skipped",
			mask: grayMask(
				".........",
				".#######.",
				".#.....#.",
				".#..#..#.",
				".#.....#.",
				".#######.",
				".........",
			),
			want: []image.Rectangle{image.Rect(1, 1, 8, 6)},
		},
		{
			name: "component inside an open shape is kept",
			mask: grayMask(
				".........",
				".###.###.",
				".#.....#.",
				".#..#..#.",
				".#.....#.",
				".#######.",
				".........",
			),
			want: []image.Rectangle{image.Rect(1, 1, 8, 6), image.Rect(4, 3, 5, 4)},
		},
		{
			name: "raster discovery order",
			mask: grayMask(
				"......##",
				"......##",
				"........",
				".##.....",
				".##.....",
			),
			want: []image.Rectangle{image.Rect(6, 0, 8, 2), image.Rect(1, 3, 3, 5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contours, err := FindExternalContours(tt.mask)
			if err != nil {
				t.Fatalf("FindExternalContours failed: %v", err)
			}
			if len(contours) != len(tt.want) {
				t.Fatalf("contours: got %d (%v), want %d", len(contours), contours, len(tt.want))
			}
			for i, c := range contours {
				if c.Bounds != tt.want[i] {
					t.Errorf("contour %d: got %v, want %v", i, c.Bounds, tt.want[i])
				}
			}
		})
	}
}

func TestFindExternalContours_NonZeroOrigin(t *testing.T) {
	mask := image.NewGray(image.Rect(5, 5, 20, 20))
	mask.SetGray(10, 10, color.Gray{Y: 255})
	mask.SetGray(11, 10, color.Gray{Y: 255})

	contours, err := FindExternalContours(mask)
	if err != nil {
		t.Fatalf("FindExternalContours failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	if contours[0].Bounds != image.Rect(10, 10, 12, 11) {
		t.Errorf("bounds should be in mask coordinates, got %v", contours[0].Bounds)
	}
}

func TestFindExternalContours_Deterministic(t *testing.T) {
	mask := grayMask(
		"#..#..#.",
		"........",
		".#..#..#",
		"........",
	)

	first, _ := FindExternalContours(mask)
	second, _ := FindExternalContours(mask)
	if len(first) != 6 || len(first) != len(second) {
		t.Fatalf("expected 6 contours twice, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("contour %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}
