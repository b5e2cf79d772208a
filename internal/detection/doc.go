// Package detection splits an image into visual elements.
//
// A visual element is a crop of the source color image around one external
// contour of the thresholded grayscale image. The pipeline is:
//
//  1. Grayscale: BT.601 luma
//  2. Threshold: inverse binary, so dark content on a light page becomes
//     foreground
//  3. Contours: external contours only; anything nested in the hole of another
//     shape belongs to that shape's element
//  4. Filter: drop bounding boxes with width*height <= MinArea
//  5. Crop: cut the bounding box out of the original color image
//
// # Contour Backends
//
// The default build finds contours in pure Go using 8-connected components
// and returns them in raster discovery order. Building with -tags opencv
// delegates the search to OpenCV through gocv; OpenCV's order is not sorted
// by position or size.
//
// # Coordinate System
//
// Origin (0, 0) is the top-left corner, X increases rightward and Y
// increases downward. Bounding boxes use inclusive top-left and exclusive
// bottom-right.
package detection
