// Package imaging provides the image loading and pixel operations shared by the
// text extractor and the segmenter.
//
// Loading goes through ImageCache so a selected file is decoded once per run.
// Only PNG and JPEG content is accepted; the type is sniffed from the file
// bytes, not taken from the extension.
//
// # Masks
//
// Binary masks are *image.Gray values holding only 0 and 255. The helpers
// mirror the classic morphology primitives:
//
//   - Grayscale: BT.601 luma conversion
//   - ThresholdBinaryInv: 255 where v <= level, 0 elsewhere
//   - Invert: 255 - v
//   - Dilate: 3x3 square structuring element, repeated per iteration
//   - ApplyMask: bitwise AND of an image with a mask
//
// Every helper returns a new image anchored at (0,0) and never modifies its
// input.
//
// # Coordinate System
//
// (0,0) is the top-left corner, X grows rightward and Y grows downward.
// Rectangles are inclusive at Min and exclusive at Max.
package imaging
