// Package output persists the results of a run: segment crops as PNG files,
// the HTML report, and the cleanup of the previous run's files.
//
// The output directory is flat and owned by the tool. Segment i is always
// written to segment_i.png so that the report can reference files by index.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-segmenter/internal/detection"
)

// SegmentFileName returns the file name used for the segment at index.
func SegmentFileName(index int) string {
	return fmt.Sprintf("segment_%d.png", index)
}

// SavedSegment describes one segment file that was written.
type SavedSegment struct {
	Index int
	Path  string
	Bytes int64
}

// SegmentError records why one segment could not be written.
type SegmentError struct {
	Index int
	Path  string
	Err   error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// WriteResult lists the segments written and the ones that failed.
type WriteResult struct {
	Saved    []SavedSegment
	Failures []SegmentError
}

// Err joins all segment failures, or returns nil when every write succeeded.
func (r *WriteResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i := range r.Failures {
		errs[i] = &r.Failures[i]
	}
	return errors.Join(errs...)
}

// SaveSegments writes every segment to dir as segment_<Index>.png, creating
// dir and its parents if needed.
//
// A segment that cannot be encoded or written is recorded in
// WriteResult.Failures and the remaining segments are still written. Only a
// failure to create the directory is returned as an error.
func SaveSegments(dir string, segments []detection.Segment) (*WriteResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &WriteResult{
		Saved:    make([]SavedSegment, 0, len(segments)),
		Failures: make([]SegmentError, 0),
	}

	for _, s := range segments {
		path := filepath.Join(dir, SegmentFileName(s.Index))
		size, err := saveSegment(path, s)
		if err != nil {
			result.Failures = append(result.Failures, SegmentError{Index: s.Index, Path: path, Err: err})
			continue
		}
		result.Saved = append(result.Saved, SavedSegment{Index: s.Index, Path: path, Bytes: size})
	}

	return result, nil
}

func saveSegment(path string, s detection.Segment) (int64, error) {
	if s.Image == nil || s.Image.Bounds().Empty() {
		return 0, errors.New("segment has no pixels")
	}
	if err := imaging.Save(s.Image, path); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
