// Package pipeline runs one extraction: pick an image, clear the output
// directory, extract text, segment, save the segments and write the report.
//
// Stage failures never abort a run. Each one is logged, recorded in the
// Report and replaced by an empty value (no text, no segments) so the user
// still gets a report and the success dialog. Only a failure of the dialog
// layer or a panic ends the run early, with a single generic error dialog.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/ironsheep/image-segmenter/internal/config"
	"github.com/ironsheep/image-segmenter/internal/detection"
	"github.com/ironsheep/image-segmenter/internal/imaging"
	"github.com/ironsheep/image-segmenter/internal/ocr"
	"github.com/ironsheep/image-segmenter/internal/output"
)

// ErrNoFileSelected is returned by Dialogs.SelectImage when the user cancels
// the file picker.
var ErrNoFileSelected = errors.New("no file selected")

// Dialog texts shown to the user.
const (
	MsgNoFileSelected = "No file selected!"
	msgSuccess        = "Processing completed. Check the %s directory for results."
	msgGenericError   = "An error occurred: %v"
)

// Dialogs is the user-facing surface of a run.
type Dialogs interface {
	// SelectImage asks for an input image. A cancelled dialog returns
	// ErrNoFileSelected.
	SelectImage() (string, error)
	Error(msg string)
	Info(msg string)
}

// Stage names a step of the run.
type Stage string

const (
	StageClear   Stage = "clear"
	StageLoad    Stage = "load"
	StageExtract Stage = "extract"
	StageSegment Stage = "segment"
	StageSave    Stage = "save"
	StageReport  Stage = "report"
)

// StageError is a failure recorded for one stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e StageError) Unwrap() error { return e.Err }

// Report summarizes a completed run.
type Report struct {
	ImagePath string
	Text      string
	// Masked is the number of pixels hidden from OCR.
	Masked int
	// Segments is the number of visual elements found.
	Segments int
	Saved    []output.SavedSegment
	// StageErrors lists every degraded stage in execution order.
	StageErrors []StageError
}

// Failed reports whether stage recorded an error.
func (r *Report) Failed(stage Stage) bool {
	for _, e := range r.StageErrors {
		if e.Stage == stage {
			return true
		}
	}
	return false
}

// Pipeline wires the stages of a run together.
type Pipeline struct {
	cfg       *config.Config
	dialogs   Dialogs
	cache     *imaging.ImageCache
	extractor *ocr.Extractor
	segmenter *detection.Segmenter
	log       *slog.Logger
}

// New creates a Pipeline. A nil logger discards all log output.
func New(cfg *config.Config, dialogs Dialogs, recognizer ocr.Recognizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cache := imaging.NewImageCache(cfg.MaxImageBytes)
	return &Pipeline{
		cfg:       cfg,
		dialogs:   dialogs,
		cache:     cache,
		extractor: ocr.NewExtractor(cache, recognizer, uint8(cfg.TextThreshold), cfg.DilateIterations),
		segmenter: detection.NewSegmenter(cache, uint8(cfg.SegmentThreshold), cfg.MinSegmentArea),
		log:       logger,
	}
}

// Run performs one interactive run.
//
// It returns ErrNoFileSelected when the user picks nothing; in that case no
// file is touched. Any other returned error has already been shown to the
// user as the generic error dialog.
func (p *Pipeline) Run() (report *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("run aborted", "panic", r)
			report, err = nil, fmt.Errorf("panic: %v", r)
			p.dialogs.Error(fmt.Sprintf(msgGenericError, r))
		}
	}()

	path, err := p.dialogs.SelectImage()
	if err == nil && path == "" {
		err = ErrNoFileSelected
	}
	if errors.Is(err, ErrNoFileSelected) {
		p.log.Info("no file selected")
		p.dialogs.Error(MsgNoFileSelected)
		return nil, ErrNoFileSelected
	}
	if err != nil {
		p.log.Error("file dialog failed", "err", err)
		p.dialogs.Error(fmt.Sprintf(msgGenericError, err))
		return nil, err
	}

	report = p.Process(path)
	p.dialogs.Info(fmt.Sprintf(msgSuccess, p.cfg.OutputDir))
	return report, nil
}

// Process runs every stage on the image at path without any dialog.
func (p *Pipeline) Process(path string) *Report {
	report := &Report{ImagePath: path, Saved: []output.SavedSegment{}}
	p.log.Info("processing image", "path", path)

	if err := output.ClearDir(p.cfg.OutputDir); err != nil {
		p.stageFailed(report, StageClear, err)
	}

	defer p.cache.Evict(path)
	img, err := p.cache.Load(path)
	if err != nil {
		p.stageFailed(report, StageLoad, err)
	}

	var segments []detection.Segment
	if img != nil {
		report.Text, report.Masked = p.extractText(report, img)
		segments = p.segment(report, img)
	}
	report.Segments = len(segments)

	result, err := output.SaveSegments(p.cfg.OutputDir, segments)
	if err != nil {
		p.stageFailed(report, StageSave, err)
	} else {
		for _, f := range result.Failures {
			p.stageFailed(report, StageSave, &f)
		}
		report.Saved = result.Saved
		var total int64
		for _, s := range result.Saved {
			total += s.Bytes
		}
		p.log.Info("segments saved", "count", len(result.Saved), "bytes", humanize.Bytes(uint64(total)))
	}

	if err := output.GenerateReport(p.cfg.ReportPath, p.cfg.OutputDir, report.Text, report.Saved); err != nil {
		p.stageFailed(report, StageReport, err)
	} else {
		p.log.Info("report written", "path", p.cfg.ReportPath)
	}

	return report
}

func (p *Pipeline) extractText(report *Report, img image.Image) (string, int) {
	res, err := p.extractor.ExtractImage(img)
	if err != nil {
		p.stageFailed(report, StageExtract, err)
		return "", 0
	}
	p.log.Debug("text extracted", "count", len(res.Text), "masked", res.Masked)
	return res.Text, res.Masked
}

func (p *Pipeline) segment(report *Report, img image.Image) []detection.Segment {
	segments, err := p.segmenter.SegmentImage(img)
	if err != nil {
		p.stageFailed(report, StageSegment, err)
		return nil
	}
	p.log.Debug("image segmented", "count", len(segments))
	return segments
}

func (p *Pipeline) stageFailed(report *Report, stage Stage, err error) {
	p.log.Error("stage failed", "stage", string(stage), "err", err)
	report.StageErrors = append(report.StageErrors, StageError{Stage: stage, Err: err})
}
