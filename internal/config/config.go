// Package config holds the settings of a segmentation run.
//
// Values come from environment variables with the IMGSEG_ prefix. Paths left
// empty default to locations next to the running executable, matching the
// layout users find after unpacking a release:
//
//	<program_dir>/output/segment_N.png
//	<program_dir>/output.html
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go-simpler.org/env"
)

// Names of the default output locations relative to the program directory.
const (
	DefaultOutputDirName  = "output"
	DefaultReportFileName = "output.html"
)

// Config represents the settings of one run.
type Config struct {
	// Directory receiving segment_N.png files. Default: <program_dir>/output
	OutputDir string `env:"IMGSEG_OUTPUT_DIR"`
	// Path of the generated HTML report. Default: <program_dir>/output.html
	ReportPath string `env:"IMGSEG_REPORT_PATH"`
	// Gray level at or below which a pixel counts as ink when building the
	// occlusion mask for OCR.
	TextThreshold int `env:"IMGSEG_TEXT_THRESHOLD" default:"110"`
	// Gray level at or below which a pixel counts as foreground for segmentation.
	SegmentThreshold int `env:"IMGSEG_SEGMENT_THRESHOLD" default:"150"`
	// Segments whose bounding box area (w*h) is not strictly larger are discarded.
	MinSegmentArea int `env:"IMGSEG_MIN_SEGMENT_AREA" default:"50"`
	// Number of 3x3 dilation passes applied to the occlusion mask.
	DilateIterations int `env:"IMGSEG_DILATE_ITERATIONS" default:"2"`
	// Largest input file accepted, e.g. "64MiB"
	MaxImageSize  string `env:"IMGSEG_MAX_IMAGE_SIZE" default:"64MiB"`
	MaxImageBytes uint64
	// Directory containing Tesseract traineddata files. Empty uses Tesseract's default.
	TessdataPrefix string `env:"IMGSEG_TESSDATA_PREFIX"`
	// Log level (DEBUG, INFO, WARN, ERROR)
	LogLevelStr string `env:"IMGSEG_LOG_LEVEL" default:"INFO"`
	LogLevel    slog.Level
}

// Default returns the built-in settings with paths resolved against programDir.
func Default(programDir string) *Config {
	return &Config{
		OutputDir:        filepath.Join(programDir, DefaultOutputDirName),
		ReportPath:       filepath.Join(programDir, DefaultReportFileName),
		TextThreshold:    110,
		SegmentThreshold: 150,
		MinSegmentArea:   50,
		DilateIterations: 2,
		MaxImageSize:     "64MiB",
		MaxImageBytes:    64 * humanize.MiByte,
		LogLevelStr:      "INFO",
		LogLevel:         slog.LevelInfo,
	}
}

// Load returns a config populated with defaults and values from environment
// vars. Empty paths are resolved against the directory of the executable.
func Load() (*Config, error) {
	programDir, err := ProgramDir()
	if err != nil {
		return nil, err
	}
	return load(nil, programDir)
}

// LoadFrom is Load with an explicit variable source and program directory.
func LoadFrom(src env.Source, programDir string) (*Config, error) {
	return load(&env.Options{Source: src}, programDir)
}

func load(opts *env.Options, programDir string) (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, opts); err != nil {
		return nil, err
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(programDir, DefaultOutputDirName)
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = filepath.Join(programDir, DefaultReportFileName)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(cfg.LogLevelStr)); err != nil {
		return nil, fmt.Errorf("parsing log level from env: %w", err)
	}
	maxSize, err := humanize.ParseBytes(cfg.MaxImageSize)
	if err != nil {
		return nil, fmt.Errorf("parsing max image size from env: %w", err)
	}
	cfg.MaxImageBytes = maxSize
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	if c.TextThreshold < 0 || c.TextThreshold > 255 {
		errs = append(errs, fmt.Errorf("text threshold %d outside 0..255", c.TextThreshold))
	}
	if c.SegmentThreshold < 0 || c.SegmentThreshold > 255 {
		errs = append(errs, fmt.Errorf("segment threshold %d outside 0..255", c.SegmentThreshold))
	}
	if c.MinSegmentArea < 0 {
		errs = append(errs, fmt.Errorf("min segment area %d is negative", c.MinSegmentArea))
	}
	if c.DilateIterations < 0 {
		errs = append(errs, fmt.Errorf("dilate iterations %d is negative", c.DilateIterations))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory is empty"))
	}
	if c.ReportPath == "" {
		errs = append(errs, errors.New("report path is empty"))
	}
	return errors.Join(errs...)
}

// Usage writes the list of supported environment variables to w.
func Usage(w io.Writer) {
	env.Usage(&Config{}, w, nil)
}

// ProgramDir returns the directory holding the running executable, with
// symlinks resolved.
func ProgramDir() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	if realExePath, err := filepath.EvalSymlinks(exePath); err == nil {
		exePath = realExePath
	}
	return filepath.Dir(exePath), nil
}
