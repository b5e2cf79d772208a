package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/image-segmenter/internal/config"
	"github.com/ironsheep/image-segmenter/internal/ocr"
	"github.com/ironsheep/image-segmenter/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-segmenter %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Tesseract:  %s\n", ocr.Version())
			return
		case "--help", "-h", "help":
			fmt.Println("image-segmenter - extract text and visual segments from an image")
			fmt.Println()
			fmt.Println("Usage: image-segmenter [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			config.Usage(os.Stdout)
			fmt.Println()
			fmt.Println("A file dialog asks for the image. Segments are written to the output")
			fmt.Println("directory as segment_N.png next to an HTML report.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Debug("starting", "version", Version, "build_time", BuildTime, "commit", GitCommit,
		"output_dir", cfg.OutputDir, "report", cfg.ReportPath)

	p := pipeline.New(cfg, pipeline.NativeDialogs{}, ocr.NewTesseract(cfg.TessdataPrefix), logger)
	report, err := p.Run()
	if err != nil {
		// The user has already seen a dialog for this.
		logger.Info("run ended", "err", err)
		return
	}
	logger.Info("run completed", "path", report.ImagePath, "count", len(report.Saved),
		"stage_errors", len(report.StageErrors))
}
