package main

import (
	"fmt"
	"os"

	"github.com/labellens/backend/config"
	"github.com/labellens/backend/internal/delivery/cli"
	"github.com/labellens/backend/internal/infrastructure/logging"
	"github.com/labellens/backend/internal/infrastructure/ocr"
	"github.com/labellens/backend/internal/usecase"
)

func main() {
	if err := cli.NewRootCommand(newAnalyzer).Execute(); err != nil {
		os.Exit(1)
	}
}

// newAnalyzer builds an uncached label service over Tesseract.
// Logs go to stderr; only warnings unless verbose.
func newAnalyzer(verbose bool) (cli.Analyzer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Server.Environment)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	extractor := ocr.NewTesseractExtractor(ocr.Config{
		Languages:     cfg.OCR.Languages,
		MinConfidence: cfg.OCR.MinConfidence,
		MaxDimension:  cfg.OCR.MaxDimension,
	}, logger.Named("ocr"))

	return usecase.NewLabelService(extractor, nil, nil, logger, usecase.LabelServiceConfig{}), nil
}
