// Package ocr implements the text extractor on top of Tesseract.
package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labellens/backend/internal/domain"
	"github.com/labellens/backend/internal/infrastructure/logging"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Config controls the Tesseract extractor
type Config struct {
	Languages     []string // Tesseract language codes, e.g. "eng"
	MinConfidence float64  // 0-100; words below it are dropped, 0 keeps plain Text() output
	MaxDimension  int      // longest image side in pixels before OCR, 0 disables resizing
}

// tesseractClient is the subset of *gosseract.Client the extractor uses
type tesseractClient interface {
	SetImageFromBytes(data []byte) error
	SetLanguage(langs ...string) error
	Text() (string, error)
	GetBoundingBoxes(level gosseract.PageIteratorLevel) ([]gosseract.BoundingBox, error)
	Close() error
}

// TesseractExtractor implements domain.TextExtractor with gosseract
type TesseractExtractor struct {
	cfg           Config
	clientFactory func() tesseractClient
	logger        *zap.Logger
}

var _ domain.TextExtractor = (*TesseractExtractor)(nil)

// NewTesseractExtractor creates an extractor that opens a fresh Tesseract
// client per call. gosseract clients are not safe for concurrent use.
func NewTesseractExtractor(cfg Config, logger *zap.Logger) *TesseractExtractor {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	return &TesseractExtractor{
		cfg:           cfg,
		clientFactory: func() tesseractClient { return gosseract.NewClient() },
		logger:        logging.OrNop(logger),
	}
}

// ExtractText runs OCR over an encoded image and returns the recognized
// tokens joined by single spaces.
func (e *TesseractExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prepared, format, err := PrepareImage(image, e.cfg.MaxDimension)
	if err != nil {
		return "", err
	}

	start := time.Now()
	client := e.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("%w: set image: %v", domain.ErrOCRFailure, err)
	}
	if err := client.SetLanguage(e.cfg.Languages...); err != nil {
		return "", fmt.Errorf("%w: set languages: %v", domain.ErrOCRFailure, err)
	}

	var raw string
	if e.cfg.MinConfidence > 0 {
		raw, err = e.confidentWords(client)
	} else {
		raw, err = client.Text()
	}
	if err != nil {
		return "", fmt.Errorf("%w: recognize text: %v", domain.ErrOCRFailure, err)
	}

	text := normalizeText(raw)

	e.logger.Debug("ocr completed",
		zap.String("format", format),
		zap.Int("input_bytes", len(image)),
		zap.Int("text_length", len(text)),
		zap.Duration("duration", time.Since(start)),
	)

	return text, nil
}

// confidentWords returns the words whose confidence reaches MinConfidence, in
// reading order
func (e *TesseractExtractor) confidentWords(client tesseractClient) (string, error) {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return "", err
	}

	words := make([]string, 0, len(boxes))
	for _, b := range boxes {
		if b.Confidence >= e.cfg.MinConfidence {
			words = append(words, b.Word)
		}
	}
	return strings.Join(words, " "), nil
}

// normalizeText applies NFKC (folding ligatures and full-width forms that OCR
// engines emit) and collapses all whitespace to single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
