package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/labellens/backend/internal/domain"
	"github.com/labellens/backend/internal/infrastructure/logging"
	"github.com/labellens/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Cache lookup outcomes reported to metrics
const (
	cacheResultHit   = "hit"
	cacheResultMiss  = "miss"
	cacheResultError = "error"
)

// LabelServiceConfig holds configuration for the label service
type LabelServiceConfig struct {
	CacheTTL time.Duration
}

// LabelService runs the label pipeline: image -> text -> nutrition + classification
type LabelService struct {
	extractor  domain.TextExtractor
	cache      domain.CacheRepository
	classifier *IngredientClassifier
	metrics    *telemetry.Metrics
	logger     *zap.Logger
	cacheTTL   time.Duration
	now        func() time.Time
}

// NewLabelService creates a new label service with dependencies.
// cache, metrics and logger may be nil.
func NewLabelService(
	extractor domain.TextExtractor,
	cache domain.CacheRepository,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
	config LabelServiceConfig,
) *LabelService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &LabelService{
		extractor:  extractor,
		cache:      cache,
		classifier: NewIngredientClassifier(),
		metrics:    metrics,
		logger:     logging.OrNop(logger),
		cacheTTL:   cacheTTL,
		now:        time.Now,
	}
}

// AnalyzeImage extracts the text of a label photo and analyzes it.
// Flow: check cache -> OCR -> cache -> analyze
func (s *LabelService) AnalyzeImage(ctx context.Context, image []byte) (*domain.LabelAnalysis, error) {
	if len(image) == 0 {
		return nil, domain.ErrEmptyImage
	}
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: no text extractor configured", domain.ErrOCRFailure)
	}

	cacheKey := generateCacheKey(image)

	if text, ok := s.getFromCache(ctx, cacheKey); ok {
		return s.analyze(text, domain.SourceCache), nil
	}

	start := time.Now()
	text, err := s.extractor.ExtractText(ctx, image)
	s.metrics.RecordOCR(time.Since(start), err)
	if err != nil {
		s.logger.Warn("text extraction failed",
			zap.String("cache_key", cacheKey),
			zap.Int("image_bytes", len(image)),
			zap.Error(err),
		)
		return nil, err
	}

	s.setInCache(ctx, cacheKey, text)

	return s.analyze(text, domain.SourceOCR), nil
}

// AnalyzeText analyzes text that was extracted elsewhere. It never fails.
func (s *LabelService) AnalyzeText(ctx context.Context, text string) *domain.LabelAnalysis {
	return s.analyze(text, domain.SourceText)
}

// Keywords returns the keyword tables used for classification
func (s *LabelService) Keywords() domain.KeywordTables {
	return s.classifier.Keywords()
}

// analyze runs the nutrition parser and the classifier over the same
// lowercased text. The two are independent of each other.
func (s *LabelService) analyze(text, source string) *domain.LabelAnalysis {
	lowered := strings.ToLower(text)

	entries := ParseNutritionEntries(lowered)
	nutrition := make(domain.NutritionInfo, len(entries))
	for _, e := range entries {
		nutrition[e.Label] = e.Value
	}

	result := s.classifier.Classify(lowered)

	s.metrics.RecordAnalysis(source)
	s.metrics.RecordKeywordHits(domain.CategoryAllergens, result.Allergens)
	s.metrics.RecordKeywordHits(domain.CategoryNonVegan, result.NonVegan)
	s.metrics.RecordKeywordHits(domain.CategoryPreservatives, result.Preservatives)

	s.logger.Info("label analyzed",
		zap.String("source", source),
		zap.Int("text_length", len(text)),
		zap.Int("nutrition_entries", len(entries)),
		zap.Strings("allergens", result.Allergens),
		zap.Strings("non_vegan", result.NonVegan),
		zap.Strings("preservatives", result.Preservatives),
	)

	return &domain.LabelAnalysis{
		ExtractedText:        text,
		Nutrition:            nutrition,
		NutritionEntries:     entries,
		ClassificationResult: result,
		Findings:             domain.BuildFindings(result),
		Source:               source,
		AnalyzedAt:           s.now().UTC(),
	}
}

// generateCacheKey derives the cache key from the image bytes.
// Format: "ocr:{sha256 hex}"
func generateCacheKey(image []byte) string {
	sum := sha256.Sum256(image)
	return "ocr:" + hex.EncodeToString(sum[:])
}

// getFromCache returns cached extracted text, if any
func (s *LabelService) getFromCache(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	text, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.RecordCacheLookup(cacheResultHit)
		return text, true
	case errors.Is(err, domain.ErrCacheMiss):
		s.metrics.RecordCacheLookup(cacheResultMiss)
	default:
		s.metrics.RecordCacheLookup(cacheResultError)
		s.logger.Warn("cache lookup failed", zap.String("cache_key", key), zap.Error(err))
	}
	return "", false
}

// setInCache stores extracted text; failures are logged, not returned
func (s *LabelService) setInCache(ctx context.Context, key, text string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, text, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("cache_key", key), zap.Error(err))
	}
}
