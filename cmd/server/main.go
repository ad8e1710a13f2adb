package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labellens/backend/config"
	httpDelivery "github.com/labellens/backend/internal/delivery/http"
	"github.com/labellens/backend/internal/domain"
	"github.com/labellens/backend/internal/infrastructure/cache"
	"github.com/labellens/backend/internal/infrastructure/logging"
	"github.com/labellens/backend/internal/infrastructure/ocr"
	"github.com/labellens/backend/internal/infrastructure/telemetry"
	"github.com/labellens/backend/internal/usecase"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
	redisKeyPrefix    = "labellens:"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting LabelLens backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.Strings("ocr_languages", cfg.OCR.Languages),
		zap.Float64("ocr_min_confidence", cfg.OCR.MinConfidence),
		zap.Int("rate_limit_per_ip", cfg.RateLimit.PerIP),
	)

	// Initialize infrastructure dependencies
	labelCache, cacheCloser, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheCloser.Close(); err != nil {
			logger.Warn("cache close failed", zap.Error(err))
		}
	}()

	extractor := ocr.NewTesseractExtractor(ocr.Config{
		Languages:     cfg.OCR.Languages,
		MinConfidence: cfg.OCR.MinConfidence,
		MaxDimension:  cfg.OCR.MaxDimension,
	}, logger.Named("ocr"))

	metrics := telemetry.NewMetrics()

	// Initialize usecase layer
	labelService := usecase.NewLabelService(
		extractor,
		labelCache,
		metrics,
		logger.Named("labels"),
		usecase.LabelServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(labelService, cfg.Server.MaxUploadBytes, logger)
	router := httpDelivery.SetupRouter(cfg, handler, metrics, logger.Named("http"))

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// newCache builds the configured OCR text cache
func newCache(cfg config.CacheConfig) (domain.CacheRepository, io.Closer, error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache, redisCache, nil
	default:
		memoryCache := cache.NewMemoryCache()
		return memoryCache, memoryCache, nil
	}
}
