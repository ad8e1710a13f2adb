package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque strings; callers own their encoding.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TextExtractor turns an encoded image into a single space-joined string of
// recognized tokens, in the engine's reading order.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}
