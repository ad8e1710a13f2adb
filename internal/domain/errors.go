package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyImage is returned when an analysis is requested for an empty image payload
	ErrEmptyImage = errors.New("image payload is empty")

	// ErrImageTooLarge is returned when an uploaded image exceeds the configured limit
	ErrImageTooLarge = errors.New("image exceeds maximum upload size")

	// ErrUnsupportedImage is returned when the image bytes cannot be decoded
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")

	// ErrOCRFailure is returned when the text extractor fails
	ErrOCRFailure = errors.New("text extraction failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
