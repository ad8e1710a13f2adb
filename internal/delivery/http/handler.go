package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labellens/backend/internal/domain"
	"github.com/labellens/backend/internal/infrastructure/logging"
	"go.uber.org/zap"
)

const (
	serviceName    = "labellens-backend"
	serviceVersion = "1.0.0"

	// imageFormField is the multipart field carrying the label photo
	imageFormField = "image"

	// multipartOverhead allows for boundaries and part headers on top of the image itself
	multipartOverhead = 64 << 10
)

// LabelAnalyzer is the use case behind the label endpoints
type LabelAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte) (*domain.LabelAnalysis, error)
	AnalyzeText(ctx context.Context, text string) *domain.LabelAnalysis
	Keywords() domain.KeywordTables
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	labels         LabelAnalyzer
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates a new HTTP handler.
// A nil analyzer makes the label endpoints answer 503.
func NewHandler(labels LabelAnalyzer, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{
		labels:         labels,
		maxUploadBytes: maxUploadBytes,
		logger:         logging.OrNop(logger),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// AnalyzeLabel handles POST /api/v1/labels/analyze with a multipart image upload
func (h *Handler) AnalyzeLabel(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	if c.Request.ContentLength > h.maxUploadBytes+multipartOverhead {
		h.respondError(c, domain.ErrImageTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(c, domain.ErrImageTooLarge)
			return
		}
		h.respondError(c, fmt.Errorf("%w: multipart field %q is required", domain.ErrInvalidRequest, imageFormField))
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		h.respondError(c, domain.ErrImageTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: cannot open upload: %v", domain.ErrInvalidRequest, err))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		h.respondError(c, fmt.Errorf("%w: cannot read upload: %v", domain.ErrInvalidRequest, err))
		return
	}
	if int64(len(image)) > h.maxUploadBytes {
		h.respondError(c, domain.ErrImageTooLarge)
		return
	}

	analysis, err := h.labels.AnalyzeImage(c.Request.Context(), image)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// AnalyzeText handles POST /api/v1/labels/analyze-text with {"text": "..."}
func (h *Handler) AnalyzeText(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req domain.AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	c.JSON(http.StatusOK, h.labels.AnalyzeText(c.Request.Context(), *req.Text))
}

// Keywords handles GET /api/v1/keywords
func (h *Handler) Keywords(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, h.labels.Keywords())
}

// ready answers 503 when no analyzer is wired
func (h *Handler) ready(c *gin.Context) bool {
	if h.labels == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "label service not configured",
		})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusForError(err)
	_ = c.Error(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		message = "internal server error"
	}

	c.JSON(status, gin.H{"error": message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrEmptyImage),
		errors.Is(err, domain.ErrUnsupportedImage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrOCRFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
