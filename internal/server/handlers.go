package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bijonguha/hello-service/internal/auth"
	"github.com/bijonguha/hello-service/internal/config"
	"github.com/bijonguha/hello-service/internal/observability"
)

// Service identity reported by /info.
const (
	ServiceTitle   = "Hello Service"
	ServiceVersion = "1.0.0"
)

// HealthResponse is the /healthcheck response body.
type HealthResponse struct {
	Status      string `json:"status"`
	Code        int    `json:"code"`
	Environment string `json:"environment"`
	Region      string `json:"region"`
}

// InfoResponse is the /info response body.
type InfoResponse struct {
	Environment string `json:"environment"`
	AWSRegion   string `json:"aws_region"`
	Title       string `json:"title"`
	Version     string `json:"version"`
}

// HelloRequest is the /hello request body. Name must be present but may
// be empty; a pointer distinguishes a missing field from an empty string.
type HelloRequest struct {
	Name *string `json:"name" binding:"required"`
}

// HelloResponse is the /hello response body.
type HelloResponse struct {
	Message string `json:"message"`
}

// Handlers holds the request handlers and their dependencies.
type Handlers struct {
	config    *config.Config
	gate      *auth.Gate
	extractor auth.Extractor
	logger    observability.Logger
}

// NewHandlers creates the request handlers.
func NewHandlers(cfg *config.Config, gate *auth.Gate, logger observability.Logger) *Handlers {
	return &Handlers{
		config:    cfg,
		gate:      gate,
		extractor: auth.DefaultExtractor(),
		logger:    logger,
	}
}

// Healthcheck handles GET /healthcheck. No authentication is required.
func (h *Handlers) Healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Code:        http.StatusOK,
		Environment: string(h.config.Mode),
		Region:      h.config.AWSRegion,
	})
}

// Info handles GET /info. No authentication is required.
func (h *Handlers) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Environment: string(h.config.Mode),
		AWSRegion:   h.config.AWSRegion,
		Title:       fmt.Sprintf("%s - %s", ServiceTitle, h.config.Mode),
		Version:     ServiceVersion,
	})
}

// Hello handles POST /hello. The body is validated before the API key is
// checked, so a request without a name field is rejected with 422 even
// when the key would not pass.
func (h *Handlers) Hello(c *gin.Context) {
	var req HelloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_error",
			"message": "request body must be JSON with a name field",
		})
		return
	}

	key := h.extractor.Extract(c.Request)
	if err := h.gate.Authorize(c.Request.Context(), key); err != nil {
		h.abortAuthError(c, err)
		return
	}

	h.logger.WithContext(c.Request.Context()).Info("hello request",
		observability.String("client_ip", c.ClientIP()),
		observability.String("name", *req.Name),
	)

	c.JSON(http.StatusOK, HelloResponse{
		Message: fmt.Sprintf("Hello %s!", *req.Name),
	})
}

// abortAuthError maps an authorization failure to its response. Missing
// or mismatching keys yield 401; a key resolution failure yields 500.
func (h *Handlers) abortAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrKeyMissing):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "API key required",
		})
	case errors.Is(err, auth.ErrKeyInvalid):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "invalid API key",
		})
	default:
		h.logger.WithContext(c.Request.Context()).Error("API key verification failed",
			observability.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "configuration_error",
			"message": "API key verification failed",
		})
	}
}
