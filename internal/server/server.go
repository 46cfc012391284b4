package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bijonguha/hello-service/internal/auth"
	"github.com/bijonguha/hello-service/internal/config"
	"github.com/bijonguha/hello-service/internal/observability"
)

// ginModeOnce ensures gin.SetMode is only called once to avoid race
// conditions.
var ginModeOnce sync.Once

// Default HTTP server timeouts.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 120 * time.Second
)

// Server is the HTTP server for the hello service.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	logger     observability.Logger

	mu      sync.RWMutex
	running bool
}

// New creates the HTTP server with all routes and middleware wired.
func New(
	cfg *config.Config,
	gate *auth.Gate,
	metrics *observability.Metrics,
	logger observability.Logger,
) *Server {
	ginModeOnce.Do(func() {
		gin.SetMode(gin.ReleaseMode)
	})

	engine := gin.New()
	engine.Use(
		Recovery(logger),
		RequestID(),
		Logging(logger),
		Metrics(metrics),
	)

	handlers := NewHandlers(cfg, gate, logger)

	engine.GET("/healthcheck", handlers.Healthcheck)
	engine.GET("/info", handlers.Info)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.POST("/hello", handlers.Hello)

	return &Server{
		engine: engine,
		config: cfg,
		logger: logger,
	}
}

// Engine returns the underlying gin engine. Tests drive requests through
// it directly.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("starting HTTP server",
		observability.String("address", addr),
		observability.String("environment", string(s.config.Mode)),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop stops the HTTP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.logger.Info("stopping HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.logger.Info("HTTP server stopped")
	return nil
}

// IsRunning returns whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
