package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/bijonguha/hello-service/internal/observability"
)

// Gate authorizes requests by comparing the caller-supplied API key
// against the resolver's result.
type Gate struct {
	resolver *Resolver
	logger   observability.Logger
	metrics  *Metrics
}

// GateOption is a functional option for the gate.
type GateOption func(*Gate)

// WithGateLogger sets the logger for the gate.
func WithGateLogger(logger observability.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithGateMetrics sets the metrics recorder for the gate.
func WithGateMetrics(metrics *Metrics) GateOption {
	return func(g *Gate) {
		g.metrics = metrics
	}
}

// NewGate creates a new request gate backed by the given resolver.
func NewGate(resolver *Resolver, opts ...GateOption) *Gate {
	g := &Gate{
		resolver: resolver,
		logger:   observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.metrics == nil {
		g.metrics = NewMetrics("helloservice")
	}

	return g
}

// Authorize checks the caller-supplied key. It returns nil when the key
// matches, ErrKeyMissing when no key was supplied, ErrKeyInvalid on
// mismatch, and a *ConfigError when the expected key cannot be resolved.
func (g *Gate) Authorize(ctx context.Context, callerKey string) error {
	start := time.Now()

	if callerKey == "" {
		g.metrics.RecordAuthorization("missing", time.Since(start))
		g.logger.WithContext(ctx).Warn("API key missing in request")
		return ErrKeyMissing
	}

	expected, err := g.resolver.Resolve(ctx)
	if err != nil {
		g.metrics.RecordAuthorization("config_error", time.Since(start))
		return err
	}

	if subtle.ConstantTimeCompare([]byte(callerKey), []byte(expected)) != 1 {
		g.metrics.RecordAuthorization("invalid", time.Since(start))
		g.logger.WithContext(ctx).Warn("invalid API key provided",
			observability.String("key_prefix", keyPrefix(callerKey)),
		)
		return ErrKeyInvalid
	}

	g.metrics.RecordAuthorization("success", time.Since(start))
	g.logger.WithContext(ctx).Debug("API key verified")
	return nil
}

// keyPrefix returns a redacted form of the key for logging.
func keyPrefix(key string) string {
	if len(key) <= 4 {
		return "***"
	}
	return key[:4] + "***"
}
