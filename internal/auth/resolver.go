package auth

import (
	"context"
	"os"

	"github.com/bijonguha/hello-service/internal/config"
	"github.com/bijonguha/hello-service/internal/observability"
	"github.com/bijonguha/hello-service/internal/secrets"
)

const (
	// ParameterName is the secret store parameter holding the API key.
	ParameterName = "API_KEY"

	// EnvAPIKey is the environment variable holding the API key. It is
	// the primary source in LOCAL mode and the fallback in cloud modes.
	EnvAPIKey = "API_KEY"

	// DefaultLocalKey is the documented development key used in LOCAL
	// mode when API_KEY is not set.
	DefaultLocalKey = "bijonguha"
)

// Resolver determines the expected API key for a deployment mode.
type Resolver struct {
	mode   config.Mode
	store  secrets.Store
	env    func(string) string
	logger observability.Logger
}

// ResolverOption is a functional option for the resolver.
type ResolverOption func(*Resolver)

// WithStore sets the secret store used in cloud modes.
func WithStore(store secrets.Store) ResolverOption {
	return func(r *Resolver) {
		r.store = store
	}
}

// WithResolverLogger sets the logger for the resolver.
func WithResolverLogger(logger observability.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithEnvFunc sets the environment lookup function. Defaults to os.Getenv.
func WithEnvFunc(env func(string) string) ResolverOption {
	return func(r *Resolver) {
		r.env = env
	}
}

// NewResolver creates a new key resolver for the given deployment mode.
func NewResolver(mode config.Mode, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		mode:   mode,
		env:    os.Getenv,
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the expected API key. Each call performs a fresh
// resolution: the environment is re-read and cloud modes hit the secret
// store every time.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	switch {
	case r.mode == config.ModeLocal:
		if key := r.env(EnvAPIKey); key != "" {
			return key, nil
		}
		return DefaultLocalKey, nil

	case r.mode.IsCloud():
		return r.resolveRemote(ctx)

	default:
		return "", NewConfigError("unsupported environment: " + string(r.mode))
	}
}

// resolveRemote fetches the key from the secret store, falling back to the
// environment when the fetch fails. An unconfigured store fails immediately
// without consulting the fallback; this mirrors how the service has always
// treated a missing client as a distinct hard failure.
func (r *Resolver) resolveRemote(ctx context.Context) (string, error) {
	if r.store == nil {
		return "", NewConfigError("secret store not configured")
	}

	key, err := r.store.GetParameter(ctx, ParameterName)
	if err == nil {
		r.logger.Debug("API key resolved from secret store")
		return key, nil
	}

	r.logger.Error("failed to fetch API key from secret store",
		observability.Error(err),
	)

	if fallback := r.env(EnvAPIKey); fallback != "" {
		r.logger.Warn("falling back to environment variable for API key")
		return fallback, nil
	}

	return "", NewConfigErrorWithCause("key retrieval failed", err)
}
