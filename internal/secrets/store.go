package secrets

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/bijonguha/hello-service/internal/observability"
)

// DefaultTimeout bounds a single parameter fetch when no timeout is
// configured. A bounded timeout prevents request pile-up behind a slow
// secret store.
const DefaultTimeout = 5 * time.Second

// Store fetches decrypted parameters from the secret store by name.
type Store interface {
	// GetParameter returns the decrypted value of the named parameter.
	GetParameter(ctx context.Context, name string) (string, error)
}

// Config holds configuration for the parameter store client.
type Config struct {
	// Region is the AWS region the SSM client connects to.
	Region string

	// Timeout bounds each GetParameter call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c == nil {
		return NewError("validate", "", ErrInvalidConfig)
	}
	if c.Region == "" {
		return NewError("validate", "", errors.New("region is required"))
	}
	return nil
}

// GetTimeout returns the configured timeout or the default.
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// ParameterGetter is the subset of the SSM client used by the store. It
// exists so tests can substitute a fake client.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterStore implements Store using AWS SSM Parameter Store.
type ParameterStore struct {
	config  *Config
	api     ParameterGetter
	logger  observability.Logger
	metrics *Metrics
}

// StoreOption is a functional option for the parameter store.
type StoreOption func(*ParameterStore)

// WithClient sets the underlying SSM client.
func WithClient(api ParameterGetter) StoreOption {
	return func(s *ParameterStore) {
		s.api = api
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger observability.Logger) StoreOption {
	return func(s *ParameterStore) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder for the store.
func WithMetrics(metrics *Metrics) StoreOption {
	return func(s *ParameterStore) {
		s.metrics = metrics
	}
}

// New creates a new parameter store client. Unless a client is injected
// with WithClient, the default AWS credential chain is used to build one
// for the configured region.
func New(ctx context.Context, cfg *Config, opts ...StoreOption) (*ParameterStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &ParameterStore{
		config: cfg,
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.metrics == nil {
		s.metrics = NewMetrics("helloservice")
	}

	if s.api == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, NewError("init", "", err)
		}
		s.api = ssm.NewFromConfig(awsCfg)
	}

	s.logger.Info("parameter store client initialized",
		observability.String("region", cfg.Region),
		observability.Duration("timeout", cfg.GetTimeout()),
	)

	return s, nil
}

// GetParameter fetches the named parameter with decryption enabled. Each
// call is a fresh remote round trip bounded by the configured timeout.
func (s *ParameterStore) GetParameter(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.GetTimeout())
	defer cancel()

	start := time.Now()

	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			s.metrics.RecordRequest("get_parameter", "not_found", time.Since(start))
			return "", NewError("get_parameter", name, ErrParameterNotFound)
		}
		s.metrics.RecordRequest("get_parameter", "error", time.Since(start))
		return "", NewError("get_parameter", name, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil || *out.Parameter.Value == "" {
		s.metrics.RecordRequest("get_parameter", "empty", time.Since(start))
		return "", NewError("get_parameter", name, ErrEmptyParameter)
	}

	s.metrics.RecordRequest("get_parameter", "success", time.Since(start))
	s.logger.Debug("parameter fetched",
		observability.String("name", name),
		observability.Duration("duration", time.Since(start)),
	)

	return *out.Parameter.Value, nil
}

// Ensure ParameterStore implements Store.
var _ Store = (*ParameterStore)(nil)
