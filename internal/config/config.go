// Package config builds the immutable service configuration from the
// process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mode identifies the deployment environment the service runs in. It
// selects where the API key is resolved from.
type Mode string

// Supported deployment modes.
const (
	ModeLocal     Mode = "LOCAL"
	ModeCloudDev  Mode = "CLOUD-DEV"
	ModeCloudProd Mode = "CLOUD-PROD"
)

// IsCloud returns true if the mode uses the remote secret store.
func (m Mode) IsCloud() bool {
	return m == ModeCloudDev || m == ModeCloudProd
}

// Supported returns true if the mode is one of the known deployment modes.
func (m Mode) Supported() bool {
	return m == ModeLocal || m.IsCloud()
}

// ParseMode normalizes a raw environment string into a Mode. The value is
// uppercased but otherwise preserved, so unsupported values surface later
// as resolution errors rather than being silently coerced.
func ParseMode(raw string) Mode {
	if raw == "" {
		return ModeLocal
	}
	return Mode(strings.ToUpper(raw))
}

// Default configuration values.
const (
	DefaultAWSRegion     = "ap-south-1"
	DefaultPort          = 8080
	DefaultSecretTimeout = 5 * time.Second
)

// Config holds the service configuration. It is built once at process
// start and passed explicitly to the components that need it.
type Config struct {
	// Mode is the deployment mode derived from ENVIRONMENT.
	Mode Mode

	// AWSRegion is the region used for the secret store client and
	// reported by /info.
	AWSRegion string

	// Port is the HTTP listen port.
	Port int

	// SecretTimeout bounds each remote secret fetch.
	SecretTimeout time.Duration
}

// Load builds the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over values from the file.
func Load() (*Config, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Mode:          ParseMode(os.Getenv("ENVIRONMENT")),
		AWSRegion:     getEnvOrDefault("AWS_REGION", DefaultAWSRegion),
		Port:          DefaultPort,
		SecretTimeout: DefaultSecretTimeout,
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	if timeout := os.Getenv("SECRET_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SECRET_TIMEOUT %q: %w", timeout, err)
		}
		cfg.SecretTimeout = d
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
