// Package main is the entry point for the hello service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bijonguha/hello-service/internal/auth"
	"github.com/bijonguha/hello-service/internal/config"
	"github.com/bijonguha/hello-service/internal/observability"
	"github.com/bijonguha/hello-service/internal/secrets"
	"github.com/bijonguha/hello-service/internal/server"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

// cliFlags holds command line flags.
type cliFlags struct {
	logLevel    string
	logFormat   string
	showVersion bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		printVersion()
		return
	}

	logger := initLogger(flags)
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig(logger)
	app := initApplication(cfg, logger)

	runServer(app, logger)
}

// parseFlags parses command line flags.
func parseFlags() cliFlags {
	logLevel := flag.String("log-level", getEnvOrDefault("HELLO_LOG_LEVEL", "info"),
		"Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", getEnvOrDefault("HELLO_LOG_FORMAT", "json"),
		"Log format (json, console)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	return cliFlags{
		logLevel:    *logLevel,
		logFormat:   *logFormat,
		showVersion: *showVersion,
	}
}

// printVersion prints version information and exits.
func printVersion() {
	fmt.Printf("hello-service version %s\n", version)
	fmt.Printf("  Build time: %s\n", buildTime)
	fmt.Printf("  Git commit: %s\n", gitCommit)
}

// initLogger initializes the logger.
func initLogger(flags cliFlags) observability.Logger {
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  flags.logLevel,
		Format: flags.logFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	return logger
}

// loadConfig loads the service configuration from the environment.
func loadConfig(logger observability.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", observability.Error(err))
	}

	logger.Info("starting hello-service",
		observability.String("version", version),
		observability.String("environment", string(cfg.Mode)),
		observability.String("aws_region", cfg.AWSRegion),
		observability.Int("port", cfg.Port),
	)

	return cfg
}

// application holds all application components.
type application struct {
	server *server.Server
	config *config.Config
}

// initApplication initializes all application components.
func initApplication(cfg *config.Config, logger observability.Logger) *application {
	metrics := observability.NewMetrics("helloservice")

	authMetrics := auth.NewMetrics("helloservice")
	authMetrics.Init()
	authMetrics.Register(metrics.Registry())

	resolverOpts := []auth.ResolverOption{
		auth.WithResolverLogger(logger),
	}

	if cfg.Mode.IsCloud() {
		if store := initSecretStore(cfg, metrics, logger); store != nil {
			resolverOpts = append(resolverOpts, auth.WithStore(store))
		}
	}

	resolver := auth.NewResolver(cfg.Mode, resolverOpts...)
	gate := auth.NewGate(resolver,
		auth.WithGateLogger(logger),
		auth.WithGateMetrics(authMetrics),
	)

	return &application{
		server: server.New(cfg, gate, metrics, logger),
		config: cfg,
	}
}

// initSecretStore creates the SSM parameter store client used in cloud
// modes. A creation failure is not fatal: the resolver is left without a
// store and protected requests fail with 500 until the problem is fixed.
func initSecretStore(
	cfg *config.Config,
	metrics *observability.Metrics,
	logger observability.Logger,
) secrets.Store {
	secretMetrics := secrets.NewMetrics("helloservice")
	secretMetrics.Register(metrics.Registry())

	store, err := secrets.New(context.Background(),
		&secrets.Config{
			Region:  cfg.AWSRegion,
			Timeout: cfg.SecretTimeout,
		},
		secrets.WithLogger(logger),
		secrets.WithMetrics(secretMetrics),
	)
	if err != nil {
		logger.Error("failed to initialize secret store, key resolution will fail",
			observability.Error(err),
		)
		return nil
	}

	return store
}

// runServer runs the HTTP server and handles graceful shutdown.
func runServer(app *application, logger observability.Logger) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Start(context.Background())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", observability.Error(err))
		}
		return
	case sig := <-sigCh:
		logger.Info("received shutdown signal", observability.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop server gracefully", observability.Error(err))
	}
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
