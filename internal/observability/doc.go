// Package observability provides structured logging and Prometheus metrics
// for the hello service.
//
// Logging is backed by zap behind a small Logger interface so that packages
// depend on the interface rather than on zap directly. Metrics are grouped
// per concern (HTTP, auth, secrets) and registered on a shared registry
// exposed at /metrics.
package observability
