package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bijonguha/hello-service/internal/auth"
	"github.com/bijonguha/hello-service/internal/config"
	"github.com/bijonguha/hello-service/internal/observability"
)

// stubStore is a stub secret store for testing.
type stubStore struct {
	value string
	err   error
}

func (s *stubStore) GetParameter(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.value, nil
}

// testEnv returns an env lookup function backed by a map.
func testEnv(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func newTestConfig(mode config.Mode) *config.Config {
	return &config.Config{
		Mode:          mode,
		AWSRegion:     "ap-south-1",
		Port:          8080,
		SecretTimeout: time.Second,
	}
}

// newTestServer builds a server around the given resolver options.
func newTestServer(t *testing.T, cfg *config.Config, opts ...auth.ResolverOption) *Server {
	t.Helper()

	resolver := auth.NewResolver(cfg.Mode, opts...)
	gate := auth.NewGate(resolver, auth.WithGateLogger(observability.NopLogger()))
	metrics := observability.NewMetrics("helloservice")

	return New(cfg, gate, metrics, observability.NopLogger())
}

// newLocalServer builds a LOCAL-mode server using the default key.
func newLocalServer(t *testing.T) *Server {
	t.Helper()
	return newTestServer(t, newTestConfig(config.ModeLocal),
		auth.WithEnvFunc(testEnv(nil)),
	)
}

func doRequest(s *Server, method, path, body, apiKey string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set(auth.HeaderAPIKey, apiKey)
	}

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestServer_Healthcheck(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	w := doRequest(s, http.MethodGet, "/healthcheck", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "LOCAL", resp.Environment)
	assert.Equal(t, "ap-south-1", resp.Region)
}

func TestServer_Info(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	w := doRequest(s, http.MethodGet, "/info", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LOCAL", resp.Environment)
	assert.Equal(t, "ap-south-1", resp.AWSRegion)
	assert.Equal(t, "Hello Service - LOCAL", resp.Title)
	assert.Equal(t, ServiceVersion, resp.Version)
}

func TestServer_Hello_ValidKey(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	w := doRequest(s, http.MethodPost, "/hello", `{"name": "Bijon"}`, auth.DefaultLocalKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Hello Bijon!"}`, w.Body.String())
}

func TestServer_Hello_EmptyName(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	w := doRequest(s, http.MethodPost, "/hello", `{"name": ""}`, auth.DefaultLocalKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Hello !"}`, w.Body.String())
}

func TestServer_Hello_MissingName(t *testing.T) {
	t.Parallel()

	// Body validation runs before the key check, so a request without a
	// name field gets 422 whatever the key looks like.
	tests := []struct {
		name   string
		apiKey string
	}{
		{name: "valid key", apiKey: auth.DefaultLocalKey},
		{name: "invalid key", apiKey: "wrong-key"},
		{name: "no key", apiKey: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newLocalServer(t)

			w := doRequest(s, http.MethodPost, "/hello", `{}`, tt.apiKey)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestServer_Hello_MalformedBody(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	w := doRequest(s, http.MethodPost, "/hello", `{"name":`, auth.DefaultLocalKey)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestServer_Hello_MissingKey(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	w := doRequest(s, http.MethodPost, "/hello", `{"name": "Bijon"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestServer_Hello_InvalidKey(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	w := doRequest(s, http.MethodPost, "/hello", `{"name": "Bijon"}`, "wrong-key")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid API key")
}

func TestServer_Hello_CloudModeStoreKey(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, newTestConfig(config.ModeCloudDev),
		auth.WithStore(&stubStore{value: "test-key"}),
		auth.WithEnvFunc(testEnv(nil)),
	)

	w := doRequest(s, http.MethodPost, "/hello", `{"name": "Bijon"}`, "test-key")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Hello Bijon!"}`, w.Body.String())
}

func TestServer_Hello_CloudModeResolutionFailure(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, newTestConfig(config.ModeCloudDev),
		auth.WithStore(&stubStore{err: errors.New("connection refused")}),
		auth.WithEnvFunc(testEnv(nil)),
		auth.WithResolverLogger(observability.NopLogger()),
	)

	w := doRequest(s, http.MethodPost, "/hello", `{"name": "Bijon"}`, "test-key")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "API key verification failed")
}

func TestServer_Hello_CloudModeStoreNotConfigured(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, newTestConfig(config.ModeCloudProd),
		auth.WithEnvFunc(testEnv(map[string]string{auth.EnvAPIKey: "fallback"})),
	)

	w := doRequest(s, http.MethodPost, "/hello", `{"name": "Bijon"}`, "fallback")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_Metrics(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	// Generate one request so the HTTP series exist.
	doRequest(s, http.MethodGet, "/healthcheck", "", "")

	w := doRequest(s, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "helloservice_http_requests_total")
}

func TestServer_StopWithoutStart(t *testing.T) {
	t.Parallel()

	s := newLocalServer(t)

	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop(context.Background()))
}
