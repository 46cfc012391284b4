package auth

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordAuthorization(t *testing.T) {
	t.Parallel()

	m := NewMetrics("helloservice")
	m.Init()
	m.RecordAuthorization("success", time.Millisecond)
	m.RecordAuthorization("invalid", time.Millisecond)

	registry := prometheus.NewRegistry()
	m.Register(registry)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "helloservice_auth_authorization_total")
	assert.Contains(t, names, "helloservice_auth_authorization_duration_seconds")
}

func TestMetrics_RegisterTwice(t *testing.T) {
	t.Parallel()

	m := NewMetrics("helloservice")
	registry := prometheus.NewRegistry()

	m.Register(registry)
	assert.NotPanics(t, func() {
		m.Register(registry)
	})
}
