package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_FormatAndLevel(t *testing.T) {
	var buf bytes.Buffer

	jsonLog := newLogger(&buf, "info", "json")
	jsonLog.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	textLog := newLogger(&buf, "warn", "text")
	textLog.Info("dropped")
	assert.Empty(t, buf.String(), "info suppressed at warn level")
	textLog.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.APIRequests.WithLabelValues("points", "success").Inc()
	m.EventsPublished.Set(6)
	m.RunSuccess.Set(1)

	path := filepath.Join(t.TempDir(), "noaa2ical.prom")
	require.NoError(t, m.WriteTextfile(path))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), "noaa2ical_api_requests_total")
	assert.Contains(t, string(out), "noaa2ical_events_published 6")
	assert.Contains(t, string(out), "noaa2ical_run_success 1")
}

func TestMetrics_WriteTextfile_DisabledByEmptyPath(t *testing.T) {
	assert.NoError(t, NewMetrics().WriteTextfile(""))
}

// Repeated construction must not panic; each Metrics owns its registry.
func TestNewMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = NewMetrics()
		_ = NewMetrics()
	})
}
