package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("catalog loaded", "rows", 12)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog loaded", entry["msg"])
	assert.Equal(t, "quake-dashboard", entry["service"])
	assert.EqualValues(t, 12, entry["rows"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "text")

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestMetricsRegisterCleanly(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(m.Callbacks))
	require.NoError(t, reg.Register(m.CatalogRows))

	m.Callbacks.WithLabelValues("figure", "ok").Inc()
	m.CatalogRows.Set(12545)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Callbacks.WithLabelValues("figure", "ok")))
	assert.Equal(t, 12545.0, testutil.ToFloat64(m.CatalogRows))
}
