package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/earthquake_usgs_2025.csv", cfg.DataPath)
	assert.Equal(t, ":8050", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "earthquake_data.csv", cfg.ExportFilename)
	assert.Equal(t, 1024, cfg.ChartWidth)
	assert.Equal(t, 600, cfg.ChartHeight)
	assert.Equal(t, 5, cfg.DefaultNetworks)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_PATH", "/srv/quakes.csv")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("EXPORT_FILENAME", "quakes.csv")
	t.Setenv("CHART_WIDTH", "1600")
	t.Setenv("CHART_HEIGHT", "900")
	t.Setenv("DEFAULT_NETWORKS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/quakes.csv", cfg.DataPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "quakes.csv", cfg.ExportFilename)
	assert.Equal(t, 1600, cfg.ChartWidth)
	assert.Equal(t, 900, cfg.ChartHeight)
	assert.Equal(t, 3, cfg.DefaultNetworks)
}

func TestLoad_DebugForcesDebugLevel(t *testing.T) {
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidDebug(t *testing.T) {
	t.Setenv("DEBUG", "maybe")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBUG")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidChartSize(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CHART_WIDTH", "0"},
		{"CHART_WIDTH", "wide"},
		{"CHART_HEIGHT", "-10"},
		{"DEFAULT_NETWORKS", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_ExportFilenameMustBeCSV(t *testing.T) {
	t.Setenv("EXPORT_FILENAME", "quakes.xlsx")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXPORT_FILENAME")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}
