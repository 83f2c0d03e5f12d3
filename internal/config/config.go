package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all dashboard settings, populated from environment variables.
type Config struct {
	DataPath        string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	Debug           bool

	// Export and image rendering.
	ExportFilename string
	ChartWidth     int
	ChartHeight    int

	// DefaultNetworks is how many networks the gap checklist preselects.
	DefaultNetworks int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	chartWidth, err := parsePositiveInt("CHART_WIDTH", 1024)
	if err != nil {
		return nil, err
	}
	chartHeight, err := parsePositiveInt("CHART_HEIGHT", 600)
	if err != nil {
		return nil, err
	}
	defaultNetworks, err := parsePositiveInt("DEFAULT_NETWORKS", 5)
	if err != nil {
		return nil, err
	}

	debug := false
	if v := os.Getenv("DEBUG"); v != "" {
		debug, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid DEBUG")
		}
	}

	cfg := &Config{
		DataPath:        sharedcfg.EnvOrDefault("DATA_PATH", "data/earthquake_usgs_2025.csv"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8050"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Debug:           debug,

		ExportFilename: sharedcfg.EnvOrDefault("EXPORT_FILENAME", "earthquake_data.csv"),
		ChartWidth:     chartWidth,
		ChartHeight:    chartHeight,

		DefaultNetworks: defaultNetworks,
	}

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if strings.TrimSpace(cfg.DataPath) == "" {
		return nil, errors.New("DATA_PATH is required")
	}
	if !strings.HasSuffix(strings.ToLower(cfg.ExportFilename), ".csv") {
		return nil, errors.New("EXPORT_FILENAME must end in .csv")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, errors.New("LOG_FORMAT must be json or text")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
