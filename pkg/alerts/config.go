package alerts

import (
	"os"
	"strconv"
)

// Config controls the alert recorder.
type Config struct {
	CacheSize     int  // Size of the in-memory recent buffer. Default 50.
	RetentionDays int  // How long to keep alerts. Default 90.
	Enabled       bool // Whether alert recording is active. Default true.
}

// DefaultConfig returns the default alert configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheSize:     50,
		RetentionDays: 90,
		Enabled:       true,
	}
}

// ConfigFromEnv loads config from environment variables.
// TRANSPORTES_ALERT_CACHE_SIZE, TRANSPORTES_ALERT_RETENTION_DAYS,
// TRANSPORTES_ALERT_ENABLED
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TRANSPORTES_ALERT_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}

	if v := os.Getenv("TRANSPORTES_ALERT_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetentionDays = n
		}
	}

	if v := os.Getenv("TRANSPORTES_ALERT_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}

	return cfg
}
