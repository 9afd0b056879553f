package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override file and default values
func LoadFromEnv(cfg *Config) {
	// Keyword configuration
	if targets := os.Getenv("FOCUSKEEPER_TARGETS"); targets != "" {
		cfg.Keywords.Targets = splitList(targets)
	}

	if ignored, ok := os.LookupEnv("FOCUSKEEPER_IGNORED"); ok {
		cfg.Keywords.Ignored = splitList(ignored)
	}

	// Monitor configuration
	if pollInterval := os.Getenv("FOCUSKEEPER_POLL_INTERVAL"); pollInterval != "" {
		if interval, err := time.ParseDuration(pollInterval); err == nil {
			if interval >= MinPollInterval && interval <= MaxPollInterval {
				cfg.Monitor.PollInterval = interval
			}
		}
	}

	if validity := os.Getenv("FOCUSKEEPER_CACHE_VALIDITY"); validity != "" {
		if d, err := time.ParseDuration(validity); err == nil && d >= 0 {
			cfg.Monitor.CacheValidity = d
		}
	}

	if workers := os.Getenv("FOCUSKEEPER_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			cfg.Monitor.MinimizeWorkers = n
		}
	}

	// Database configuration
	if dbPath := os.Getenv("FOCUSKEEPER_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if disabled := os.Getenv("FOCUSKEEPER_DB_DISABLED"); disabled != "" {
		if val, err := strconv.ParseBool(disabled); err == nil {
			cfg.Database.Enabled = !val
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("FOCUSKEEPER_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Web configuration
	if webHost := os.Getenv("FOCUSKEEPER_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("FOCUSKEEPER_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}

	// Log configuration
	if level := os.Getenv("FOCUSKEEPER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if format := os.Getenv("FOCUSKEEPER_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
