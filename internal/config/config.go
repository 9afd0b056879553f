package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// Keyword lists driving classification
	Keywords KeywordsConfig `yaml:"keywords"`

	// Monitor loop configuration
	Monitor MonitorConfig `yaml:"monitor"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Daemon configuration
	Daemon DaemonConfig `yaml:"daemon"`

	// Web server configuration
	Web WebConfig `yaml:"web"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// KeywordsConfig holds the target and ignored keyword lists
type KeywordsConfig struct {
	Targets []string `yaml:"targets"` // Focusing a window matching one of these minimizes the rest
	Ignored []string `yaml:"ignored"` // Windows matching one of these are never minimized
}

// MonitorConfig holds polling behavior configuration
type MonitorConfig struct {
	PollInterval    time.Duration `yaml:"poll_interval"`    // How often to check the focused window
	CacheValidity   time.Duration `yaml:"cache_validity"`   // How long a window enumeration is reused
	MinimizeWorkers int           `yaml:"minimize_workers"` // Concurrent minimize requests per focus change
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Enabled       bool   `yaml:"enabled"`        // Record minimize actions
	Path          string `yaml:"path"`           // Path to SQLite database file
	RetentionDays int    `yaml:"retention_days"` // Events older than this are pruned at startup; 0 keeps all
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string `yaml:"pid_file"` // Path to PID file for daemon management
}

// WebConfig holds web server configuration
type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"` // Host to bind web server to
	Port    int    `yaml:"port"` // Port for web server
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

const (
	MinPollInterval  = 10 * time.Millisecond
	MaxPollInterval  = 10 * time.Second
	MaxCacheValidity = 5 * time.Second
	MaxWorkers       = 64
)

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Keywords: KeywordsConfig{
			Targets: []string{"Trae"},
			Ignored: []string{"WhatsApp"},
		},
		Monitor: MonitorConfig{
			PollInterval:    100 * time.Millisecond,
			CacheValidity:   50 * time.Millisecond,
			MinimizeWorkers: 4,
		},
		Database: DatabaseConfig{
			Enabled:       true,
			Path:          "", // Empty means use the XDG data dir
			RetentionDays: 30,
		},
		Daemon: DaemonConfig{
			PIDFile: filepath.Join(xdg.RuntimeDir, "focuskeeper.pid"),
		},
		Web: WebConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    7420,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Keywords.Targets) == 0 {
		return errors.New("at least one target keyword is required")
	}
	if err := validateKeywords("target", c.Keywords.Targets); err != nil {
		return err
	}
	if err := validateKeywords("ignored", c.Keywords.Ignored); err != nil {
		return err
	}

	if c.Monitor.PollInterval < MinPollInterval || c.Monitor.PollInterval > MaxPollInterval {
		return errors.Errorf("poll interval (%v) must be between %v and %v",
			c.Monitor.PollInterval, MinPollInterval, MaxPollInterval)
	}

	if c.Monitor.CacheValidity < 0 || c.Monitor.CacheValidity > MaxCacheValidity {
		return errors.Errorf("cache validity (%v) must be between 0 and %v",
			c.Monitor.CacheValidity, MaxCacheValidity)
	}

	if c.Monitor.MinimizeWorkers < 1 || c.Monitor.MinimizeWorkers > MaxWorkers {
		return errors.Errorf("minimize workers must be between 1 and %d, got %d",
			MaxWorkers, c.Monitor.MinimizeWorkers)
	}

	if c.Database.RetentionDays < 0 {
		return errors.New("retention days cannot be negative")
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return errors.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return errors.New("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return errors.New("PID file path cannot be empty")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("log format must be console or json, got %q", c.Log.Format)
	}

	return nil
}

// An empty keyword is a substring of every title and would match everything.
func validateKeywords(kind string, keywords []string) error {
	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		if strings.TrimSpace(k) == "" {
			return errors.Errorf("%s keywords cannot be blank", kind)
		}
		if seen[k] {
			return errors.Errorf("duplicate %s keyword %q", kind, k)
		}
		seen[k] = true
	}
	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", MinPollInterval)
	}
	if interval > MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", MaxPollInterval)
	}
	c.Monitor.PollInterval = interval
	return nil
}

// SetWebPort sets the web server port with validation
func (c *Config) SetWebPort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	c.Web.Port = port
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Keywords:
    Targets: %v
    Ignored: %v
  Monitor:
    Poll Interval: %v
    Cache Validity: %v
    Minimize Workers: %d
  Database:
    Enabled: %v
    Path: %s
    Retention Days: %d
  Daemon:
    PID File: %s
  Web:
    Enabled: %v
    Host: %s
    Port: %d
  Log:
    Level: %s
    Format: %s`,
		c.Keywords.Targets,
		c.Keywords.Ignored,
		c.Monitor.PollInterval,
		c.Monitor.CacheValidity,
		c.Monitor.MinimizeWorkers,
		c.Database.Enabled,
		c.Database.Path,
		c.Database.RetentionDays,
		c.Daemon.PIDFile,
		c.Web.Enabled,
		c.Web.Host,
		c.Web.Port,
		c.Log.Level,
		c.Log.Format,
	)
}
