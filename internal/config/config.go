// Package config loads the filtro configuration file and applies
// environment overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// SourceKind selects the catalog backend for a source entry.
type SourceKind string

const (
	KindREST   SourceKind = "rest"
	KindSQLite SourceKind = "sqlite"
	KindFile   SourceKind = "file"
)

// ValidKinds lists all supported source kinds.
var ValidKinds = []SourceKind{KindREST, KindSQLite, KindFile}

// SourceConfig configures one catalog source.
type SourceConfig struct {
	Kind               SourceKind    `yaml:"kind"`
	URL                string        `yaml:"url,omitempty"`     // rest
	APIKey             string        `yaml:"api_key,omitempty"` // rest
	Table              string        `yaml:"table,omitempty"`   // rest, sqlite
	Path               string        `yaml:"path,omitempty"`    // sqlite, file
	Timeout            time.Duration `yaml:"timeout,omitempty"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	TipInterval  time.Duration `yaml:"tip_interval"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	PageSize     int           `yaml:"page_size"`
}

// Config is the top-level configuration.
type Config struct {
	Sources []SourceConfig `yaml:"sources"`
	Logging LoggingConfig  `yaml:"logging"`
	UI      UIConfig       `yaml:"ui"`
}

// DefaultConfig returns the configuration used when no file is present.
// It has no sources; one must come from the file, the environment or flags.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		UI: UIConfig{
			TipInterval:  15 * time.Second,
			FetchTimeout: 15 * time.Second,
			PageSize:     10,
		},
	}
}

// Load loads configuration from a YAML file, then applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. The
// NEXT_PUBLIC_* names are accepted so an existing web deployment's
// environment works unchanged.
func (c *Config) applyEnvOverrides() {
	baseURL := getEnv("FILTRO_SUPABASE_URL", os.Getenv("NEXT_PUBLIC_SUPABASE_URL"))
	apiKey := getEnv("FILTRO_SUPABASE_KEY", os.Getenv("NEXT_PUBLIC_SUPABASE_ANON_KEY"))

	if baseURL != "" {
		if i := c.restIndex(); i >= 0 {
			c.Sources[i].URL = baseURL
		} else {
			c.Sources = append(c.Sources, SourceConfig{Kind: KindREST, URL: baseURL})
		}
	}
	if apiKey != "" {
		if i := c.restIndex(); i >= 0 {
			c.Sources[i].APIKey = apiKey
		}
	}
	if table := os.Getenv("FILTRO_TABLE"); table != "" {
		for i := range c.Sources {
			if c.Sources[i].Kind != KindFile {
				c.Sources[i].Table = table
			}
		}
	}
	if level := os.Getenv("FILTRO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func (c *Config) restIndex() int {
	for i, s := range c.Sources {
		if s.Kind == KindREST {
			return i
		}
	}
	return -1
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no catalog source configured (set FILTRO_SUPABASE_URL, add sources to the config file, or pass --source)")
	}
	for i, s := range c.Sources {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.UI.TipInterval <= 0 {
		return fmt.Errorf("ui.tip_interval must be positive, got %s", c.UI.TipInterval)
	}
	if c.UI.FetchTimeout <= 0 {
		return fmt.Errorf("ui.fetch_timeout must be positive, got %s", c.UI.FetchTimeout)
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	return nil
}

// Validate checks a single source entry.
func (s SourceConfig) Validate() error {
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", s.Timeout)
	}
	switch s.Kind {
	case KindREST:
		if s.URL == "" {
			return fmt.Errorf("rest source requires url")
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("invalid url %q: %w", s.URL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("url %q has no host", s.URL)
		}
	case KindSQLite, KindFile:
		if s.Path == "" {
			return fmt.Errorf("%s source requires path", s.Kind)
		}
	default:
		return fmt.Errorf("invalid source kind: %q (valid: %v)", s.Kind, ValidKinds)
	}
	return nil
}

// ZapLevel returns the configured log level, falling back to info.
func (c *Config) ZapLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
