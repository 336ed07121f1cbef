// Package config loads promptdiff configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables (PROMPTDIFF_*)
//  2. Project config (./promptdiff.yml)
//  3. Global config (~/.config/promptdiff/promptdiff.yml)
//  4. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/promptdiff/internal/diffview"
)

// Config holds the resolved configuration.
type Config struct {
	// DataURL is the base URL of the static data host serving
	// /data/versions.json and the per-version prompt files.
	DataURL string `mapstructure:"data_url" yaml:"data_url"`

	// LogsURL is shown alongside update-service errors. When empty it is
	// derived from DataURL.
	LogsURL string `mapstructure:"logs_url" yaml:"logs_url"`

	// DataDir holds local state (embedded store, logs).
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`

	// Breakpoint is the terminal width in columns at or above which the
	// diff renders side by side; below it the view stacks.
	Breakpoint int `mapstructure:"breakpoint" yaml:"breakpoint"`

	// HTTPTimeout bounds artifact fetches. Zero means no timeout.
	HTTPTimeout time.Duration `mapstructure:"http_timeout" yaml:"http_timeout"`
}

// DefaultBreakpoint is the side-by-side width threshold in columns.
const DefaultBreakpoint = diffview.DefaultBreakpoint

// GlobalPath returns the path of the global config file.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "promptdiff", "promptdiff.yml")
	}
	return filepath.Join(home, ".config", "promptdiff", "promptdiff.yml")
}

// ProjectPath returns the path of the project-local config file.
func ProjectPath() string {
	return "promptdiff.yml"
}

// Load resolves the configuration from all sources.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("data_url", "")
	v.SetDefault("logs_url", "")
	v.SetDefault("data_dir", ".promptdiff")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(".promptdiff", "promptdiff.log"))
	v.SetDefault("breakpoint", DefaultBreakpoint)
	v.SetDefault("http_timeout", time.Duration(0))

	v.SetEnvPrefix("PROMPTDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Global config first, project config merged on top.
	for i, path := range []string{GlobalPath(), ProjectPath()} {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		var err error
		if i == 0 {
			err = v.ReadInConfig()
		} else {
			err = v.MergeInConfig()
		}
		if err != nil && !os.IsNotExist(err) {
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("error reading config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Breakpoint <= 0 {
		cfg.Breakpoint = DefaultBreakpoint
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable for commands that talk
// to the data host.
func (c *Config) Validate() error {
	if c.DataURL == "" {
		return errors.New("data_url is not set (use PROMPTDIFF_DATA_URL or promptdiff.yml)")
	}
	return nil
}

// ResolveLogsURL returns the logs link shown with service errors.
func (c *Config) ResolveLogsURL() string {
	if c.LogsURL != "" {
		return c.LogsURL
	}
	if c.DataURL == "" {
		return ""
	}
	return strings.TrimRight(c.DataURL, "/") + "/logs"
}

// WriteDefault writes a commented starter config to the given path,
// creating parent directories as needed. Refuses to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	starter := Config{
		DataURL:    "https://example.com",
		DataDir:    ".promptdiff",
		LogLevel:   "info",
		LogFile:    filepath.Join(".promptdiff", "promptdiff.log"),
		Breakpoint: DefaultBreakpoint,
	}
	data, err := yaml.Marshal(&starter)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# promptdiff configuration\n# Values can be overridden with PROMPTDIFF_* environment variables.\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
