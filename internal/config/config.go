package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Config is the docsite configuration file format.
type Config struct {
	Version    string           `yaml:"version"`
	Site       SiteConfig       `yaml:"site"`
	Server     ServerConfig     `yaml:"server"`
	Audit      AuditConfig      `yaml:"audit"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// SiteConfig describes the content trees and the locale set served by the site.
type SiteConfig struct {
	Title           string         `yaml:"title"`
	DefaultLocale   string         `yaml:"default_locale"`
	Extension       string         `yaml:"extension"`        // document extension, e.g. ".mdx"
	BaseDir         string         `yaml:"base_dir"`         // relative roots resolve against this (default: working directory)
	TranslationsDir string         `yaml:"translations_dir"` // UI string bundles, <dir>/<locale>.json
	Locales         []LocaleConfig `yaml:"locales"`
}

// LocaleConfig maps one supported locale to its content root.
type LocaleConfig struct {
	Code string `yaml:"code"`
	Root string `yaml:"root"`
	Name string `yaml:"name,omitempty"` // optional display name override
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Watch           bool          `yaml:"watch"`
	Cache           *bool         `yaml:"cache,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AuditConfig configures the scheduled translation coverage audit.
type AuditConfig struct {
	Interval time.Duration `yaml:"interval"`           // 0 disables the schedule
	Schedule string        `yaml:"schedule,omitempty"` // cron expression; takes precedence over Interval
}

// MonitoringConfig represents monitoring and observability configuration.
type MonitoringConfig struct {
	Metrics MonitoringMetrics `yaml:"metrics"`
	Logging MonitoringLogging `yaml:"logging"`
}

// MonitoringMetrics represents metrics configuration.
type MonitoringMetrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MonitoringLogging represents logging configuration.
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// CacheEnabled reports whether content lookups are cached (default true).
func (s ServerConfig) CacheEnabled() bool {
	return s.Cache == nil || *s.Cache
}

// ContentRoot returns the absolute-or-relative content root for a locale code,
// resolved against BaseDir. Unknown codes return "".
func (s SiteConfig) ContentRoot(code string) string {
	for _, l := range s.Locales {
		if l.Code == code {
			return s.resolve(l.Root)
		}
	}
	return ""
}

// TranslationsPath returns TranslationsDir resolved against BaseDir.
func (s SiteConfig) TranslationsPath() string {
	if s.TranslationsDir == "" {
		return ""
	}
	return s.resolve(s.TranslationsDir)
}

func (s SiteConfig) resolve(p string) string {
	if filepath.IsAbs(p) || s.BaseDir == "" {
		return p
	}
	return filepath.Join(s.BaseDir, p)
}

// Load reads, expands, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	// #nosec G304 -- path is provided by the operator via --config.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	return Parse(data)
}

// Parse decodes configuration bytes, expanding ${VAR} references first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			Fatal().
			Build()
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes a default configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	cfg := Default()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal default config").Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
