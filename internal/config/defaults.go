package config

import "time"

const (
	DefaultConfigPath      = "docsite.yaml"
	DefaultExtension       = ".mdx"
	DefaultAddr            = ":8080"
	DefaultMetricsPath     = "/metrics"
	DefaultShutdownTimeout = 10 * time.Second
)

// Default returns the built-in site configuration:
// English as the authoritative tree plus Persian, Russian and Chinese translations.
func Default() *Config {
	cfg := &Config{
		Version: "1",
		Site: SiteConfig{
			Title:           "PasarGuard",
			DefaultLocale:   "en",
			TranslationsDir: "public/locales",
			Locales: []LocaleConfig{
				{Code: "en", Root: "content/docs"},
				{Code: "fa", Root: "content/translations/fa"},
				{Code: "ru", Root: "content/translations/ru"},
				{Code: "zh", Root: "content/translations/zh"},
			},
		},
		Audit: AuditConfig{Interval: time.Hour},
		Monitoring: MonitoringConfig{
			Metrics: MonitoringMetrics{Enabled: true},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Site.Extension == "" {
		cfg.Site.Extension = DefaultExtension
	}
	if cfg.Site.DefaultLocale == "" && len(cfg.Site.Locales) > 0 {
		cfg.Site.DefaultLocale = cfg.Site.Locales[0].Code
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Audit.Interval < 0 {
		cfg.Audit.Interval = 0
	}
	if cfg.Monitoring.Metrics.Path == "" {
		cfg.Monitoring.Metrics.Path = DefaultMetricsPath
	}
	cfg.Monitoring.Logging.Level = NormalizeLogLevel(string(cfg.Monitoring.Logging.Level))
	cfg.Monitoring.Logging.Format = NormalizeLogFormat(string(cfg.Monitoring.Logging.Format))
}
