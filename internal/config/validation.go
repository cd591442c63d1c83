package config

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Validate checks structural invariants of the configuration. Locale codes are
// validated as language tags later, when the i18n registry is built.
func (c *Config) Validate() error {
	if len(c.Site.Locales) == 0 {
		return errors.ConfigError("at least one locale is required").
			WithContext("field", "site.locales").
			Build()
	}

	seen := make(map[string]struct{}, len(c.Site.Locales))
	for i, l := range c.Site.Locales {
		code := strings.TrimSpace(l.Code)
		if code == "" {
			return errors.ConfigError("locale code is required").
				WithContext("field", "site.locales").
				WithContext("index", i).
				Build()
		}
		key := strings.ToLower(code)
		if _, dup := seen[key]; dup {
			return errors.ConfigError("duplicate locale code").
				WithContext("field", "site.locales").
				WithContext("code", code).
				Build()
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(l.Root) == "" {
			return errors.ConfigError("locale content root is required").
				WithContext("field", "site.locales.root").
				WithContext("code", code).
				Build()
		}
	}

	if _, ok := seen[strings.ToLower(c.Site.DefaultLocale)]; !ok {
		return errors.ConfigError("default locale must be one of the configured locales").
			WithContext("field", "site.default_locale").
			WithContext("default_locale", c.Site.DefaultLocale).
			Build()
	}

	if !strings.HasPrefix(c.Site.Extension, ".") || strings.ContainsAny(c.Site.Extension, `/\`) {
		return errors.ConfigError("document extension must start with a dot").
			WithContext("field", "site.extension").
			WithContext("extension", c.Site.Extension).
			Build()
	}

	if c.Monitoring.Metrics.Enabled && !strings.HasPrefix(c.Monitoring.Metrics.Path, "/") {
		return errors.ConfigError("metrics path must start with '/'").
			WithContext("field", "monitoring.metrics.path").
			Build()
	}
	return nil
}
