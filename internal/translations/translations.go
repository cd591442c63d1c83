// Package translations loads the per-locale UI string bundles shown around
// the documentation (site name, section cards, links).
package translations

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Section is a titled landing-page card.
type Section struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Bundle is the set of UI strings for one locale.
type Bundle struct {
	AppName        string  `json:"appName"`
	AppDescription string  `json:"appDescription"`
	Version        string  `json:"version"`
	Documentation  string  `json:"documentation"`
	GitHub         string  `json:"github"`
	Panel          Section `json:"panel"`
	Node           Section `json:"node"`
	Commands       Section `json:"commands"`
}

// English is the built-in bundle used whenever a locale's bundle is unavailable.
func English() Bundle {
	return Bundle{
		AppName:        "PasarGuard",
		AppDescription: "Censorship-resistant GUI integrated solution",
		Version:        "V1 First Version",
		Documentation:  "Documentation",
		GitHub:         "GitHub",
		Panel: Section{
			Title:       "Panel",
			Description: "Explore the best VPN panel with maximum customization capabilities",
		},
		Node: Section{
			Title:       "Node",
			Description: "Discover PasarGuard Node and other features",
		},
		Commands: Section{
			Title:       "Commands",
			Description: "List of commands for launching, analyzing, building, and previewing your application",
		},
	}
}

// withDefaults fills every empty string of b from d.
func (b Bundle) withDefaults(d Bundle) Bundle {
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&b.AppName, d.AppName)
	fill(&b.AppDescription, d.AppDescription)
	fill(&b.Version, d.Version)
	fill(&b.Documentation, d.Documentation)
	fill(&b.GitHub, d.GitHub)
	fill(&b.Panel.Title, d.Panel.Title)
	fill(&b.Panel.Description, d.Panel.Description)
	fill(&b.Node.Title, d.Node.Title)
	fill(&b.Node.Description, d.Node.Description)
	fill(&b.Commands.Title, d.Commands.Title)
	fill(&b.Commands.Description, d.Commands.Description)
	return b
}

// Loader reads <locale>.json bundles from a directory.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewLoader returns a loader over fsys. A nil fsys always yields English.
func NewLoader(fsys fs.FS, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fsys: fsys, logger: logger}
}

// Load returns the bundle for locale. Any failure is logged as a warning and
// answered with the English bundle; fields a bundle leaves empty are filled
// from English.
func (l *Loader) Load(locale i18n.Locale) Bundle {
	b, err := l.read(locale)
	if err != nil {
		l.logger.Warn("Failed to load translations",
			logfields.Locale(string(locale)),
			logfields.Error(err))
		return English()
	}
	return b.withDefaults(English())
}

func (l *Loader) read(locale i18n.Locale) (Bundle, error) {
	if l.fsys == nil {
		return Bundle{}, errors.ConfigError("translations directory not configured").Build()
	}
	name := string(locale) + ".json"
	if !fs.ValidPath(name) || strings.ContainsAny(string(locale), `/\`) || locale == "" {
		return Bundle{}, errors.ValidationError("invalid locale for translations").
			WithContext("locale", string(locale)).
			Build()
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Bundle{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read translations").
			WithContext("file", name).
			Build()
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, errors.WrapError(err, errors.CategoryValidation, "failed to decode translations").
			WithContext("file", name).
			Build()
	}
	return b, nil
}
