package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/audit"
	"git.home.luguber.info/inful/docsite/internal/daemon"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// AuditCmd implements the 'audit' command.
type AuditCmd struct {
	Strict bool `help:"Exit non-zero when any translation is incomplete"`
	JSON   bool `help:"Print the report as JSON"`
}

func (c *AuditCmd) Run(g *Global) error {
	cfg, err := g.Config()
	if err != nil {
		return err
	}
	site, err := daemon.NewSite(cfg, nil, g.Logger)
	if err != nil {
		return err
	}
	report := audit.NewAuditor(site.Store, site.Registry, nil, g.Logger).Run()

	if c.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(g.Out, "%d documents in %s\n", report.Total, report.Default)
		for _, lc := range report.Locales {
			_, _ = fmt.Fprintf(g.Out, "%s: %d/%d translated\n", lc.Locale, lc.Translated, report.Total)
			for _, m := range lc.Missing {
				_, _ = fmt.Fprintf(g.Out, "  missing %s\n", m)
			}
		}
	}

	if c.Strict && report.MissingCount() > 0 {
		incomplete := make([]string, 0, len(report.Locales))
		for _, lc := range report.Locales {
			if len(lc.Missing) > 0 {
				incomplete = append(incomplete, string(lc.Locale))
			}
		}
		return errors.ContentError("translations incomplete").
			WithContext("missing", report.MissingCount()).
			WithContext("locales", strings.Join(incomplete, ",")).
			Build()
	}
	return nil
}
