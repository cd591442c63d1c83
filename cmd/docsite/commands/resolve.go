package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/daemon"
	"git.home.luguber.info/inful/docsite/internal/i18n"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	AcceptLanguage string `arg:"" optional:"" help:"Accept-Language header value, e.g. 'fa-IR,fa;q=0.9,en;q=0.5'"`
	Override       string `help:"Explicit locale choice (cookie or query value)"`
}

func (c *ResolveCmd) Run(g *Global) error {
	cfg, err := g.Config()
	if err != nil {
		return err
	}
	reg, err := daemon.NewRegistry(cfg)
	if err != nil {
		return err
	}
	locale, source := reg.ResolveWithSource(i18n.Preference{Override: c.Override, Header: c.AcceptLanguage})
	_, err = fmt.Fprintf(g.Out, "%s\t%s\t%s\n", locale, reg.Direction(locale), source)
	return err
}
