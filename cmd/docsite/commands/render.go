package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/daemon"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/markup"
	"git.home.luguber.info/inful/docsite/internal/page"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Locale string   `arg:"" help:"Locale code, e.g. fa"`
	Slug   []string `arg:"" optional:"" help:"Slug as segments or a/b path; empty renders the home page"`
	Format string   `short:"f" enum:"json,blocks,html" default:"json" help:"Output format (json, blocks, html)"`
}

func (c *RenderCmd) Run(g *Global) error {
	cfg, err := g.Config()
	if err != nil {
		return err
	}
	site, err := daemon.NewSite(cfg, nil, g.Logger)
	if err != nil {
		return err
	}
	locale, ok := site.Registry.Lookup(c.Locale)
	if !ok {
		return errors.LocaleError("unsupported locale").
			WithContext("locale", c.Locale).
			Build()
	}
	slug := content.ParseSlug(strings.Join(c.Slug, "/"))
	if !slug.Valid() {
		return errors.ValidationError("invalid slug").
			WithContext("slug", strings.Join(c.Slug, "/")).
			Build()
	}

	view := page.NewService(site.Registry, site.Source, nil).Build(context.Background(), slug, locale)
	switch c.Format {
	case "blocks":
		for _, b := range view.Blocks {
			_, _ = fmt.Fprintln(g.Out, describeBlock(b))
		}
		return nil
	case "html":
		for _, b := range view.Blocks {
			if b.HTML != "" {
				_, _ = fmt.Fprintln(g.Out, b.HTML)
			}
		}
		return nil
	default:
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
}

// describeBlock is the one-line summary printed by --format blocks.
func describeBlock(b markup.Block) string {
	var detail string
	switch b.Kind {
	case markup.KindHeading:
		detail = fmt.Sprintf("h%d %s #%s", b.Level, b.Text, b.Anchor)
	case markup.KindCode:
		detail = fmt.Sprintf("%s (%d lines)", b.Language, len(b.Lines))
	case markup.KindCards:
		titles := make([]string, len(b.Cards))
		for i, card := range b.Cards {
			titles[i] = card.Title
		}
		detail = strings.Join(titles, ", ")
	case markup.KindAlert:
		detail = string(b.Alert)
	case markup.KindCompound:
		detail = fmt.Sprintf("%d lines", len(b.Lines))
	default:
		detail = b.Text
	}
	if b.Unterminated {
		detail += " [unterminated]"
	}
	return fmt.Sprintf("%4d  %-9s %s", b.Line+1, b.Kind, detail)
}
