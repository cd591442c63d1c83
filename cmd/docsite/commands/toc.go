package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/docmodel"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/toc"
)

// TOCCmd implements the 'toc' command.
type TOCCmd struct {
	File string `arg:"" type:"existingfile" help:"Markdown or MDX file"`
	JSON bool   `help:"Print entries as JSON"`
}

func (c *TOCCmd) Run(g *Global) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "read document").
			WithContext("path", c.File).
			Build()
	}
	doc, err := docmodel.Parse(data)
	if err != nil {
		return err
	}
	entries := toc.Extract(doc.Body)

	if c.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		_, _ = fmt.Fprintf(g.Out, "%s- [%s](%s)\n", strings.Repeat("  ", e.Depth-2), e.Title, e.URL())
	}
	return nil
}
