// Package icons is the closed set of navigation icons a document may name in
// its front matter.
package icons

import (
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// Icon is a navigation icon name.
type Icon string

const (
	Home           Icon = "Home"
	Download       Icon = "Download"
	Rocket         Icon = "Rocket"
	Monitor        Icon = "Monitor"
	Server         Icon = "Server"
	Terminal       Icon = "Terminal"
	ArrowRightLeft Icon = "ArrowRightLeft"
)

// Default is returned for empty or unknown names.
const Default = Home

// glyphs is the dispatch table from icon to its glyph id in the lucide icon
// set used by the presentation layer.
var glyphs = map[Icon]string{
	Home:           "home",
	Download:       "download",
	Rocket:         "rocket",
	Monitor:        "monitor",
	Server:         "server",
	Terminal:       "terminal",
	ArrowRightLeft: "arrow-right-left",
}

var lookup = normalization.WithCustomNormalizer(map[string]Icon{
	string(Home):           Home,
	string(Download):       Download,
	string(Rocket):         Rocket,
	string(Monitor):        Monitor,
	string(Server):         Server,
	string(Terminal):       Terminal,
	string(ArrowRightLeft): ArrowRightLeft,
}, Default, fold)

// fold makes "ArrowRightLeft", "arrow-right-left" and "arrow_right_left" equal.
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// Lookup maps a front-matter icon name to an Icon. Never fails.
func Lookup(name string) Icon {
	return lookup.Normalize(name)
}

// Known reports whether name maps to an icon other than by defaulting.
func Known(name string) bool {
	_, ok := lookup.Lookup(name)
	return ok
}

// Glyph returns the lucide glyph id for the icon.
func (i Icon) Glyph() string {
	if g, ok := glyphs[i]; ok {
		return g
	}
	return glyphs[Default]
}

// All returns every icon in declaration order.
func All() []Icon {
	return []Icon{Home, Download, Rocket, Monitor, Server, Terminal, ArrowRightLeft}
}
