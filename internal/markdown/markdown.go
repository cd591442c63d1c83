// Package markdown converts Markdown fragments to HTML and extracts plain-text
// excerpts from HTML.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/docsite/internal/toc"
)

// converter is shared by every call; goldmark instances are safe for concurrent use.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

type options struct {
	headingID   string
	lineAnchors map[int]string
}

// Option configures a single conversion.
type Option func(*options)

// WithHeadingID forces the id of the first heading produced by the conversion.
func WithHeadingID(id string) Option {
	return func(o *options) { o.headingID = id }
}

// WithLineAnchors assigns ids to headings by the 0-based line of the fragment
// they start on. Document-level anchors are passed this way so a heading
// nested in a larger block keeps the id its table of contents entry links to.
func WithLineAnchors(anchors map[int]string) Option {
	return func(o *options) { o.lineAnchors = anchors }
}

// ToHTML converts a Markdown fragment to HTML. Raw HTML passes through.
// Headings without a forced id get ids from toc.Slugify, made unique within
// the fragment. ToHTML never fails: if conversion errors, the escaped source
// is returned as a paragraph.
func ToHTML(src string, opts ...Option) string {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ids := newHeadingIDs(o.headingID)
	for _, id := range o.lineAnchors {
		ids.anchors.Reserve(id)
	}

	source := []byte(src)
	ctx := parser.NewContext(parser.WithIDs(ids))
	doc := converter.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))
	if len(o.lineAnchors) > 0 {
		applyLineAnchors(doc, source, o.lineAnchors)
	}

	var buf bytes.Buffer
	if err := converter.Renderer().Render(&buf, source, doc); err != nil {
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return strings.TrimRight(buf.String(), "\n")
}

func applyLineAnchors(doc gmast.Node, source []byte, anchors map[int]string) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		h, ok := n.(*gmast.Heading)
		if !entering || !ok {
			return gmast.WalkContinue, nil
		}
		if h.Lines().Len() > 0 {
			line := bytes.Count(source[:h.Lines().At(0).Start], []byte("\n"))
			if id, found := anchors[line]; found {
				h.SetAttributeString("id", []byte(id))
			}
		}
		return gmast.WalkSkipChildren, nil
	})
}

// headingIDs implements parser.IDs.
type headingIDs struct {
	forced  string
	anchors *toc.AnchorSet
}

func newHeadingIDs(forced string) *headingIDs {
	return &headingIDs{forced: forced, anchors: toc.NewAnchorSet()}
}

func (h *headingIDs) Generate(value []byte, _ gmast.NodeKind) []byte {
	if h.forced != "" {
		id := h.forced
		h.forced = ""
		h.anchors.Reserve(id)
		return []byte(id)
	}
	base := toc.Slugify(string(value))
	if base == "" {
		base = "heading"
	}
	return []byte(h.anchors.Claim(base))
}

func (h *headingIDs) Put(value []byte) {
	h.anchors.Reserve(string(value))
}
