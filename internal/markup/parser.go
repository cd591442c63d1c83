package markup

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/toc"
)

const fence = "```"

var (
	titleAttr = regexp.MustCompile(`title="([^"]+)"`)
	hrefAttr  = regexp.MustCompile(`href="([^"]+)"`)
	typeAttr  = regexp.MustCompile(`type="([^"]+)"`)
)

// Parse classifies body into blocks in source order. It never fails: an
// unterminated construct consumes the rest of the input and is marked
// Unterminated.
func Parse(body string) []Block {
	p := &parser{
		lines:   strings.Split(body, "\n"),
		anchors: toc.Anchors(toc.Extract(body)),
	}
	return p.run()
}

type parser struct {
	lines   []string
	anchors map[int]string
	pos     int
	blocks  []Block
}

func (p *parser) run() []Block {
	for p.pos < len(p.lines) {
		start := p.pos
		line := strings.TrimSpace(p.lines[p.pos])

		switch {
		case p.heading(line):
		case strings.HasPrefix(line, fence):
			p.code(line)
		case strings.HasPrefix(line, "<Cards>"):
			p.cards()
		case strings.HasPrefix(line, "<Alert"):
			p.alert(line)
		case isCompoundOpen(line):
			p.compound()
		case line != "" && !strings.HasPrefix(line, "<"):
			p.paragraph(line)
		}

		// Every branch consumes at least one line.
		if p.pos == start {
			p.pos++
		}
	}
	return p.blocks
}

func (p *parser) emit(b Block, content string) {
	b.Key = blockKey(b.Kind, b.Line, content)
	p.blocks = append(p.blocks, b)
}

func (p *parser) heading(line string) bool {
	depth, title, ok := toc.MatchHeading(line)
	if !ok || depth > 4 {
		return false
	}
	p.emit(Block{
		Kind:   KindHeading,
		Line:   p.pos,
		Level:  depth,
		Text:   title,
		Anchor: p.anchors[p.pos],
	}, title)
	p.pos++
	return true
}

func (p *parser) code(open string) {
	start := p.pos
	lang := strings.TrimSpace(strings.TrimPrefix(open, fence))
	p.pos++

	var code []string
	closed := false
	for p.pos < len(p.lines) {
		if strings.HasPrefix(strings.TrimSpace(p.lines[p.pos]), fence) {
			closed = true
			p.pos++
			break
		}
		code = append(code, strings.TrimSuffix(p.lines[p.pos], "\r"))
		p.pos++
	}

	text := strings.Join(code, "\n")
	p.emit(Block{
		Kind:         KindCode,
		Line:         start,
		Language:     lang,
		Text:         text,
		Lines:        code,
		Unterminated: !closed,
	}, lang+"\n"+text)
}

func (p *parser) cards() {
	start := p.pos
	p.pos++

	var cards []Card
	var raw []string
	closed := false
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		p.pos++
		if strings.HasPrefix(line, "</Cards>") {
			closed = true
			break
		}
		if strings.HasPrefix(line, "<Card") && !strings.HasPrefix(line, "<Cards") {
			cards = append(cards, parseCard(line))
			raw = append(raw, line)
		}
	}

	p.emit(Block{
		Kind:         KindCards,
		Line:         start,
		Cards:        cards,
		Unterminated: !closed,
	}, strings.Join(raw, "\n"))
}

func parseCard(line string) Card {
	c := Card{Href: "#"}
	if m := titleAttr.FindStringSubmatch(line); m != nil {
		c.Title = m[1]
	}
	if m := hrefAttr.FindStringSubmatch(line); m != nil {
		c.Href = m[1]
	}
	return c
}

func (p *parser) alert(open string) {
	start := p.pos
	kind := AlertInfo
	if m := typeAttr.FindStringSubmatch(open); m != nil {
		kind = ParseAlertKind(m[1])
	}

	// Text after the opening tag's '>' belongs to the alert body.
	// from[i] is the body line inner[i] came from.
	var inner []string
	var from []int
	add := func(s string, line int, keepBlank bool) {
		if !keepBlank && strings.TrimSpace(s) == "" {
			return
		}
		inner = append(inner, s)
		from = append(from, line)
	}
	rest := ""
	if _, after, ok := strings.Cut(open, ">"); ok {
		rest = after
	}
	p.pos++

	closed := false
	if before, _, ok := strings.Cut(rest, "</Alert>"); ok {
		add(before, start, false)
		closed = true
	} else {
		add(rest, start, false)
		for p.pos < len(p.lines) {
			line := strings.TrimSuffix(p.lines[p.pos], "\r")
			p.pos++
			if before, _, ok := strings.Cut(line, "</Alert>"); ok {
				add(before, p.pos-1, false)
				closed = true
				break
			}
			add(line, p.pos-1, true)
		}
	}

	joined := strings.Join(inner, "\n")
	text := strings.TrimSpace(joined)
	skipped := strings.Count(joined[:len(joined)-len(strings.TrimLeft(joined, " \t\r\n"))], "\n")
	p.emit(Block{
		Kind:         KindAlert,
		Line:         start,
		Alert:        kind,
		Text:         text,
		HTML:         markdown.ToHTML(text, markdown.WithLineAnchors(p.spanAnchors(from[min(skipped, len(from)):]))),
		Unterminated: !closed,
	}, string(kind)+"\n"+text)
}

// spanAnchors re-keys the document's heading anchors by fragment line, where
// fragment line i came from body line from[i].
func (p *parser) spanAnchors(from []int) map[int]string {
	m := make(map[int]string)
	for i, line := range from {
		if anchor, ok := p.anchors[line]; ok {
			m[i] = anchor
		}
	}
	return m
}

func isCompoundOpen(line string) bool {
	return strings.Contains(line, "<Steps>") || strings.Contains(line, "<Tab")
}

func compoundDelta(line string) int {
	return strings.Count(line, "<Steps>") + strings.Count(line, "<Tabs") -
		strings.Count(line, "</Steps>") - strings.Count(line, "</Tabs>")
}

func (p *parser) compound() {
	start := p.pos
	depth := 0
	var span []string
	for p.pos < len(p.lines) {
		line := strings.TrimSuffix(p.lines[p.pos], "\r")
		span = append(span, line)
		depth += compoundDelta(line)
		p.pos++
		if depth <= 0 {
			break
		}
	}

	from := make([]int, len(span))
	for i := range span {
		from[i] = start + i
	}
	raw := strings.Join(span, "\n")
	p.emit(Block{
		Kind:         KindCompound,
		Line:         start,
		Lines:        span,
		HTML:         markdown.ToHTML(raw, markdown.WithLineAnchors(p.spanAnchors(from))),
		Unterminated: depth > 0,
	}, raw)
}

func (p *parser) paragraph(line string) {
	var opts []markdown.Option
	if anchor, ok := p.anchors[p.pos]; ok {
		opts = append(opts, markdown.WithHeadingID(anchor))
	}
	p.emit(Block{
		Kind: KindParagraph,
		Line: p.pos,
		Text: line,
		HTML: markdown.ToHTML(line, opts...),
	}, line)
	p.pos++
}
