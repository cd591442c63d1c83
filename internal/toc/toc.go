// Package toc extracts a table of contents from a Markdown body and owns the
// slugification that turns heading text into anchors. Both the TOC and the
// block parser derive heading ids from Extract, so in-page links always
// resolve.
package toc

import (
	"strconv"
	"strings"
)

const (
	minDepth = 2
	maxDepth = 6
)

// Entry is one heading in document order.
type Entry struct {
	Depth  int    `json:"depth"`
	Anchor string `json:"anchor"`
	Title  string `json:"title"`
	Line   int    `json:"line"` // 0-based line index in the body
}

// URL is the in-page link to the heading.
func (e Entry) URL() string {
	return "#" + e.Anchor
}

// MatchHeading reports whether line is an ATX heading of depth 2-6: optional
// leading whitespace, the run of '#', at least one space or tab, then the title.
// The title has trailing whitespace removed and may be empty.
func MatchHeading(line string) (depth int, title string, ok bool) {
	s := strings.TrimLeft(strings.TrimSuffix(line, "\r"), " \t")
	for depth < len(s) && s[depth] == '#' {
		depth++
	}
	if depth < minDepth || depth > maxDepth || depth == len(s) {
		return 0, "", false
	}
	if s[depth] != ' ' && s[depth] != '\t' {
		return 0, "", false
	}
	return depth, strings.TrimSpace(s[depth:]), true
}

// Extract scans body line by line and returns its headings with unique anchors.
func Extract(body string) []Entry {
	var entries []Entry
	anchors := NewAnchorSet()
	for i, line := range strings.Split(body, "\n") {
		depth, title, ok := MatchHeading(line)
		if !ok {
			continue
		}
		base := Slugify(title)
		if base == "" {
			base = "heading-" + strconv.Itoa(i)
		}
		entries = append(entries, Entry{
			Depth:  depth,
			Anchor: anchors.Claim(base),
			Title:  title,
			Line:   i,
		})
	}
	return entries
}

// Anchors indexes entries by line so a renderer can look up the anchor of the
// heading it is emitting.
func Anchors(entries []Entry) map[int]string {
	m := make(map[int]string, len(entries))
	for _, e := range entries {
		m[e.Line] = e.Anchor
	}
	return m
}

// AnchorSet hands out unique anchors. The zero value is not usable; call NewAnchorSet.
type AnchorSet struct {
	counts map[string]int
	used   map[string]struct{}
}

func NewAnchorSet() *AnchorSet {
	return &AnchorSet{counts: map[string]int{}, used: map[string]struct{}{}}
}

// Claim returns base the first time it is seen and base-1, base-2, ... after
// that, skipping any candidate already handed out or reserved.
func (a *AnchorSet) Claim(base string) string {
	anchor := base
	if _, taken := a.used[base]; taken {
		n := a.counts[base]
		for {
			n++
			anchor = base + "-" + strconv.Itoa(n)
			if _, taken := a.used[anchor]; !taken {
				break
			}
		}
		a.counts[base] = n
	}
	a.used[anchor] = struct{}{}
	return anchor
}

// Reserve marks id as taken without claiming it through a base.
func (a *AnchorSet) Reserve(id string) {
	a.used[id] = struct{}{}
}
