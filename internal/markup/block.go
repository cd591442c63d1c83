// Package markup classifies a document body into render blocks: headings, code
// fences, card grids, alerts, opaque tab/step compounds and paragraphs.
//
// It is a line scanner, not an MDX parser. Component tags are recognized by a
// small fixed micro-grammar (tag prefixes plus the title, href and type
// attributes) and everything else is left to the inline Markdown converter.
package markup

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// Kind classifies a block.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindCode      Kind = "code"
	KindCards     Kind = "cards"
	KindAlert     Kind = "alert"
	KindCompound  Kind = "compound"
	KindParagraph Kind = "paragraph"
)

// AlertKind is the closed set of alert styles.
type AlertKind string

const (
	AlertInfo    AlertKind = "info"
	AlertWarning AlertKind = "warning"
	AlertError   AlertKind = "error"
	AlertSuccess AlertKind = "success"
)

var alertKinds = normalization.NewNormalizer(map[string]AlertKind{
	"info":    AlertInfo,
	"note":    AlertInfo,
	"tip":     AlertInfo,
	"warning": AlertWarning,
	"warn":    AlertWarning,
	"error":   AlertError,
	"danger":  AlertError,
	"success": AlertSuccess,
}, AlertInfo)

// ParseAlertKind maps a type attribute onto AlertKind; unknown values are info.
func ParseAlertKind(raw string) AlertKind {
	return alertKinds.Normalize(raw)
}

// Card is one entry of a card grid.
type Card struct {
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Block is one classified span of the body. Which fields are set depends on Kind:
//
//	heading    Level, Text (title), Anchor
//	code       Language, Text (code), Lines
//	cards      Cards
//	alert      Alert, Text (raw inner), HTML
//	compound   Lines, HTML
//	paragraph  Text (line), HTML
type Block struct {
	Key          string    `json:"key"`
	Kind         Kind      `json:"kind"`
	Line         int       `json:"line"`
	Level        int       `json:"level,omitempty"`
	Text         string    `json:"text,omitempty"`
	Anchor       string    `json:"anchor,omitempty"`
	Language     string    `json:"language,omitempty"`
	Lines        []string  `json:"lines,omitempty"`
	Cards        []Card    `json:"cards,omitempty"`
	Alert        AlertKind `json:"alert,omitempty"`
	HTML         string    `json:"html,omitempty"`
	Unterminated bool      `json:"unterminated,omitempty"`
}

// blockKey is stable across re-parses of identical input and unique within a
// parse because no two blocks start on the same line.
func blockKey(kind Kind, line int, content string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(content))
	return string(kind) + "-" + strconv.Itoa(line) + "-" + fmt.Sprintf("%08x", h.Sum32())
}
