package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTML_Paragraph(t *testing.T) {
	assert.Equal(t, "<p>Hello <strong>world</strong></p>", ToHTML("Hello **world**"))
}

func TestToHTML_RawHTMLPassesThrough(t *testing.T) {
	got := ToHTML(`Press <kbd>Ctrl</kbd> to continue`)
	assert.Contains(t, got, "<kbd>Ctrl</kbd>")
}

func TestToHTML_GFM(t *testing.T) {
	got := ToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, got, "<table>")

	got = ToHTML("~~old~~ https://example.com")
	assert.Contains(t, got, "<del>old</del>")
	assert.Contains(t, got, `<a href="https://example.com">`)
}

func TestToHTML_HeadingIDs(t *testing.T) {
	got := ToHTML("##### Deep Dive", WithHeadingID("deep-dive-2"))
	assert.Equal(t, `<h5 id="deep-dive-2">Deep Dive</h5>`, got)

	got = ToHTML("## Setup\n\n## Setup\n\n## مرحله")
	assert.Contains(t, got, `<h2 id="setup">`)
	assert.Contains(t, got, `<h2 id="setup-1">`)
	assert.Contains(t, got, `<h2 id="heading">`)
}

func TestToHTML_ForcedIDAppliesOnce(t *testing.T) {
	got := ToHTML("## One\n\n## Two", WithHeadingID("custom"))
	assert.Contains(t, got, `<h2 id="custom">One</h2>`)
	assert.Contains(t, got, `<h2 id="two">Two</h2>`)
}

func TestToHTML_LineAnchors(t *testing.T) {
	got := ToHTML("<Tabs>\n\n## Setup\n\n## Setup\n\n</Tabs>", WithLineAnchors(map[int]string{4: "setup-2"}))
	assert.Contains(t, got, `<h2 id="setup">Setup</h2>`)
	assert.Contains(t, got, `<h2 id="setup-2">Setup</h2>`)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello world", Excerpt("<p>Hello <em>world</em></p>", 0))
	assert.Equal(t, "a b", Excerpt("<p>a</p>\n<script>var x = 1;</script><p>  b </p>", 0))
	assert.Equal(t, "Fish & chips", Excerpt("<p>Fish &amp; chips</p>", 0))

	long := "<p>" + strings.Repeat("word ", 50) + "</p>"
	got := Excerpt(long, 20)
	assert.LessOrEqual(t, len([]rune(got)), 20)
	assert.True(t, strings.HasSuffix(got, "…"))

	assert.Equal(t, "سلام دنیا", Excerpt("<p>سلام دنیا</p>", 9))
	assert.Equal(t, "سلا…", Excerpt("<p>سلام دنیا</p>", 4))
}
