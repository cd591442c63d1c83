package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/toc"
)

func kinds(blocks []Block) []Kind {
	out := make([]Kind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestParse_ParagraphsOnePerLine(t *testing.T) {
	blocks := Parse("Hello\n\nWorld")
	require.Len(t, blocks, 2)
	assert.Equal(t, []Kind{KindParagraph, KindParagraph}, kinds(blocks))
	assert.Equal(t, "<p>Hello</p>", blocks[0].HTML)
	assert.Equal(t, 0, blocks[0].Line)
	assert.Equal(t, "<p>World</p>", blocks[1].HTML)
	assert.Equal(t, 2, blocks[1].Line)
}

func TestParse_CodeBlock(t *testing.T) {
	blocks := Parse("```ts\nconst x=1;\n```")
	require.Len(t, blocks, 1)
	b := blocks[0]
	assert.Equal(t, KindCode, b.Kind)
	assert.Equal(t, "ts", b.Language)
	assert.Equal(t, "const x=1;", b.Text)
	assert.False(t, b.Unterminated)
}

func TestParse_CodeBlockKeepsIndentationAndMarkup(t *testing.T) {
	blocks := Parse("```bash\n  ## not a heading\n<Cards>\n```\nafter")
	require.Len(t, blocks, 2)
	assert.Equal(t, "  ## not a heading\n<Cards>", blocks[0].Text)
	assert.Equal(t, KindParagraph, blocks[1].Kind)
}

func TestParse_UnterminatedCodeConsumesRest(t *testing.T) {
	blocks := Parse("intro\n```go\nfunc main() {}\n## Later\nmore")
	require.Len(t, blocks, 2)
	code := blocks[1]
	assert.Equal(t, KindCode, code.Kind)
	assert.True(t, code.Unterminated)
	assert.Equal(t, []string{"func main() {}", "## Later", "more"}, code.Lines)
}

func TestParse_Cards(t *testing.T) {
	blocks := Parse("<Cards>\n<Card title=\"A\" href=\"/a\"/>\n</Cards>")
	require.Len(t, blocks, 1)
	assert.Equal(t, KindCards, blocks[0].Kind)
	assert.Equal(t, []Card{{Title: "A", Href: "/a"}}, blocks[0].Cards)
}

func TestParse_CardDefaults(t *testing.T) {
	body := "<Cards>\n  <Card href=\"/x\" />\n  <Card title=\"No link\">\n  ignored line\n  </Card>\n</Cards>\ntail"
	blocks := Parse(body)
	require.Len(t, blocks, 2)
	assert.Equal(t, []Card{{Title: "", Href: "/x"}, {Title: "No link", Href: "#"}}, blocks[0].Cards)
	assert.False(t, blocks[0].Unterminated)
	assert.Equal(t, "tail", blocks[1].Text)
}

func TestParse_Headings(t *testing.T) {
	body := "## Intro\n### Intro\n#### Deep\n##### Five\n# Top"
	blocks := Parse(body)
	require.Len(t, blocks, 5)

	assert.Equal(t, KindHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, "Intro", blocks[0].Text)
	assert.Equal(t, "intro", blocks[0].Anchor)
	assert.Equal(t, "intro-1", blocks[1].Anchor)
	assert.Equal(t, 4, blocks[2].Level)

	assert.Equal(t, KindParagraph, blocks[3].Kind, "depth 5 falls to paragraph handling")
	assert.Equal(t, `<h5 id="five">Five</h5>`, blocks[3].HTML)
	assert.Equal(t, KindParagraph, blocks[4].Kind)
}

func TestParse_HeadingAnchorsMatchTOC(t *testing.T) {
	body := "## Setup\ntext\n## Setup\n## !!!\n##### Setup\n  ### Indented"
	entries := toc.Extract(body)
	want := toc.Anchors(entries)

	got := map[int]string{}
	for _, b := range Parse(body) {
		switch b.Kind {
		case KindHeading:
			got[b.Line] = b.Anchor
		case KindParagraph:
			if anchor, ok := want[b.Line]; ok {
				assert.Contains(t, b.HTML, `id="`+anchor+`"`)
				got[b.Line] = anchor
			}
		}
	}
	assert.Equal(t, want, got)
}

func TestParse_NestedHeadingsKeepTOCAnchors(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind Kind
	}{
		{"compound", "## Install\n\n<Steps>\n\n### Install\n\nrun it\n\n</Steps>", KindCompound},
		{"alert", "## Install\n<Alert>\n\n### Install\n\nbody\n</Alert>", KindAlert},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := toc.Extract(tt.body)
			require.Len(t, entries, 2)
			require.Equal(t, "install-1", entries[1].Anchor)

			var nested *Block
			blocks := Parse(tt.body)
			for i := range blocks {
				if blocks[i].Kind == tt.kind {
					nested = &blocks[i]
				}
			}
			require.NotNil(t, nested)
			assert.Contains(t, nested.HTML, `<h3 id="install-1">Install</h3>`)
			assert.NotContains(t, nested.HTML, `id="install"`)
		})
	}
}

func TestParse_TabSeparatedHeading(t *testing.T) {
	body := "##\tTitle\n##Title"
	blocks := Parse(body)
	require.Len(t, blocks, 2)
	assert.Equal(t, KindHeading, blocks[0].Kind)
	assert.Equal(t, "Title", blocks[0].Text)
	assert.Equal(t, toc.Extract(body)[0].Anchor, blocks[0].Anchor)
	assert.Equal(t, KindParagraph, blocks[1].Kind, "a separator is required")
}

func TestParse_Alert(t *testing.T) {
	body := "<Alert type=\"danger\">\nDo **not** delete\n</Alert>\nnext"
	blocks := Parse(body)
	require.Len(t, blocks, 2)
	a := blocks[0]
	assert.Equal(t, KindAlert, a.Kind)
	assert.Equal(t, AlertError, a.Alert)
	assert.Equal(t, "Do **not** delete", a.Text)
	assert.Equal(t, "<p>Do <strong>not</strong> delete</p>", a.HTML)
	assert.False(t, a.Unterminated)
}

func TestParse_AlertVariants(t *testing.T) {
	blocks := Parse(`<Alert>Inline note</Alert>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, AlertInfo, blocks[0].Alert)
	assert.Equal(t, "Inline note", blocks[0].Text)

	blocks = Parse("<Alert type=\"mystery\">\nbody")
	require.Len(t, blocks, 1)
	assert.Equal(t, AlertInfo, blocks[0].Alert)
	assert.True(t, blocks[0].Unterminated)

	blocks = Parse("<Alert type=\"warn\">first\nsecond</Alert>")
	require.Len(t, blocks, 1)
	assert.Equal(t, AlertWarning, blocks[0].Alert)
	assert.Equal(t, "first\nsecond", blocks[0].Text)
}

func TestParseAlertKind(t *testing.T) {
	assert.Equal(t, AlertWarning, ParseAlertKind("WARNING"))
	assert.Equal(t, AlertError, ParseAlertKind("danger"))
	assert.Equal(t, AlertSuccess, ParseAlertKind("success"))
	assert.Equal(t, AlertInfo, ParseAlertKind("tip"))
	assert.Equal(t, AlertInfo, ParseAlertKind(""))
}

func TestParse_CompoundNesting(t *testing.T) {
	body := strings.Join([]string{
		"<Steps>",
		"<Step>",
		"<Tabs items={['npm', 'pnpm']}>",
		"<Tab value=\"npm\">",
		"npm i",
		"</Tab>",
		"</Tabs>",
		"</Step>",
		"</Steps>",
		"after",
	}, "\n")
	blocks := Parse(body)
	require.Len(t, blocks, 2)
	c := blocks[0]
	assert.Equal(t, KindCompound, c.Kind)
	assert.Len(t, c.Lines, 9)
	assert.False(t, c.Unterminated)
	assert.Contains(t, c.HTML, "npm i")
	assert.Equal(t, KindParagraph, blocks[1].Kind)
	assert.Equal(t, 9, blocks[1].Line)
}

func TestParse_CompoundEdgeCases(t *testing.T) {
	blocks := Parse("<Tab value=\"x\">\nplain")
	require.Len(t, blocks, 2)
	assert.Equal(t, KindCompound, blocks[0].Kind)
	assert.Len(t, blocks[0].Lines, 1, "a stray tab line is a single-line compound")

	blocks = Parse("<Tabs>\n<Tab>\nnever closed")
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].Unterminated)
	assert.Len(t, blocks[0].Lines, 3)
}

func TestParse_SkipsBlankAndUnknownTags(t *testing.T) {
	blocks := Parse("\n   \n<div>\n</div>\n<Callout>")
	assert.Empty(t, blocks)
	assert.Empty(t, Parse(""))
}

func TestParse_KeysStableAndUnique(t *testing.T) {
	body := "same\nsame\n## same\n```\nsame\n```"
	first := Parse(body)
	second := Parse(body)
	assert.Equal(t, first, second)

	seen := map[string]bool{}
	for _, b := range first {
		assert.False(t, seen[b.Key], "duplicate key %s", b.Key)
		seen[b.Key] = true
		assert.True(t, strings.HasPrefix(b.Key, string(b.Kind)+"-"))
	}
}

func TestParse_CRLF(t *testing.T) {
	blocks := Parse("## Title\r\n```sh\r\necho hi\r\n```\r\ntext\r\n")
	require.Len(t, blocks, 3)
	assert.Equal(t, "Title", blocks[0].Text)
	assert.Equal(t, "sh", blocks[1].Language)
	assert.Equal(t, "echo hi", blocks[1].Text)
	assert.Equal(t, "<p>text</p>", blocks[2].HTML)
}
