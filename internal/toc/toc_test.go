package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchorsOf(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Anchor
	}
	return out
}

func TestExtract_DuplicateHeadings(t *testing.T) {
	entries := Extract("## A\n## A\n## A")
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"a", "a-1", "a-2"}, anchorsOf(entries))
	for i, e := range entries {
		assert.Equal(t, 2, e.Depth)
		assert.Equal(t, "A", e.Title)
		assert.Equal(t, i, e.Line)
	}
}

func TestExtract_EmptyHeadingUsesPositionalAnchor(t *testing.T) {
	entries := Extract("## ")
	require.Len(t, entries, 1)
	assert.Equal(t, "heading-0", entries[0].Anchor)
	assert.Empty(t, entries[0].Title)
	assert.Equal(t, "#heading-0", entries[0].URL())

	entries = Extract("intro\n\n### 你好")
	require.Len(t, entries, 1)
	assert.Equal(t, "heading-2", entries[0].Anchor)
	assert.Equal(t, "你好", entries[0].Title)
}

func TestExtract_Depths(t *testing.T) {
	body := "# Title\n## Two\n### Three\n#### Four\n##### Five\n###### Six\n####### Seven\n##NoSpace\n  ## Indented  \n"
	entries := Extract(body)

	got := make([]int, len(entries))
	for i, e := range entries {
		got[i] = e.Depth
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6, 2}, got)
	assert.Equal(t, "Indented", entries[5].Title)
	assert.Equal(t, 8, entries[5].Line)
}

func TestExtract_SuffixCollisionKeepsAnchorsUnique(t *testing.T) {
	entries := Extract("## A-1\n## A\n## A\n## A")
	assert.Equal(t, []string{"a-1", "a", "a-2", "a-3"}, anchorsOf(entries))

	entries = Extract("## A\n## A\n## A-1")
	assert.Equal(t, []string{"a", "a-1", "a-1-1"}, anchorsOf(entries))
}

func TestExtract_CRLFAndTabs(t *testing.T) {
	entries := Extract("##\tInstall Guide\r\n## Next\r\n")
	require.Len(t, entries, 2)
	assert.Equal(t, "install-guide", entries[0].Anchor)
	assert.Equal(t, "Install Guide", entries[0].Title)
	assert.Equal(t, "next", entries[1].Anchor)
}

func TestExtract_Idempotent(t *testing.T) {
	body := "## Setup\n## Setup\n### Über uns\n## !!!\n"
	assert.Equal(t, Extract(body), Extract(body))
}

func TestAnchors(t *testing.T) {
	m := Anchors(Extract("text\n## A\n\n## A"))
	assert.Equal(t, map[int]string{1: "a", 3: "a-1"}, m)
}

func TestMatchHeading(t *testing.T) {
	tests := []struct {
		line  string
		depth int
		title string
		ok    bool
	}{
		{"## Title", 2, "Title", true},
		{"###### Deep  ", 6, "Deep", true},
		{"## ", 2, "", true},
		{"##", 0, "", false},
		{"# Top", 0, "", false},
		{"####### Seven", 0, "", false},
		{"##x", 0, "", false},
		{"text ## not", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			depth, title, ok := MatchHeading(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.depth, depth)
			assert.Equal(t, tt.title, title)
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":          "hello-world",
		"  Leading  trailing ": "leading-trailing",
		"a - b":                "a-b",
		"a!b":                  "ab",
		"C++ & Go":             "c-go",
		"snake_case_name":      "snake_case_name",
		"--dashes--":           "dashes",
		"Über uns":             "ber-uns",
		"نصب":                  "",
		"Step 1: Install":      "step-1-install",
		"":                     "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := Slugify(in); got != want {
				t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
