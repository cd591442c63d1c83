package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/i18n"
)

func testRegistry(t *testing.T) *i18n.Registry {
	t.Helper()
	reg, err := i18n.NewRegistry([]i18n.Definition{{Code: "en"}, {Code: "fa"}, {Code: "ru"}, {Code: "zh"}}, "en")
	require.NoError(t, err)
	return reg
}

func find(n *Node, slug string) *Node {
	if n.Slug == slug && n.Type != NodeRoot {
		return n
	}
	for _, c := range n.Children {
		if f := find(c, slug); f != nil {
			return f
		}
	}
	return nil
}

func TestTree_DefaultLocale(t *testing.T) {
	s := newTestStore(t)
	root := Tree(context.Background(), s, s, testRegistry(t), "en")

	assert.Equal(t, NodeRoot, root.Type)
	assert.Equal(t, "English", root.Name)

	home := find(root, "")
	require.NotNil(t, home)
	assert.Equal(t, "Home", home.Name)
	assert.Equal(t, "/docs", home.URL)

	panel := find(root, "panel")
	require.NotNil(t, panel)
	assert.Equal(t, NodeFolder, panel.Type)
	assert.Equal(t, "Panel", panel.Name)
	assert.Equal(t, "/docs/panel", panel.URL)

	setup := find(root, "panel/setup")
	require.NotNil(t, setup)
	assert.Equal(t, "/docs/panel/setup", setup.URL)
	assert.Equal(t, "Server", setup.Icon)

	broken := find(root, "broken")
	require.NotNil(t, broken)
	assert.Equal(t, "Page Not Found", broken.Name, "unreadable default documents keep the placeholder title")
}

func TestTree_LocalizedTitlesAndURLs(t *testing.T) {
	s := newTestStore(t)
	root := Tree(context.Background(), s, s, testRegistry(t), "fa")

	assert.Equal(t, "فارسی", root.Name)

	setup := find(root, "panel/setup")
	require.NotNil(t, setup)
	assert.Equal(t, "راه‌اندازی", setup.Name)
	assert.Equal(t, "/fa/docs/panel/setup", setup.URL)
	assert.False(t, setup.Fallback)

	node := find(root, "node")
	require.NotNil(t, node)
	assert.Equal(t, "Node", node.Name, "untranslated pages show the default title")
	assert.True(t, node.Fallback)
}

func TestTree_Ordering(t *testing.T) {
	s := newTestStore(t)
	root := Tree(context.Background(), s, s, testRegistry(t), "en")

	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Home", "Node", "Page Not Found", "Panel"}, names)
}

func TestNameFromSegment(t *testing.T) {
	assert.Equal(t, "Getting started", nameFromSegment("getting-started"))
	assert.Equal(t, "Api ref", nameFromSegment("api_ref"))
	assert.Equal(t, "-", nameFromSegment("-"))
}
