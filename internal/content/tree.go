package content

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/icons"
)

// NodeType distinguishes navigation tree nodes.
type NodeType string

const (
	NodeRoot   NodeType = "root"
	NodePage   NodeType = "page"
	NodeFolder NodeType = "folder"
)

// Node is one entry of the navigation tree.
type Node struct {
	Type        NodeType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Slug        string   `json:"slug"`
	Fallback    bool     `json:"fallback,omitempty"`
	Order       int      `json:"-"`
	Children    []*Node  `json:"children,omitempty"`
}

// Tree builds the navigation tree for locale. The structure always follows
// the default locale's tree; titles and descriptions come from src, so
// translated documents show their localized titles. A folder's index document
// supplies the folder's name and URL. Siblings are ordered by front-matter
// order, then name.
func Tree(ctx context.Context, store *Store, src Source, reg *i18n.Registry, locale i18n.Locale) *Node {
	locale = reg.Normalize(locale)
	root := &Node{Type: NodeRoot, Name: reg.DisplayName(locale)}
	folders := map[string]*Node{"": root}

	var folder func(dir Slug) *Node
	folder = func(dir Slug) *Node {
		key := dir.String()
		if n, ok := folders[key]; ok {
			return n
		}
		parent := folder(dir[:len(dir)-1])
		n := &Node{Type: NodeFolder, Name: nameFromSegment(dir[len(dir)-1]), Slug: key}
		parent.Children = append(parent.Children, n)
		folders[key] = n
		return n
	}

	for _, slug := range store.Slugs(store.Default()) {
		if ctx.Err() != nil {
			break
		}
		isIndex := len(slug) > 0 && slug[len(slug)-1] == "index"
		pageSlug := slug
		if isIndex {
			pageSlug = slug[:len(slug)-1]
		}
		rec := src.Load(ctx, slug, locale)

		var n *Node
		switch {
		case len(slug) == 0:
			n = &Node{Type: NodePage, Slug: ""}
			root.Children = append(root.Children, n)
		case isIndex && len(pageSlug) > 0:
			n = folder(pageSlug)
		default:
			n = &Node{Type: NodePage, Slug: slug.String()}
			parent := folder(slug[:len(slug)-1])
			parent.Children = append(parent.Children, n)
		}

		n.URL = reg.DocURL(locale, pageSlug)
		n.Name = firstNonEmpty(rec.Title, n.Name, nameFromSegment(lastSegment(pageSlug)))
		n.Description = rec.Description
		n.Order = rec.Order
		n.Fallback = rec.Fallback
		if rec.Icon != "" {
			n.Icon = string(icons.Lookup(rec.Icon))
		}
	}

	sortTree(root)
	return root
}

func sortTree(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Name < b.Name
	})
	for _, c := range n.Children {
		sortTree(c)
	}
}

func lastSegment(s Slug) string {
	if len(s) == 0 {
		return "index"
	}
	return s[len(s)-1]
}

// nameFromSegment turns "getting-started" into "Getting started".
func nameFromSegment(seg string) string {
	name := strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(seg))
	if name == "" {
		return seg
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
