package content

import (
	"context"
	"strings"
	"sync"

	"git.home.luguber.info/inful/docsite/internal/i18n"
)

type cacheKey struct {
	locale i18n.Locale
	slug   string
}

// Cache memoizes lookups of an underlying Source until invalidated.
// Records produced under a cancelled context are not stored, and neither are
// records whose lookup overlapped an invalidation.
type Cache struct {
	src     Source
	mu      sync.RWMutex
	entries map[cacheKey]Record
	gen     uint64 // bumped by every Invalidate*
}

func NewCache(src Source) *Cache {
	return &Cache{src: src, entries: map[cacheKey]Record{}}
}

func (c *Cache) Load(ctx context.Context, slug Slug, locale i18n.Locale) Record {
	key := cacheKey{locale: locale, slug: slug.String()}

	c.mu.RLock()
	rec, ok := c.entries[key]
	gen := c.gen
	c.mu.RUnlock()
	if ok {
		return rec
	}

	rec = c.src.Load(ctx, slug, locale)
	if ctx.Err() != nil {
		return rec
	}

	c.mu.Lock()
	if c.gen == gen {
		c.entries[key] = rec
	}
	c.mu.Unlock()
	return rec
}

// Invalidate drops every cached record.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = map[cacheKey]Record{}
	c.gen++
	c.mu.Unlock()
}

// InvalidateSlug drops the records of slug in every locale, since a change
// in the default tree affects the fallbacks of all other locales.
func (c *Cache) InvalidateSlug(slug Slug) {
	s := slug.String()
	c.mu.Lock()
	c.gen++
	for k := range c.entries {
		if k.slug == s {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// InvalidatePrefix drops the records of every slug under dir (used when a
// whole folder is created, renamed or removed).
func (c *Cache) InvalidatePrefix(dir Slug) {
	prefix := dir.String()
	c.mu.Lock()
	c.gen++
	for k := range c.entries {
		if prefix == "" || k.slug == prefix || strings.HasPrefix(k.slug, prefix+"/") {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
