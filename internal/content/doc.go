// Package content loads localized documents from per-locale content trees.
//
// Each supported locale has its own root holding documents named by slug
// (<slug joined by "/">.<ext>, or index.<ext> for the empty slug). A lookup
// that misses in a translated tree falls back once to the default locale's
// tree, which is treated as authoritative. If that misses too the caller gets
// the fixed not-found record. Lookups never return errors.
//
// Store is safe for concurrent use. Cache and Watcher add optional in-memory
// caching with filesystem-driven invalidation for the long-running server.
package content
