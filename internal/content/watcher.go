package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/i18n"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for a burst of filesystem
// events to settle before invalidating.
const DefaultDebounce = 300 * time.Millisecond

// Invalidator is the part of Cache the watcher drives.
type Invalidator interface {
	Invalidate()
	InvalidateSlug(Slug)
	InvalidatePrefix(Slug)
}

// Watcher invalidates cached records when files under the content roots change.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dirs     map[i18n.Locale]string
	target   Invalidator
	slugOf   func(rel string) (Slug, bool)
	debounce time.Duration
	onFlush  func()

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OnFlush registers fn to run after each batch of invalidations.
func OnFlush(fn func()) WatcherOption {
	return func(w *Watcher) { w.onFlush = fn }
}

// NewWatcher watches every directory under the given roots recursively. store
// is used to map file paths back to slugs.
func NewWatcher(dirs map[i18n.Locale]string, store *Store, target Invalidator, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		dirs:     make(map[i18n.Locale]string, len(dirs)),
		target:   target,
		slugOf:   store.SlugForFile,
		debounce: DefaultDebounce,
		pending:  map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(w)
	}
	for l, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolve content root %s: %w", dir, err)
		}
		w.dirs[l] = abs
		if err := addDirsRecursive(fsw, abs); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Content watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	_ = w.fsw.Close()
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w.fsw, ev.Name)
		}
	}
	slog.Debug("Content change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger(ev.Name)
}

// trigger records the path and (re)starts the debounce timer.
func (w *Watcher) trigger(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = map[string]struct{}{}
	w.mu.Unlock()

	for name := range pending {
		w.invalidate(name)
	}
	slog.Info("Content cache invalidated", logfields.Count(len(pending)))
	if w.onFlush != nil {
		w.onFlush()
	}
}

func (w *Watcher) invalidate(name string) {
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, name)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if slug, ok := w.slugOf(filepath.ToSlash(rel)); ok {
			w.target.InvalidateSlug(slug)
			return
		}
		// Directory events (or files we do not serve) may hide many documents.
		w.target.InvalidatePrefix(ParseSlug(filepath.ToSlash(rel)))
		return
	}
	w.target.Invalidate()
}

// Close stops watching without waiting for Run to observe cancellation.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
