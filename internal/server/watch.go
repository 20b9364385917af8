package server

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// RebuildFunc regenerates the site. It is never called concurrently.
type RebuildFunc func(ctx context.Context) error

// Watcher rebuilds the site when content files change. Bursts of events
// within the debounce window cause a single rebuild.
type Watcher struct {
	root     string
	patterns []string
	debounce time.Duration
	rebuild  RebuildFunc
	onBuilt  func()
	ready    chan struct{}
}

// NewWatcher watches root for changes to files matching patterns, which are
// doublestar globs relative to root. onBuilt runs after every successful
// rebuild.
func NewWatcher(root string, patterns []string, debounce time.Duration, rebuild RebuildFunc, onBuilt func()) *Watcher {
	return &Watcher{
		root:     root,
		patterns: patterns,
		debounce: debounce,
		rebuild:  rebuild,
		onBuilt:  onBuilt,
		ready:    make(chan struct{}),
	}
}

// Matches reports whether path, relative to the watched root, triggers a
// rebuild.
func (w *Watcher) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Ready is closed once Run has registered its watches.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run watches until ctx is done. It may be called once.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := addRecursive(fw, w.root); err != nil {
		return err
	}
	log.Info().Str("root", w.root).Strs("patterns", w.patterns).Msg("watching content")
	close(w.ready)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// New directories are watched too so nested day files are seen.
			if ev.Has(fsnotify.Create) {
				if err := addRecursive(fw, ev.Name); err != nil {
					log.Debug().Err(err).Str("path", ev.Name).Msg("watch new path")
				}
			}
			rel, err := filepath.Rel(w.root, ev.Name)
			if err != nil || !w.Matches(rel) {
				continue
			}
			log.Debug().Str("path", rel).Str("op", ev.Op.String()).Msg("content changed")
			pending = true
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.rebuild(ctx); err != nil {
				log.Error().Err(err).Msg("rebuild failed")
				continue
			}
			if w.onBuilt != nil {
				w.onBuilt()
			}
		}
	}
}

// addRecursive watches root and every directory below it. A plain file is
// ignored.
func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
