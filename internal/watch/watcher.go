// Package watch reports debounced batches of source changes under a project
// root so callers can regenerate steering documents.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/steer/internal/logging"
	"github.com/papapumpkin/steer/internal/scan"
)

// DefaultDebounce is the quiet period after the last event before a batch
// is emitted.
const DefaultDebounce = 500 * time.Millisecond

// Batch is one debounced set of changed paths, relative to the root and
// sorted.
type Batch struct {
	Paths []string
}

// Watcher monitors every non-ignored directory under Root.
type Watcher struct {
	Root    string
	Changes <-chan Batch // Read-only external channel

	changes  chan Batch
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	watcher  *fsnotify.Watcher
	ignore   scan.IgnoreRules
	debounce time.Duration
	log      logrus.FieldLogger
}

// Options configures a Watcher. Zero values use the defaults.
type Options struct {
	Ignore   *scan.IgnoreRules
	Debounce time.Duration
	Logger   logrus.FieldLogger
}

// NewWatcher creates a watcher for root. Call Start to begin.
func NewWatcher(root string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	rules := scan.DefaultIgnore()
	if opts.Ignore != nil {
		rules = *opts.Ignore
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan Batch, 4)
	return &Watcher{
		Root:     abs,
		Changes:  ch,
		changes:  ch,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		watcher:  fw,
		ignore:   rules,
		debounce: debounce,
		log:      logging.OrDiscard(opts.Logger),
	}, nil
}

// Start registers the directory tree and begins the event loop.
func (w *Watcher) Start() error {
	if err := w.addTree(w.Root); err != nil {
		w.watcher.Close()
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. Batches nobody has
// received yet are dropped. Calling Stop more than once is safe.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.watcher.Close()
		<-w.done // Wait for loop to exit
		close(w.changes)
	})
}

// addTree watches dir and every non-ignored directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, ok := w.rel(p); ok && rel != "." && w.ignore.Match(rel, true) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			w.log.WithError(err).WithField("dir", p).Debug("watch add failed")
		}
		return nil
	})
}

func (w *Watcher) rel(p string) (string, bool) {
	rel, err := filepath.Rel(w.Root, p)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// relevant reports whether an event path should trigger regeneration.
func (w *Watcher) relevant(p string) (string, bool) {
	rel, ok := w.rel(p)
	if !ok || rel == "." {
		return "", false
	}
	info, err := os.Stat(p)
	isDir := err == nil && info.IsDir()
	if w.ignore.Match(rel, isDir) {
		return "", false
	}
	return rel, true
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]struct{})
	var last time.Time
	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	// flush never blocks past Stop, even with no reader on Changes.
	flush := func() {
		if len(pending) == 0 {
			return
		}
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		clear(pending)
		select {
		case w.changes <- Batch{Paths: paths}:
		case <-w.stop:
		}
	}

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				flush()
				return
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			rel, ok := w.relevant(event.Name)
			if !ok {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.log.WithError(err).Debug("watch new directory failed")
					}
				}
			}
			pending[rel] = struct{}{}
			last = time.Now()

		case <-ticker.C:
			if len(pending) > 0 && time.Since(last) >= w.debounce {
				flush()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

// Run calls onChange for every batch until ctx is canceled. A failing
// onChange is logged and the loop continues.
func Run(ctx context.Context, w *Watcher, onChange func(context.Context, Batch) error) error {
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-w.Changes:
			if !ok {
				return nil
			}
			w.log.WithField("paths", len(b.Paths)).Debug("changes detected")
			if err := onChange(ctx, b); err != nil {
				w.log.WithError(err).Warn("regeneration failed")
			}
		}
	}
}
