// Package watch re-runs a function whenever compounds or parts are added,
// removed or renamed under a root directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for the tree to settle.
const DefaultDebounce = 250 * time.Millisecond

// RunFunc is invoked once at start and again after every batch of changes.
type RunFunc func(ctx context.Context) error

// Watcher watches a root directory and its compound directories.
type Watcher struct {
	root     string
	run      RunFunc
	debounce time.Duration
	ignore   []string
	exclude  []string
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnoreNames skips events for entries whose base name matches any of
// the filepath.Match patterns, such as the structure files being written.
func WithIgnoreNames(patterns ...string) Option {
	return func(w *Watcher) {
		w.ignore = append(w.ignore, patterns...)
	}
}

// WithExcludeCompounds skips everything under the root entries with exactly
// these names, such as an output directory kept inside the root. Empty names
// are dropped.
func WithExcludeCompounds(names ...string) Option {
	return func(w *Watcher) {
		for _, n := range names {
			if n != "" {
				w.exclude = append(w.exclude, n)
			}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for root.
func New(root string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{
		root:     filepath.Clean(root),
		run:      run,
		debounce: DefaultDebounce,
		ignore:   []string{".structgen-*"},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch runs once, then blocks re-running after changes until ctx is done.
// Errors from the run function are logged and do not stop the watcher.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := w.addTree(fw); err != nil {
		return err
	}

	w.invoke(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("tree changed", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) && w.depth(event.Name) == 1 && isDir(event.Name) {
				if err := fw.Add(event.Name); err != nil {
					w.logger.Warn("failed to watch compound", "path", event.Name, "error", err)
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.invoke(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) invoke(ctx context.Context) {
	if err := w.run(ctx); err != nil {
		w.logger.Error("run failed", "error", err)
	}
}

// addTree watches the root and each compound directory beneath it.
func (w *Watcher) addTree(fw *fsnotify.Watcher) error {
	if err := fw.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.root, err)
	}
	for _, e := range entries {
		path := filepath.Join(w.root, e.Name())
		if w.ignored(e.Name()) || slices.Contains(w.exclude, e.Name()) || !isDir(path) {
			continue
		}
		if err := fw.Add(path); err != nil {
			w.logger.Warn("failed to watch compound", "path", path, "error", err)
		}
	}
	return nil
}

// relevant reports whether an event may change some compound's parts.
// Writes and chmods never do; neither does anything deeper than a part.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if w.ignored(filepath.Base(event.Name)) || w.excluded(event.Name) {
		return false
	}
	d := w.depth(event.Name)
	return d == 1 || d == 2
}

func (w *Watcher) ignored(name string) bool {
	for _, p := range w.ignore {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// excluded reports whether path lies under an excluded root entry.
func (w *Watcher) excluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return slices.Contains(w.exclude, first)
}

// depth returns how many path elements path lies below the root, or -1.
func (w *Watcher) depth(path string) int {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return -1
	}
	if rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
