// Package watch re-runs a check whenever Markdown files under the watched paths change.
package watch

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

	"git.home.luguber.info/inful/refcheck/internal/discovery"
	"git.home.luguber.info/inful/refcheck/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a re-run starts.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc performs one check.
type RunFunc func(ctx context.Context)

// Watcher drives RunFunc from filesystem events.
type Watcher struct {
	paths    []string
	run      RunFunc
	debounce time.Duration
	excluded func(path string) bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExclude skips events for paths the predicate rejects.
func WithExclude(excluded func(path string) bool) Option {
	return func(w *Watcher) { w.excluded = excluded }
}

// New creates a Watcher over paths, which may be files or directories.
func New(paths []string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{
		paths:    paths,
		run:      run,
		debounce: DefaultDebounce,
		excluded: func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run performs an initial check, then re-runs after every debounced burst of changes
// until ctx is canceled. Runs never overlap; changes during a run queue one more run.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	files := make(map[string]bool)
	for _, p := range w.paths {
		info, err := os.Stat(p)
		if err != nil {
			slog.Warn("Cannot watch path", logfields.Path(p), logfields.Error(err))
			continue
		}
		if info.IsDir() {
			addDirsRecursive(watcher, p)
			continue
		}
		abs, _ := filepath.Abs(p)
		files[abs] = true
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			slog.Warn("watch add failed", logfields.Path(p), logfields.Error(err))
		}
	}

	rerun, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx, rerun)
	}()
	rerun <- struct{}{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(watcher, ev, files) {
				slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// worker serialises runs; requests arriving mid-run collapse into the buffered slot.
func (w *Watcher) worker(ctx context.Context, rerun <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rerun:
			w.run(ctx)
		}
	}
}

func (w *Watcher) relevant(watcher *fsnotify.Watcher, ev fsnotify.Event, files map[string]bool) bool {
	if shouldIgnoreEvent(ev.Name) || w.excluded(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(watcher, ev.Name)
			return false
		}
	}
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if len(files) > 0 {
		if abs, err := filepath.Abs(ev.Name); err == nil && files[abs] {
			return true
		}
	}
	return discovery.IsMarkdown(ev.Name)
}

// newDebouncer returns a channel that receives one signal per burst of trigger calls.
func newDebouncer(d time.Duration) (chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	ch := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return ch, trigger, stop
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for hidden files and editor temp/swap files.
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
