// Package watch reruns a callback whenever a source file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the burst of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher follows a single file. The parent directory is watched so
// editors that save by rename-and-replace keep triggering events.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *slog.Logger
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounce = d } }
func WithLogger(l *slog.Logger) Option    { return func(w *Watcher) { w.log = l } }

func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &Watcher{fw: fw, path: abs, debounce: DefaultDebounce, log: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) Path() string { return w.path }

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// Run calls fn after every settled change until ctx is cancelled or the
// watcher is closed. Watch errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("file event", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "path", w.path, "err", err)
		case <-fire:
			fire = nil
			fn()
		}
	}
}

func (w *Watcher) Close() error { return w.fw.Close() }
