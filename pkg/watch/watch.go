// Package watch re-runs a callback whenever a workspace directory changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/totocaster/stamp/internal/fsutil"
)

const defaultDebounce = 100 * time.Millisecond

// ErrAlreadyStarted is returned by Start on a running Watcher.
var ErrAlreadyStarted = errors.New("watcher already started")

// Option configures a Watcher.
type Option func(*Watcher)

// WithRecursive also watches subdirectories, including ones created later.
func WithRecursive(recursive bool) Option {
	return func(w *Watcher) {
		w.recursive = recursive
	}
}

// WithDebounce sets how long the directory must stay quiet before the
// callback runs. Zero means the default (100ms).
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher debounces filesystem events under dir into onChange calls.
type Watcher struct {
	dir       string
	recursive bool
	debounce  time.Duration
	logger    *slog.Logger
	onChange  func(context.Context) error

	mu         sync.RWMutex
	started    bool
	active     bool
	changes    int
	lastChange *time.Time
	done       chan struct{}
}

// New creates a Watcher for dir.
func New(dir string, onChange func(context.Context) error, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		debounce: defaultDebounce,
		logger:   slog.Default(),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. The event loop runs until ctx is cancelled; Done
// is closed when it has exited.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.started = true
	w.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.add(watcher, w.dir); err != nil {
		_ = watcher.Close()
		return err
	}

	w.setActive(true)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(w.done)
		defer w.setActive(false)
		defer watcher.Close()
		return w.loop(ctx, watcher)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("watch loop failed", "dir", w.dir, "error", err)
	}))

	return nil
}

// Done is closed once the event loop has stopped.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) add(watcher *fsnotify.Watcher, root string) error {
	if !w.recursive {
		return watcher.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher) error {
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

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			if w.recursive && event.Has(fsnotify.Create) {
				// New directories need their own watch; errors only mean it vanished again.
				_ = w.add(watcher, event.Name)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.recordChange()
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("change handler failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasPrefix(base, fsutil.TempFilePrefix)
}

func (w *Watcher) setActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = active
}

func (w *Watcher) recordChange() {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	w.changes++
	w.lastChange = &now
}
