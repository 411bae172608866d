// Package watch re-runs conversions when Python files under an input tree
// change. It debounces rapid event bursts (editors typically emit several
// events per save) and picks up directories created while watching.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when an operation is attempted on a closed watcher.
var ErrWatcherClosed = errors.New("watch: watcher already closed")

// OnChange is called after the debounce window with the set of changed paths.
type OnChange func(paths []string)

// Watcher monitors a directory tree for Python file changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	debounce  time.Duration
	closed    bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce delay for file change events.
// Default is 250ms.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a Watcher over root, registering root and every existing
// subdirectory with fsnotify.
func New(root string, opts ...Option) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		root:      absRoot,
		debounce:  250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsWatcher.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// Root returns the absolute path being watched.
func (w *Watcher) Root() string {
	return w.root
}

// Run blocks processing events until the context is cancelled. Changed .py
// paths are collected and delivered to onChange after the debounce window.
// Directories created under the root are added to the watch set.
func (w *Watcher) Run(ctx context.Context, onChange OnChange) error {
	if w.closed {
		return ErrWatcherClosed
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = make(map[string]bool)
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Chmod != 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New directory: start watching it. Add fails harmlessly
				// for plain files and already-removed paths.
				_ = w.fsWatcher.Add(event.Name)
			}
			if !isPythonFile(event.Name) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]bool)
			onChange(paths)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsWatcher.Close()
}

func isPythonFile(path string) bool {
	return strings.HasSuffix(path, ".py")
}
