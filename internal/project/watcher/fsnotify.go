package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSNotifyWatcher implements Watcher on top of fsnotify.
//
// fsnotify is given directories, never files: editors and tools often save
// by writing a temporary file and renaming it over the original, which
// silently drops a watch placed on the original inode. Events for names
// that are not registered files are discarded.
type FSNotifyWatcher struct {
	fsw *fsnotify.Watcher

	mu    sync.RWMutex
	files map[string]string // absolute file path -> parent dir
	dirs  map[string]int    // parent dir -> registered files

	events  chan Event
	errors  chan error
	done    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewFSNotifyWatcher creates an fsnotify-backed watcher.
func NewFSNotifyWatcher(opts ...Option) (*FSNotifyWatcher, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &FSNotifyWatcher{
		fsw:     fsw,
		files:   make(map[string]string),
		dirs:    make(map[string]int),
		events:  make(chan Event, cfg.BufferSize),
		errors:  make(chan error, cfg.BufferSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *FSNotifyWatcher) isClosed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// Watch registers a file. The file itself need not exist yet, but its
// directory must.
func (w *FSNotifyWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isClosed() {
		return ErrWatcherClosed
	}
	if _, ok := w.files[abs]; ok {
		return ErrAlreadyWatching
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ErrPathNotExist
	case err != nil:
		return err
	case !info.IsDir():
		return ErrPathNotExist
	}

	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = dir
	return nil
}

// Unwatch removes a file. The directory watch is dropped with its last file.
func (w *FSNotifyWatcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isClosed() {
		return ErrWatcherClosed
	}
	dir, ok := w.files[abs]
	if !ok {
		return ErrNotWatching
	}
	delete(w.files, abs)

	if w.dirs[dir]--; w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsw.Remove(dir) // directory may already be gone
	}
	return nil
}

func (w *FSNotifyWatcher) IsWatching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.files[abs]
	return ok
}

func (w *FSNotifyWatcher) Events() <-chan Event { return w.events }
func (w *FSNotifyWatcher) Errors() <-chan error { return w.errors }

// Close stops delivery, closes both channels and releases the fsnotify
// handle. Later calls return the first result.
func (w *FSNotifyWatcher) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		close(w.done)
		w.mu.Unlock()

		<-w.stopped
		close(w.events)
		close(w.errors)
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

func (w *FSNotifyWatcher) loop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.done:
			return

		case raw, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev, ok := w.translate(raw); ok {
				select {
				case w.events <- ev:
				default:
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// translate maps a directory event onto a registered file.
func (w *FSNotifyWatcher) translate(raw fsnotify.Event) (Event, bool) {
	op := convertOp(raw.Op)
	if op == 0 {
		return Event{}, false
	}

	path := filepath.Clean(raw.Name)
	w.mu.RLock()
	_, watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return Event{}, false
	}
	return Event{Path: path, Op: op, Timestamp: time.Now()}, true
}

var opTable = []struct {
	from fsnotify.Op
	to   Op
}{
	{fsnotify.Create, OpCreate},
	{fsnotify.Write, OpWrite},
	{fsnotify.Remove, OpRemove},
	{fsnotify.Rename, OpRename},
	{fsnotify.Chmod, OpChmod},
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	for _, m := range opTable {
		if fsOp.Has(m.from) {
			op |= m.to
		}
	}
	return op
}

var _ Watcher = (*FSNotifyWatcher)(nil)
