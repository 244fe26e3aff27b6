package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/duet/internal/project/watcher"
)

// FileChangedMessage is shown when another program changes the open file.
const FileChangedMessage = "File changed on disk"

// fileStamp identifies one version of a file on disk.
type fileStamp struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (s fileStamp) same(o fileStamp) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

func (app *Application) stat(path string) fileStamp {
	if path == "" {
		return fileStamp{}
	}
	info, err := app.fs.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, size: info.Size(), modTime: info.ModTime()}
}

func (app *Application) exists(path string) bool {
	_, err := app.fs.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// watchPath moves the watch to path, the buffer's new associated file.
func (app *Application) watchPath(path string) {
	if app.watcher == nil || path == "" {
		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		app.logger.Warn("watch %s: %v", path, err)
		return
	}
	if abs == app.watchedPath {
		return
	}

	if app.watchedPath != "" {
		if err := app.watcher.Unwatch(app.watchedPath); err != nil {
			app.logger.Debug("unwatch %s: %v", app.watchedPath, err)
		}
		app.watchedPath = ""
	}

	if err := app.watcher.Watch(abs); err != nil && !errors.Is(err, watcher.ErrAlreadyWatching) {
		app.logger.Warn("watch %s: %v", abs, err)
		return
	}
	app.watchedPath = abs
	app.lastSeen = app.stat(path)
	app.logger.Debug("watching %s", abs)
}

// HandleFileEvent reacts to a change of the watched file. The buffer is
// never reloaded; the user is told and decides what to do. Events caused by
// the session's own saves are recognized by the file's size and time and
// ignored.
func (app *Application) HandleFileEvent(ev watcher.Event) {
	if app.watchedPath == "" || filepath.Clean(ev.Path) != app.watchedPath {
		return
	}

	current := app.stat(app.buf.Path())
	if current.same(app.lastSeen) {
		app.logger.Debug("ignoring %s on %s: unchanged since last save", ev.Op, ev.Path)
		return
	}
	app.lastSeen = current

	app.logger.Info("%s changed on disk (%s)", ev.Path, ev.Op)
	app.setError(FileChangedMessage)
}
