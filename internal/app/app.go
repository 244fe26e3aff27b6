// Package app runs an editing session: it owns the buffer, turns terminal
// and file-watch events into buffer operations, and redraws the screen.
//
// All buffer access happens on the goroutine running Run. Terminal input is
// read on a separate goroutine and handed over on a channel, and file-watch
// events arrive on the watcher's channel, so the buffer itself needs no
// locking.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/dshills/duet/internal/config"
	"github.com/dshills/duet/internal/engine/buffer"
	"github.com/dshills/duet/internal/project/watcher"
	"github.com/dshills/duet/internal/renderer"
	"github.com/dshills/duet/internal/renderer/backend"
	"github.com/dshills/duet/internal/renderer/statusline"
	"github.com/dshills/duet/internal/renderer/viewport"
)

// Options configures the application.
type Options struct {
	// Path is the file to open. Empty starts an unnamed buffer.
	Path string

	// Fs is the file system for the document. Defaults to the OS.
	Fs afero.Fs

	// Backend is the terminal. Required.
	Backend backend.Backend

	// Config supplies settings. Defaults are used when nil.
	Config *config.Config

	// Logger receives session logs. Logging is disabled when nil.
	Logger *Logger

	// Watcher reports external changes to the open file. When nil and
	// editor.watchFile is set, an fsnotify watcher is created for OS file
	// systems.
	Watcher watcher.Watcher
}

// Application is one editing session.
type Application struct {
	fs      afero.Fs
	backend backend.Backend
	config  *config.Config
	logger  *Logger

	buf      *buffer.Buffer
	renderer *renderer.Renderer

	tabWidth   int
	expandTabs bool

	prompt      *prompt
	showingHelp bool

	watcher     watcher.Watcher
	ownsWatcher bool
	watchedPath string
	lastSeen    fileStamp

	running atomic.Bool
	done    chan struct{}
}

// New creates a session and loads opts.Path. A file that cannot be read
// leaves an empty buffer and an error message in the status line.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Config == nil {
		opts.Config = config.New(config.WithFs(opts.Fs))
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger()
	}

	editorCfg := opts.Config.Editor()
	app := &Application{
		fs:         opts.Fs,
		backend:    opts.Backend,
		config:     opts.Config,
		logger:     opts.Logger.WithComponent("app"),
		tabWidth:   editorCfg.TabWidth,
		expandTabs: editorCfg.ExpandTabs,
		done:       make(chan struct{}),
	}

	app.renderer = renderer.New(opts.Backend, renderer.Options{
		ShowLineNumbers: editorCfg.LineNumbers,
		ShowHelpBar:     opts.Config.UI().ShowHelpBar,
	})

	buf, err := buffer.Load(opts.Fs, opts.Path)
	app.buf = buf
	switch {
	case err != nil:
		app.logger.Warn("load %s: %v", opts.Path, err)
		app.setError(fmt.Sprintf("Could not read %s: %v", buf.Name(), unwrapFileError(err)))
	case opts.Path != "" && !app.exists(opts.Path):
		app.setInfo("New file")
	case opts.Path != "":
		app.logger.Info("opened %s (%d lines)", opts.Path, buf.LineCount())
	}

	for path, cfgErr := range opts.Config.ConfigErrors() {
		app.logger.Warn("config %s: %v", path, cfgErr)
	}

	app.watcher = opts.Watcher
	if app.watcher == nil && editorCfg.WatchFile {
		if _, isOS := opts.Fs.(*afero.OsFs); isOS {
			w, werr := watcher.New()
			if werr != nil {
				app.logger.Warn("file watching disabled: %v", werr)
			} else {
				app.watcher = w
				app.ownsWatcher = true
			}
		}
	}
	app.watchPath(buf.Path())

	return app, nil
}

// Buffer returns the document.
func (app *Application) Buffer() *buffer.Buffer {
	return app.buf
}

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Status returns the status line model.
func (app *Application) Status() *statusline.StatusLine {
	return app.renderer.Status()
}

// Size returns the text area size, the viewport every navigation call
// scrolls against.
func (app *Application) Size() viewport.Size {
	return app.renderer.Layout(app.buf.LineCount()).TextSize()
}

// ShowingHelp reports whether the help page is up.
func (app *Application) ShowingHelp() bool {
	return app.showingHelp
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run takes over the terminal and processes events until the user quits,
// ctx is cancelled, or an event handler panics. A normal quit returns ErrQuit.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	defer close(app.done)

	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("%v", err)
		}
	}()

	app.logger.Info("session started")
	keys := app.startInputPolling()

	var fileEvents <-chan watcher.Event
	var fileErrors <-chan error
	if app.watcher != nil {
		fileEvents = app.watcher.Events()
		fileErrors = app.watcher.Errors()
	}

	app.buf.EnsureVisible(app)
	app.render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if err := app.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					app.logger.Info("session ended")
				}
				return err
			}

		case fe, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			app.HandleFileEvent(fe)

		case werr, ok := <-fileErrors:
			if !ok {
				fileErrors = nil
				continue
			}
			app.logger.Warn("watcher: %v", werr)
			continue
		}

		app.render()
	}
}

// startInputPolling reads backend events on their own goroutine, since
// PollEvent blocks. Shutting the backend down unblocks it.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 16)

	go func() {
		defer close(events)

		for {
			ev := app.backend.PollEvent()

			select {
			case <-app.done:
				return
			default:
			}
			if ev.Type == backend.EventNone {
				continue
			}

			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}

func (app *Application) render() {
	if app.showingHelp {
		app.renderer.RenderHelp()
		return
	}
	app.renderer.Render(app.buf)
}

// Close releases the file watcher if the session created it.
func (app *Application) Close() error {
	if app.watcher == nil || !app.ownsWatcher {
		return nil
	}
	return app.watcher.Close()
}

var _ io.Closer = (*Application)(nil)
var _ viewport.SizeProvider = (*Application)(nil)
