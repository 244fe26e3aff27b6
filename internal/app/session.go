package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/duet/internal/engine/buffer"
	"github.com/dshills/duet/internal/renderer/backend"
	"github.com/dshills/duet/internal/renderer/statusline"
)

// HandleEvent processes one terminal event. It returns ErrQuit when the
// session should end.
func (app *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
		app.buf.EnsureVisible(app)
		return nil
	case backend.EventKey:
		return app.handleKey(ev)
	default:
		return nil
	}
}

func (app *Application) handleKey(ev backend.Event) error {
	if app.showingHelp {
		app.showingHelp = false
		return nil
	}
	if app.prompt != nil {
		return app.handlePromptKey(ev)
	}

	cmd := Translate(ev, app.buf.HasSecondary())
	if cmd.Action == ActionNone {
		return nil
	}
	app.logger.Debug("key %s -> %s", ev, cmd.Action)
	app.Status().ClearMessage()
	return app.Execute(cmd)
}

// Execute runs a decoded command against the buffer.
func (app *Application) Execute(cmd Command) error {
	b := app.buf

	switch cmd.Action {
	case ActionQuit:
		if !b.Dirty() {
			return ErrQuit
		}
		app.openPrompt(&prompt{kind: promptConfirmQuit})

	case ActionWriteOut:
		app.openPrompt(&prompt{kind: promptFilename, input: []rune(b.Path())})

	case ActionSave:
		return app.save(false)

	case ActionHelp:
		app.showingHelp = true

	case ActionToggleSecondary:
		b.ToggleSecondaryCursor()
		if b.HasSecondary() {
			app.setInfo("Secondary cursor on")
		} else {
			app.setInfo("Secondary cursor off")
		}
		b.EnsureVisible(app)

	case ActionMove:
		b.MoveCursor(cmd.Direction, app, cmd.Secondary)

	case ActionNewline:
		b.InsertNewline()
		b.EnsureVisible(app)

	case ActionDelete:
		b.DeleteChar()
		b.EnsureVisible(app)

	case ActionTab:
		if app.expandTabs {
			b.InsertString(strings.Repeat(" ", app.tabWidth))
		} else {
			b.InsertChar('\t')
		}
		b.EnsureVisible(app)

	case ActionInsert:
		b.InsertChar(cmd.Rune)
		b.EnsureVisible(app)

	case ActionInsertBoth:
		b.InsertCharAtBothCursors(cmd.Rune)
		b.EnsureVisible(app)
	}

	return nil
}

// save writes the buffer. With no path it opens the file name prompt;
// quitAfter carries through so a save started by quit ends the session.
func (app *Application) save(quitAfter bool) error {
	result, err := app.buf.Save()
	switch result {
	case buffer.SaveNoPath:
		app.openPrompt(&prompt{kind: promptFilename, quitAfter: quitAfter})
		return nil

	case buffer.SaveFailed:
		app.logger.Error("save %s: %v", app.buf.Path(), err)
		app.setError(fmt.Sprintf("Error writing %s: %v", app.buf.Name(), unwrapFileError(err)))
		return nil
	}

	app.lastSeen = app.stat(app.buf.Path())
	app.logger.Info("wrote %s (%d lines)", app.buf.Path(), app.buf.LineCount())

	if quitAfter {
		return ErrQuit
	}
	app.setInfo(wroteMessage(app.buf.LineCount()))
	return nil
}

func wroteMessage(lines int) string {
	if lines == 1 {
		return "Wrote 1 line"
	}
	return fmt.Sprintf("Wrote %d lines", lines)
}

func (app *Application) setInfo(msg string) {
	app.Status().SetMessage(msg, statusline.MessageInfo)
}

func (app *Application) setError(msg string) {
	app.Status().SetMessage(msg, statusline.MessageError)
}

// unwrapFileError drops the op and path a status message already names.
func unwrapFileError(err error) error {
	var fe *buffer.FileError
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err
	}
	return err
}
