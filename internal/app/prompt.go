package app

import (
	"strings"
	"unicode"

	"github.com/dshills/duet/internal/renderer/backend"
)

type promptKind uint8

const (
	promptConfirmQuit promptKind = iota
	promptFilename
)

// Prompt labels shown in the status bar.
const (
	ConfirmQuitLabel = "Save modified buffer? (Y)es (N)o (^C) Cancel"
	FilenameLabel    = "File Name to Write (Esc cancels):"
)

// prompt is the modal input state. While a prompt is open every key goes to
// it instead of the buffer.
type prompt struct {
	kind      promptKind
	input     []rune
	quitAfter bool
}

func (p *prompt) label() string {
	if p.kind == promptConfirmQuit {
		return ConfirmQuitLabel
	}
	return FilenameLabel
}

func (app *Application) openPrompt(p *prompt) {
	app.prompt = p
	app.Status().ClearMessage()
	app.Status().SetPrompt(p.label(), string(p.input))
}

func (app *Application) closePrompt() {
	app.prompt = nil
	app.Status().ClearPrompt()
}

// PromptActive reports whether a prompt is taking keys.
func (app *Application) PromptActive() bool {
	return app.prompt != nil
}

// PromptInput returns the text typed into the open prompt.
func (app *Application) PromptInput() string {
	if app.prompt == nil {
		return ""
	}
	return string(app.prompt.input)
}

func (app *Application) handlePromptKey(ev backend.Event) error {
	if app.prompt.kind == promptConfirmQuit {
		return app.handleConfirmQuit(ev)
	}
	return app.handleFilename(ev)
}

func isCancel(ev backend.Event) bool {
	if ev.Key == backend.KeyEscape {
		return true
	}
	return ev.Key == backend.KeyRune && ev.Mod.Has(backend.ModCtrl) && unicode.ToLower(ev.Rune) == 'c'
}

func (app *Application) handleConfirmQuit(ev backend.Event) error {
	if isCancel(ev) {
		app.closePrompt()
		return nil
	}
	if ev.Key != backend.KeyRune || ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
		return nil
	}

	switch unicode.ToLower(ev.Rune) {
	case 'y':
		app.openPrompt(&prompt{
			kind:      promptFilename,
			input:     []rune(app.buf.Path()),
			quitAfter: true,
		})
	case 'n':
		app.closePrompt()
		return ErrQuit
	}
	return nil
}

func (app *Application) handleFilename(ev backend.Event) error {
	p := app.prompt

	switch {
	case isCancel(ev):
		app.closePrompt()
		app.setInfo("Save cancelled")
		return nil

	case ev.Key == backend.KeyEnter:
		name := strings.TrimSpace(string(p.input))
		app.closePrompt()
		if name == "" {
			app.setError("File name cannot be empty")
			return nil
		}
		if name != app.buf.Path() {
			app.buf.SetPath(name)
			app.watchPath(name)
		}
		return app.save(p.quitAfter)

	case ev.Key == backend.KeyBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}

	case ev.Key == backend.KeyRune && !ev.Mod.Has(backend.ModCtrl) && !ev.Mod.Has(backend.ModAlt):
		if unicode.IsPrint(ev.Rune) {
			p.input = append(p.input, ev.Rune)
		}

	default:
		return nil
	}

	app.Status().SetPrompt(p.label(), string(p.input))
	return nil
}
