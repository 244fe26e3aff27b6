package app

import (
	"unicode"

	"github.com/dshills/duet/internal/engine/buffer"
	"github.com/dshills/duet/internal/renderer/backend"
)

// Action is an editor command decoded from a key.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionWriteOut
	ActionSave
	ActionHelp
	ActionToggleSecondary
	ActionMove
	ActionNewline
	ActionDelete
	ActionTab
	ActionInsert
	ActionInsertBoth
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionQuit:            "quit",
	ActionWriteOut:        "write-out",
	ActionSave:            "save",
	ActionHelp:            "help",
	ActionToggleSecondary: "toggle-secondary",
	ActionMove:            "move",
	ActionNewline:         "newline",
	ActionDelete:          "delete",
	ActionTab:             "tab",
	ActionInsert:          "insert",
	ActionInsertBoth:      "insert-both",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Command is a decoded key: the action plus its argument.
type Command struct {
	Action    Action
	Rune      rune
	Direction buffer.Direction
	Secondary bool
}

// ctrlBindings are the Ctrl+letter commands. Every other Ctrl+letter types
// the letter at both cursors when the secondary cursor is active.
var ctrlBindings = map[rune]Action{
	'x': ActionQuit,
	'o': ActionWriteOut,
	's': ActionSave,
	'g': ActionHelp,
}

var arrowDirections = map[backend.Key]buffer.Direction{
	backend.KeyUp:    buffer.Up,
	backend.KeyDown:  buffer.Down,
	backend.KeyLeft:  buffer.Left,
	backend.KeyRight: buffer.Right,
}

// Translate decodes an editing-mode key event. hasSecondary reports whether
// the buffer has a secondary cursor, which changes what Ctrl+letter does.
func Translate(ev backend.Event, hasSecondary bool) Command {
	if ev.Type != backend.EventKey {
		return Command{}
	}

	if dir, ok := arrowDirections[ev.Key]; ok {
		switch {
		case ev.Mod.Has(backend.ModAlt):
			return Command{Action: ActionMove, Direction: dir, Secondary: true}
		case ev.Mod.Has(backend.ModCtrl):
			return Command{}
		default:
			return Command{Action: ActionMove, Direction: dir}
		}
	}

	switch ev.Key {
	case backend.KeyEnter:
		return Command{Action: ActionNewline}
	case backend.KeyBackspace:
		return Command{Action: ActionDelete}
	case backend.KeyTab:
		return Command{Action: ActionTab}
	case backend.KeyRune:
		return translateRune(ev, hasSecondary)
	}
	return Command{}
}

func translateRune(ev backend.Event, hasSecondary bool) Command {
	switch {
	case ev.Mod.Has(backend.ModCtrl):
		r := unicode.ToLower(ev.Rune)
		if action, ok := ctrlBindings[r]; ok {
			return Command{Action: action}
		}
		if hasSecondary && unicode.IsPrint(r) {
			return Command{Action: ActionInsertBoth, Rune: r}
		}
		return Command{}
	case ev.Mod.Has(backend.ModAlt):
		if unicode.ToLower(ev.Rune) == 'c' {
			return Command{Action: ActionToggleSecondary}
		}
		return Command{}
	case unicode.IsPrint(ev.Rune):
		return Command{Action: ActionInsert, Rune: ev.Rune}
	}
	return Command{}
}
