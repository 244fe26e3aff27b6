package buffer

import (
	"slices"

	"github.com/dshills/duet/internal/engine/cursor"
)

// InsertChar inserts ch at the primary cursor and advances the primary cursor
// by one character. A secondary cursor on the same line at or after the
// insertion column moves right with the text.
func (b *Buffer) InsertChar(ch rune) {
	at := b.clamp(b.primary)
	b.insertRune(at, ch)
	b.primary = cursor.At(at.X+1, at.Y)

	if b.hasSecondary {
		b.secondary = cursor.AfterInsert(b.secondary, at, 1)
	}
}

// InsertString inserts each rune of s at the primary cursor. Line breaks
// split the line as InsertNewline does.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		switch r {
		case '\r':
		case '\n':
			b.InsertNewline()
		default:
			b.InsertChar(r)
		}
	}
}

// InsertCharAtBothCursors inserts ch at the primary cursor and then, when a
// secondary cursor exists, inserts ch again at the secondary cursor. The
// secondary cursor advances past its insertion; the primary cursor keeps the
// position it had after the first insertion.
//
// Without a secondary cursor this is InsertChar.
func (b *Buffer) InsertCharAtBothCursors(ch rune) {
	b.InsertChar(ch)
	if !b.hasSecondary {
		return
	}

	saved := b.primary
	at := b.clamp(b.secondary)
	b.insertRune(at, ch)
	b.secondary = cursor.At(at.X+1, at.Y)
	b.primary = saved
}

// InsertNewline splits the current line at the primary cursor. The text after
// the cursor becomes a new line below and the primary cursor moves to its
// start. A secondary cursor at or after the split point moves with its text.
func (b *Buffer) InsertNewline() {
	at := b.clamp(b.primary)
	line := b.lines[at.Y]

	right := slices.Clone(line[at.X:])
	b.lines[at.Y] = line[:at.X:at.X]
	b.lines = slices.Insert(b.lines, at.Y+1, right)

	b.primary = cursor.At(0, at.Y+1)
	if b.hasSecondary {
		b.secondary = cursor.AfterSplit(b.secondary, at)
	}
	b.dirty = true
}

// DeleteChar removes the character before the primary cursor. At the start of
// a line the line is joined onto the previous one. At the start of the
// document it does nothing.
func (b *Buffer) DeleteChar() {
	at := b.clamp(b.primary)
	b.primary = at

	switch {
	case at.X > 0:
		b.lines[at.Y] = slices.Delete(b.lines[at.Y], at.X-1, at.X)
		b.primary = cursor.At(at.X-1, at.Y)
		if b.hasSecondary {
			b.secondary = cursor.AfterDelete(b.secondary, b.primary)
		}

	case at.Y > 0:
		prevLen := len(b.lines[at.Y-1])
		b.lines[at.Y-1] = append(b.lines[at.Y-1], b.lines[at.Y]...)
		b.lines = slices.Delete(b.lines, at.Y, at.Y+1)
		b.primary = cursor.At(prevLen, at.Y-1)
		if b.hasSecondary {
			b.secondary = cursor.AfterJoin(b.secondary, at.Y, prevLen)
		}

	default:
		return
	}

	b.dirty = true
}

// insertRune places ch at a clamped position and marks the buffer dirty.
func (b *Buffer) insertRune(at cursor.Position, ch rune) {
	b.lines[at.Y] = slices.Insert(b.lines[at.Y], at.X, ch)
	b.dirty = true
}
