package buffer

import (
	"github.com/dshills/duet/internal/engine/cursor"
	"github.com/dshills/duet/internal/renderer/viewport"
)

// Direction is a cursor movement direction.
type Direction uint8

// Movement directions.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// MoveCursor moves one cursor a single step and then re-contains the scroll
// offsets for the given viewport.
//
// When secondary is true the secondary cursor is moved, and it is created at
// the primary position first if it does not exist yet. Up and Down keep the
// column where the destination line allows it. Left and Right wrap across
// line boundaries. Moves past the document edges are ignored.
func (b *Buffer) MoveCursor(dir Direction, sp viewport.SizeProvider, secondary bool) {
	if secondary {
		if !b.hasSecondary {
			b.secondary = b.primary
			b.hasSecondary = true
		}
		b.secondary = b.step(b.secondary, dir)
	} else {
		b.primary = b.step(b.primary, dir)
	}

	b.EnsureVisible(sp)
}

// EnsureVisible adjusts the vertical offset so the primary cursor and then the
// secondary cursor fall inside the viewport. When both cannot fit, the
// secondary's adjustment is applied last and wins. The horizontal offset
// follows the primary cursor only.
func (b *Buffer) EnsureVisible(sp viewport.SizeProvider) {
	size := viewport.Size{Width: 1, Height: 1}
	if sp != nil {
		size = sp.Size().Normalize()
	}

	b.offsetY = viewport.Contain(b.offsetY, b.primary.Y, size.Height)
	if b.hasSecondary {
		b.offsetY = viewport.Contain(b.offsetY, b.secondary.Y, size.Height)
	}

	b.offsetX = viewport.ContainColumn(b.lineAt(b.primary.Y), b.offsetX, b.primary.X, size.Width)
}

func (b *Buffer) step(p cursor.Position, dir Direction) cursor.Position {
	p = b.clamp(p)

	switch dir {
	case Up:
		if p.Y > 0 {
			p.Y--
			p.X = min(p.X, len(b.lines[p.Y]))
		}
	case Down:
		if p.Y < len(b.lines)-1 {
			p.Y++
			p.X = min(p.X, len(b.lines[p.Y]))
		}
	case Left:
		if p.X > 0 {
			p.X--
		} else if p.Y > 0 {
			p.Y--
			p.X = len(b.lines[p.Y])
		}
	case Right:
		if p.X < len(b.lines[p.Y]) {
			p.X++
		} else if p.Y < len(b.lines)-1 {
			p.Y++
			p.X = 0
		}
	}

	return p
}

func (b *Buffer) lineAt(y int) []rune {
	if y < 0 || y >= len(b.lines) {
		return nil
	}
	return b.lines[y]
}
