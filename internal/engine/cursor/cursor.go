package cursor

import "fmt"

// Position is a character-indexed location in a document.
// Both X and Y are 0-indexed; X is counted in runes, not bytes.
type Position struct {
	X int // character index within the line
	Y int // line index
}

// Origin is the first position of every document.
var Origin = Position{}

// At returns the position (x, y).
func At(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Lines are compared first, then characters.
func (p Position) Compare(other Position) int {
	if p.Y < other.Y {
		return -1
	}
	if p.Y > other.Y {
		return 1
	}
	if p.X < other.X {
		return -1
	}
	if p.X > other.X {
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in document order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsOrigin returns true if this is (0,0).
func (p Position) IsOrigin() bool {
	return p.X == 0 && p.Y == 0
}

// Clamp returns p moved into the document described by lineCount and lineLen.
//
// The returned position always satisfies:
//   - 0 <= Y < lineCount (lineCount is treated as at least 1)
//   - 0 <= X <= lineLen(Y)
func Clamp(p Position, lineCount int, lineLen func(line int) int) Position {
	if lineCount < 1 {
		lineCount = 1
	}
	y := clampInt(p.Y, 0, lineCount-1)

	maxX := 0
	if lineLen != nil {
		maxX = lineLen(y)
	}
	return Position{X: clampInt(p.X, 0, maxX), Y: y}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
