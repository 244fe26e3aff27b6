package viewport

import "github.com/mattn/go-runewidth"

// CellWidth returns the number of screen cells r occupies.
// Control and zero-width characters take one cell so the cursor always has
// somewhere to sit.
func CellWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}

// DisplayColumn returns the screen column of character index x when drawing
// of line starts at character index offset. Returns -1 if x is left of offset.
func DisplayColumn(line []rune, offset, x int) int {
	if x < offset {
		return -1
	}
	col := 0
	for i := offset; i < x && i < len(line); i++ {
		col += CellWidth(line[i])
	}
	if x > len(line) && offset <= len(line) {
		col += x - max(offset, len(line))
	}
	return col
}

// ContainColumn returns the horizontal offset, in characters, that keeps the
// cell of character x visible in a text area width cells wide. Wide
// characters are accounted by display width. The offset moves as little as
// possible.
func ContainColumn(line []rune, offset, x, width int) int {
	if width < 1 {
		width = 1
	}
	if x < 0 {
		x = 0
	}
	if offset < 0 {
		offset = 0
	}
	if x < offset {
		return x
	}

	cursorCell := 1
	if x < len(line) {
		cursorCell = CellWidth(line[x])
	}

	for offset < x && DisplayColumn(line, offset, x)+cursorCell > width {
		offset++
	}
	return offset
}
