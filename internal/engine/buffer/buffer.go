package buffer

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/dshills/duet/internal/engine/cursor"
)

// Buffer owns the document lines and all cursor state.
//
// The document always has at least one line. The primary cursor is always
// present; the secondary cursor exists only in dual-cursor mode.
type Buffer struct {
	lines [][]rune

	primary      cursor.Position
	secondary    cursor.Position
	hasSecondary bool

	offsetX int // first visible character
	offsetY int // first visible line

	dirty bool
	path  string
	fs    afero.Fs
}

// New creates a buffer holding a single empty line with the cursor at the
// origin.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines: [][]rune{{}},
		fs:    afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// FromText creates a buffer hydrated from text, split on line breaks.
// The buffer is not dirty.
func FromText(text string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = splitLines(text)
	return b
}

// Read Operations

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of the given line, or "" if out of range.
func (b *Buffer) Line(line int) string {
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return string(b.lines[line])
}

// LineRunes returns a copy of the characters of the given line.
func (b *Buffer) LineRunes(line int) []rune {
	if line < 0 || line >= len(b.lines) {
		return nil
	}
	out := make([]rune, len(b.lines[line]))
	copy(out, b.lines[line])
	return out
}

// LineLen returns the character count of the given line.
func (b *Buffer) LineLen(line int) int {
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	return len(b.lines[line])
}

// CurrentLine returns the text of the primary cursor's line.
func (b *Buffer) CurrentLine() string {
	return b.Line(b.primary.Y)
}

// Lines returns all lines as strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// Text returns the document as lines joined by "\n", without a trailing
// newline. This is exactly what Save writes.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Primary returns the primary cursor position.
func (b *Buffer) Primary() cursor.Position {
	return b.primary
}

// Secondary returns the secondary cursor position and whether it exists.
func (b *Buffer) Secondary() (cursor.Position, bool) {
	return b.secondary, b.hasSecondary
}

// HasSecondary returns true in dual-cursor mode.
func (b *Buffer) HasSecondary() bool {
	return b.hasSecondary
}

// OffsetX returns the horizontal scroll offset in characters.
func (b *Buffer) OffsetX() int {
	return b.offsetX
}

// OffsetY returns the vertical scroll offset in lines.
func (b *Buffer) OffsetY() int {
	return b.offsetY
}

// Dirty returns true if the content differs from the last load or save.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// Path returns the associated file path, or "" for an unnamed buffer.
func (b *Buffer) Path() string {
	return b.path
}

// Name returns the base name of the associated file, or "" when there is none.
func (b *Buffer) Name() string {
	if b.path == "" {
		return ""
	}
	return filepath.Base(b.path)
}

// SetPath binds or rebinds the associated file path.
// The content and the dirty flag are unchanged.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// Cursor placement

// SetPrimary moves the primary cursor, clamped into the document.
func (b *Buffer) SetPrimary(p cursor.Position) {
	b.primary = b.clamp(p)
}

// SetSecondary places the secondary cursor, creating it if needed.
func (b *Buffer) SetSecondary(p cursor.Position) {
	b.secondary = b.clamp(p)
	b.hasSecondary = true
}

// ToggleSecondaryCursor removes the secondary cursor if it exists, otherwise
// creates one at the primary cursor's position.
func (b *Buffer) ToggleSecondaryCursor() {
	if b.hasSecondary {
		b.hasSecondary = false
		b.secondary = cursor.Origin
		return
	}
	b.secondary = b.primary
	b.hasSecondary = true
}

func (b *Buffer) clamp(p cursor.Position) cursor.Position {
	return cursor.Clamp(p, len(b.lines), b.LineLen)
}

// splitLines splits text on line breaks. A "\r" before a "\n" is dropped and
// a final line break does not start an extra empty line.
func splitLines(text string) [][]rune {
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")

	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(strings.TrimSuffix(s, "\r")))
	}
	if len(lines) == 0 {
		lines = append(lines, []rune{})
	}
	return lines
}
