// Package statusline renders the status bar: file summary on the left, the
// latest message on the right, or the active prompt in place of both.
package statusline

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/duet/internal/renderer/backend"
	"github.com/dshills/duet/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// StatusLine holds what the status bar shows.
type StatusLine struct {
	filename   string
	modified   bool
	totalLines int
	cursors    int

	// Prompt state
	promptActive bool
	promptLabel  string
	promptInput  string

	message     string
	messageType MessageType
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{cursors: 1}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetTotalLines updates the total line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetCursors updates the number of active cursors.
func (s *StatusLine) SetCursors(n int) {
	s.cursors = n
}

// SetPrompt shows a prompt with the user's input in place of the status bar.
func (s *StatusLine) SetPrompt(label, input string) {
	s.promptActive = true
	s.promptLabel = label
	s.promptInput = input
}

// ClearPrompt returns to the regular status bar.
func (s *StatusLine) ClearPrompt() {
	s.promptActive = false
	s.promptLabel = ""
	s.promptInput = ""
}

// PromptActive returns true while a prompt is shown.
func (s *StatusLine) PromptActive() bool {
	return s.promptActive
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current status message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Text returns the status bar content for the given width, before styling.
func (s *StatusLine) Text(width int) string {
	if s.promptActive {
		return Truncate(s.promptLabel+" "+s.promptInput, width)
	}

	left := " " + s.summary()
	if s.message == "" {
		return Truncate(left, width)
	}

	right := "  " + s.message
	gap := width - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	if gap < 0 {
		// Not enough room for both; the message matters more.
		return Truncate(strings.TrimLeft(right, " "), width)
	}
	return left + strings.Repeat(" ", gap) + right
}

// summary formats "name - N lines [modified] [2 cursors]".
func (s *StatusLine) summary() string {
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}

	unit := "lines"
	if s.totalLines == 1 {
		unit = "line"
	}
	out := fmt.Sprintf("%s - %d %s", name, s.totalLines, unit)

	if s.modified {
		out += " [modified]"
	}
	if s.cursors > 1 {
		out += fmt.Sprintf(" [%d cursors]", s.cursors)
	}
	return out
}

// Render draws the status line to the backend at the given row and returns
// the screen column just after the prompt input when a prompt is active, or
// -1 otherwise.
func (s *StatusLine) Render(b backend.Backend, row, width int) int {
	barStyle := core.DefaultStyle().Reverse()
	if s.messageType == MessageError && !s.promptActive {
		barStyle = barStyle.Bold()
	}

	b.Fill(core.RectFromSize(row, 0, 1, width), core.NewStyledCell(' ', barStyle))
	end := DrawString(b, 0, row, width, s.Text(width), barStyle)

	if s.promptActive {
		return min(end, width-1)
	}
	return -1
}

// DrawString draws text starting at column x and stops at maxWidth cells.
// Returns the column after the last drawn cell.
func DrawString(b backend.Backend, x, y, maxWidth int, text string, style core.Style) int {
	col := x
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if w == 0 {
			continue
		}
		if col+w > maxWidth {
			break
		}
		runes := gr.Runes()
		b.SetCell(col, y, core.Cell{Rune: runes[0], Width: w, Style: style})
		for i := 1; i < w; i++ {
			b.SetCell(col+i, y, core.ContinuationCell())
		}
		col += w
	}
	return col
}

// Truncate shortens s to at most width display cells without splitting a
// grapheme cluster.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var sb strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > width {
			break
		}
		sb.WriteString(gr.Str())
		used += w
	}
	return sb.String()
}
