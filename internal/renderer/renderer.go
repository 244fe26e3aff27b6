package renderer

import (
	"fmt"

	"github.com/dshills/duet/internal/engine/cursor"
	"github.com/dshills/duet/internal/renderer/backend"
	"github.com/dshills/duet/internal/renderer/core"
	"github.com/dshills/duet/internal/renderer/statusline"
	"github.com/dshills/duet/internal/renderer/viewport"
	"github.com/dshills/duet/internal/version"
)

// View provides read access to the document and its cursors.
// *buffer.Buffer implements it.
type View interface {
	LineCount() int
	LineRunes(line int) []rune
	Primary() cursor.Position
	Secondary() (cursor.Position, bool)
	OffsetX() int
	OffsetY() int
	Dirty() bool
	Name() string
}

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool
	ShowHelpBar     bool
}

// HelpBarText is the key summary shown on the bottom row.
const HelpBarText = "^X Exit  ^O Write Out  ^S Save  ^G Help  M-C Cursor  M-Arrows Move Cursor"

// HelpPage is the full-screen key reference.
var HelpPage = []string{
	"Keys",
	"",
	"^X          Exit (asks to save a modified buffer)",
	"^O          Write out under a new or existing name",
	"^S          Save",
	"^G          Show this help",
	"M-C         Toggle the secondary cursor",
	"M-Arrows    Move the secondary cursor",
	"Arrows      Move the cursor",
	"^<letter>   Type at both cursors when two are active",
	"",
	"Press any key to return to the editor",
}

var (
	titleStyle  = core.Style{Foreground: core.ColorWhite, Background: core.ColorBlue}.Bold()
	gutterStyle = core.DefaultStyle().Dim()
	textStyle   = core.DefaultStyle()
	helpStyle   = core.DefaultStyle().Reverse()
	cursorStyle = core.DefaultStyle().Reverse()
)

// Renderer draws the editor screen to a backend.
type Renderer struct {
	backend backend.Backend
	opts    Options
	status  *statusline.StatusLine
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{
		backend: b,
		opts:    opts,
		status:  statusline.New(),
	}
}

// Status returns the status line model.
func (r *Renderer) Status() *statusline.StatusLine {
	return r.status
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the options.
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts
}

// Layout returns the layout for the current terminal size.
func (r *Renderer) Layout(lineCount int) Layout {
	w, h := r.backend.Size()
	return ComputeLayout(w, h, lineCount, r.opts)
}

// Render draws a full frame for v and flushes it.
func (r *Renderer) Render(v View) {
	l := r.Layout(v.LineCount())

	r.backend.Clear()
	r.drawTitle(l, v.Name())
	r.drawText(l, v)

	r.status.SetFilename(v.Name())
	r.status.SetModified(v.Dirty())
	r.status.SetTotalLines(v.LineCount())
	if _, ok := v.Secondary(); ok {
		r.status.SetCursors(2)
	} else {
		r.status.SetCursors(1)
	}
	promptCol := r.status.Render(r.backend, l.StatusRow, l.Width)

	if l.HelpRow >= 0 {
		r.fillRow(l.HelpRow, l.Width, helpStyle)
		statusline.DrawString(r.backend, 0, l.HelpRow, l.Width, HelpBarText, helpStyle)
	}

	if promptCol >= 0 {
		r.backend.ShowCursor(promptCol, l.StatusRow)
	} else {
		r.placeCursor(l, v)
	}

	r.backend.Show()
}

// RenderHelp draws the help page.
func (r *Renderer) RenderHelp() {
	w, h := r.backend.Size()

	r.backend.Clear()
	r.backend.HideCursor()
	for i, line := range HelpPage {
		if i >= h {
			break
		}
		style := textStyle
		if i == 0 {
			line = fmt.Sprintf("%s %s", version.Title(), line)
			style = style.Bold()
		}
		statusline.DrawString(r.backend, 0, i, w, line, style)
	}
	r.backend.Show()
}

// TitleText returns the title bar text for a file name.
func TitleText(name string) string {
	if name == "" {
		name = "[New Buffer]"
	}
	return fmt.Sprintf("%s    File: %s", version.Title(), name)
}

func (r *Renderer) drawTitle(l Layout, name string) {
	r.fillRow(l.TitleRow, l.Width, titleStyle)
	statusline.DrawString(r.backend, 0, l.TitleRow, l.Width, TitleText(name), titleStyle)
}

func (r *Renderer) drawText(l Layout, v View) {
	start, end := viewport.VisibleRange(v.OffsetY(), l.TextHeight, v.LineCount())
	sec, hasSec := v.Secondary()

	for line := start; line < end; line++ {
		row := l.TextTop + (line - start)

		if l.Gutter > 0 {
			num := fmt.Sprintf("%*d ", l.Gutter-1, line+1)
			statusline.DrawString(r.backend, 0, row, l.Gutter, num, gutterStyle)
		}

		secX := -1
		if hasSec && sec.Y == line {
			secX = sec.X
		}
		r.drawLine(row, l.Gutter, l.Width, v.LineRunes(line), v.OffsetX(), secX)
	}
}

// drawLine draws the characters of one document line from character offset
// onward, highlighting the character under the secondary cursor.
func (r *Renderer) drawLine(row, left, right int, runes []rune, offset, secX int) {
	col := left
	for i := offset; i < len(runes); i++ {
		w := viewport.CellWidth(runes[i])
		if col+w > right {
			break
		}

		style := textStyle
		if i == secX {
			style = cursorStyle
		}

		r.backend.SetCell(col, row, core.Cell{Rune: displayRune(runes[i]), Width: w, Style: style})
		for j := 1; j < w; j++ {
			r.backend.SetCell(col+j, row, core.ContinuationCell())
		}
		col += w
	}

	if secX >= len(runes) && secX >= offset && col < right {
		r.backend.SetCell(col, row, core.NewStyledCell(' ', cursorStyle))
	}
}

func (r *Renderer) placeCursor(l Layout, v View) {
	p := v.Primary()
	screenRow := viewport.LineToScreenRow(v.OffsetY(), p.Y, l.TextHeight)
	col := viewport.DisplayColumn(v.LineRunes(p.Y), v.OffsetX(), p.X)

	if screenRow < 0 || col < 0 || l.Gutter+col >= l.Width {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(l.Gutter+col, l.TextTop+screenRow)
}

func (r *Renderer) fillRow(row, width int, style core.Style) {
	r.backend.Fill(core.RectFromSize(row, 0, 1, width), core.NewStyledCell(' ', style))
}

// displayRune maps characters with no glyph of their own to a visible stand-in.
func displayRune(r rune) rune {
	switch {
	case r == '\t':
		return ' '
	case r < 0x20 || r == 0x7f:
		return '?'
	default:
		return r
	}
}
