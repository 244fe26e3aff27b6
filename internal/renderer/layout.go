package renderer

import (
	"strconv"

	"github.com/dshills/duet/internal/renderer/viewport"
)

// Fixed rows.
const (
	titleRows  = 1
	statusRows = 1
	helpRows   = 1

	minGutterDigits = 3
)

// Layout describes where each band of the screen sits.
type Layout struct {
	Width  int
	Height int

	TitleRow   int
	TextTop    int
	TextHeight int
	StatusRow  int
	HelpRow    int // -1 when the help bar is hidden

	Gutter int // columns used by line numbers, 0 when hidden
}

// ComputeLayout lays out a width x height terminal showing a document of
// lineCount lines.
func ComputeLayout(width, height, lineCount int, opts Options) Layout {
	width = max(width, 1)
	height = max(height, 1)

	l := Layout{
		Width:    width,
		Height:   height,
		TitleRow: 0,
		TextTop:  titleRows,
		HelpRow:  -1,
	}

	chrome := titleRows + statusRows
	if opts.ShowHelpBar {
		chrome += helpRows
		l.HelpRow = height - 1
		l.StatusRow = height - 2
	} else {
		l.StatusRow = height - 1
	}
	l.TextHeight = max(height-chrome, 1)

	if opts.ShowLineNumbers {
		l.Gutter = GutterWidth(lineCount)
	}
	if l.Gutter >= width {
		l.Gutter = 0
	}

	return l
}

// TextSize returns the size of the text area, excluding the gutter.
func (l Layout) TextSize() viewport.Size {
	return viewport.Size{
		Width:  l.Width - l.Gutter,
		Height: l.TextHeight,
	}.Normalize()
}

// GutterWidth returns the columns needed to number lineCount lines, including
// the separating space. Numbers are right aligned to at least three digits.
func GutterWidth(lineCount int) int {
	digits := len(strconv.Itoa(max(lineCount, 1)))
	return max(digits, minGutterDigits) + 1
}
