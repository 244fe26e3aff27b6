// Package viewport provides the vertical and horizontal scroll policy for the
// editor's text area.
package viewport

// Size is the visible text area in screen cells.
// Height is the number of document rows that fit, not the terminal height.
type Size struct {
	Width  int
	Height int
}

// SizeProvider supplies the current text area size.
// The session implements it; the buffer consumes it on every navigation call.
type SizeProvider interface {
	Size() Size
}

// Fixed is a SizeProvider that always reports the same size.
type Fixed Size

// Size implements SizeProvider.
func (f Fixed) Size() Size {
	return Size(f)
}

// Normalize returns s with width and height clamped to a minimum of 1.
func (s Size) Normalize() Size {
	if s.Width < 1 {
		s.Width = 1
	}
	if s.Height < 1 {
		s.Height = 1
	}
	return s
}

// Contain returns the scroll offset that keeps index visible in a window of
// the given extent, moving the window as little as possible.
//
// The result satisfies offset <= index < offset+extent. An extent below 1 is
// treated as 1.
func Contain(offset, index, extent int) int {
	if extent < 1 {
		extent = 1
	}
	if index < 0 {
		index = 0
	}
	if index < offset {
		return index
	}
	if index >= offset+extent {
		return index - extent + 1
	}
	return offset
}

// IsVisible returns true if index lies within [offset, offset+extent).
func IsVisible(offset, index, extent int) bool {
	return index >= offset && index < offset+extent
}

// VisibleRange returns the half-open range of document lines shown when the
// first visible line is offset. end never exceeds lineCount.
func VisibleRange(offset, height, lineCount int) (start, end int) {
	if height < 1 {
		height = 1
	}
	start = offset
	if start > lineCount {
		start = lineCount
	}
	if start < 0 {
		start = 0
	}
	end = start + height
	if end > lineCount {
		end = lineCount
	}
	return start, end
}

// LineToScreenRow converts a document line to a row of the text area.
// Returns -1 if the line is not visible.
func LineToScreenRow(offset, line, height int) int {
	if !IsVisible(offset, line, height) {
		return -1
	}
	return line - offset
}
