// Package buffer provides the line-oriented text buffer at the heart of the
// editor: the document, its two cursors, the scroll offsets and the
// association with a file on disk.
//
// The buffer package provides:
//
//   - Character-precise editing of multi-byte text (lines are []rune)
//   - A primary cursor and an optional, independently movable secondary cursor
//   - Re-anchoring of the secondary cursor when the primary edits around it
//   - Directional navigation with line wrapping and scroll containment
//   - Whole-file load and save through an afero.Fs
//
// Basic usage:
//
//	buf := buffer.FromText("Hello\nWorld")
//
//	buf.InsertChar('!')                // "!Hello"
//	buf.InsertNewline()                // "!", "Hello", "World"
//	buf.MoveCursor(buffer.Down, viewport.Fixed{Width: 80, Height: 20}, false)
//
//	// Mirror typing at a second location
//	buf.ToggleSecondaryCursor()
//	buf.MoveCursor(buffer.Right, size, true)
//	buf.InsertCharAtBothCursors('x')
//
// Positions:
//
// Cursor positions are cursor.Position values: X is a character index counted
// in Unicode scalar values and Y a line index. Because every line is stored
// as a rune slice, a character index is also the slice index and there is no
// byte-offset translation to get wrong. Out-of-range positions are clamped,
// never reported as errors.
//
// Thread Safety:
//
// Buffer is not safe for concurrent use. The editing session owns the buffer
// and calls into it from a single goroutine, one call per input event.
package buffer
