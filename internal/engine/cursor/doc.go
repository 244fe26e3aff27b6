// Package cursor provides character-indexed positions and the rules that keep
// a position attached to the same text while lines are edited.
//
// Positions:
//
// A Position is an (X, Y) pair where Y is a 0-indexed line and X is a
// 0-indexed character offset within that line, counted in Unicode scalar
// values. X may equal the line length, which denotes the point after the last
// character.
//
// Transformation:
//
// The buffer keeps a second cursor alive while the first one edits. After
// every edit the second cursor is passed through one of the transform
// functions so it keeps pointing at the text it pointed at before:
//
//	sec = cursor.AfterInsert(sec, at, 1)    // rune inserted at `at`
//	sec = cursor.AfterDelete(sec, at)       // rune at `at` removed
//	sec = cursor.AfterSplit(sec, at)        // line broken at `at`
//	sec = cursor.AfterJoin(sec, y, prevLen) // line y appended to line y-1
//
// Position is an immutable value type and safe for concurrent use.
package cursor
