package cursor

// AfterInsert updates p after n characters were inserted at at.
//
// A position on the same line at or after the insertion point moves right by
// n so it stays in front of the same following text. Positions on other lines
// are unchanged.
func AfterInsert(p, at Position, n int) Position {
	if p.Y == at.Y && p.X >= at.X {
		p.X += n
	}
	return p
}

// AfterDelete updates p after the character at `at` (the range
// [at.X, at.X+1) on line at.Y) was removed.
func AfterDelete(p, at Position) Position {
	if p.Y == at.Y && p.X > at.X {
		p.X--
	}
	return p
}

// AfterSplit updates p after the line at.Y was broken in two at at.X.
//
// Positions at or after the split point follow their text: on the split line
// they move to the new line, re-based to its start; on later lines they move
// down by one.
func AfterSplit(p, at Position) Position {
	switch {
	case p.Y == at.Y && p.X >= at.X:
		return Position{X: p.X - at.X, Y: p.Y + 1}
	case p.Y > at.Y:
		p.Y++
	}
	return p
}

// AfterJoin updates p after line `line` was appended to line `line-1`,
// whose length before the join was prevLen.
func AfterJoin(p Position, line, prevLen int) Position {
	switch {
	case p.Y == line:
		return Position{X: prevLen + p.X, Y: line - 1}
	case p.Y > line:
		p.Y--
	}
	return p
}
