package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/duet/internal/engine/cursor"
)

func TestNew(t *testing.T) {
	b := New()

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.Line(0) != "" {
		t.Errorf("expected empty line, got %q", b.Line(0))
	}
	if !b.Primary().IsOrigin() {
		t.Errorf("expected cursor at origin, got %s", b.Primary())
	}
	if b.HasSecondary() {
		t.Error("new buffer should have no secondary cursor")
	}
	if b.Dirty() {
		t.Error("new buffer should not be dirty")
	}
	if b.Path() != "" || b.Name() != "" {
		t.Errorf("expected no path, got %q", b.Path())
	}
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", []string{""}},
		{"single line", "hello", []string{"hello"}},
		{"two lines", "hello\nworld", []string{"hello", "world"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank middle", "a\n\nb", []string{"a", "", "b"}},
		{"only newline", "\n", []string{""}},
		{"two newlines", "\n\n", []string{"", ""}},
		{"multibyte", "你好\nwörld", []string{"你好", "wörld"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromText(tt.text)
			if diff := cmp.Diff(tt.expected, b.Lines()); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			if b.Dirty() {
				t.Error("FromText should not mark the buffer dirty")
			}
		})
	}
}

func TestBufferAccessors(t *testing.T) {
	b := FromText("abc\n你好")

	if b.LineLen(1) != 2 {
		t.Errorf("expected 2 characters, got %d", b.LineLen(1))
	}
	if b.LineLen(7) != 0 {
		t.Errorf("expected 0 for out of range line, got %d", b.LineLen(7))
	}
	if b.Line(-1) != "" {
		t.Errorf("expected empty string for negative line, got %q", b.Line(-1))
	}
	if got := string(b.LineRunes(1)); got != "你好" {
		t.Errorf("expected %q, got %q", "你好", got)
	}

	runes := b.LineRunes(0)
	runes[0] = 'z'
	if b.Line(0) != "abc" {
		t.Error("LineRunes should return a copy")
	}

	b.SetPrimary(cursor.At(1, 1))
	if b.CurrentLine() != "你好" {
		t.Errorf("expected current line %q, got %q", "你好", b.CurrentLine())
	}
	if b.Text() != "abc\n你好" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestSetPath(t *testing.T) {
	b := FromText("x")
	b.SetPath("/tmp/dir/notes.txt")

	if b.Path() != "/tmp/dir/notes.txt" {
		t.Errorf("unexpected path %q", b.Path())
	}
	if b.Name() != "notes.txt" {
		t.Errorf("expected name notes.txt, got %q", b.Name())
	}
	if b.Dirty() {
		t.Error("SetPath should not change the dirty flag")
	}
}

func TestSetPrimaryClamps(t *testing.T) {
	b := FromText("abc\nde")

	tests := []struct {
		in       cursor.Position
		expected cursor.Position
	}{
		{cursor.At(2, 0), cursor.At(2, 0)},
		{cursor.At(10, 0), cursor.At(3, 0)},
		{cursor.At(10, 9), cursor.At(2, 1)},
		{cursor.At(-4, -1), cursor.At(0, 0)},
	}

	for _, tt := range tests {
		b.SetPrimary(tt.in)
		if b.Primary() != tt.expected {
			t.Errorf("SetPrimary(%s): expected %s, got %s", tt.in, tt.expected, b.Primary())
		}
	}
}

func TestToggleSecondaryCursor(t *testing.T) {
	b := FromText("hello")
	b.SetPrimary(cursor.At(3, 0))

	b.ToggleSecondaryCursor()
	sec, ok := b.Secondary()
	if !ok {
		t.Fatal("expected a secondary cursor")
	}
	if sec != cursor.At(3, 0) {
		t.Errorf("expected secondary at primary (3,0), got %s", sec)
	}

	b.ToggleSecondaryCursor()
	if b.HasSecondary() {
		t.Error("expected secondary cursor to be removed")
	}
	if b.Dirty() {
		t.Error("toggling cursors should not dirty the buffer")
	}
}

func TestSetSecondary(t *testing.T) {
	b := FromText("ab\ncd")
	b.SetSecondary(cursor.At(9, 1))

	sec, ok := b.Secondary()
	if !ok || sec != cursor.At(2, 1) {
		t.Errorf("expected clamped secondary (2,1), got %s (present=%v)", sec, ok)
	}
}

func TestSplitLinesNeverEmpty(t *testing.T) {
	for _, text := range []string{"", "\n", "\r\n", "x"} {
		if got := len(splitLines(text)); got < 1 {
			t.Errorf("splitLines(%q) returned %d lines", text, got)
		}
	}
}
