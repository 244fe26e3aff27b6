package statusline

import (
	"testing"

	"github.com/rivo/uniseg"

	"github.com/dshills/duet/internal/renderer/backend"
	"github.com/dshills/duet/internal/renderer/core"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*StatusLine)
		expected string
	}{
		{
			name:     "unnamed",
			setup:    func(s *StatusLine) { s.SetTotalLines(1) },
			expected: " [No Name] - 1 line",
		},
		{
			name: "modified file",
			setup: func(s *StatusLine) {
				s.SetFilename("notes.txt")
				s.SetTotalLines(12)
				s.SetModified(true)
			},
			expected: " notes.txt - 12 lines [modified]",
		},
		{
			name: "two cursors",
			setup: func(s *StatusLine) {
				s.SetFilename("a.go")
				s.SetTotalLines(3)
				s.SetCursors(2)
			},
			expected: " a.go - 3 lines [2 cursors]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			tt.setup(s)
			if got := s.Text(80); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMessageRightAligned(t *testing.T) {
	s := New()
	s.SetFilename("f")
	s.SetTotalLines(2)
	s.SetMessage("Saved", MessageInfo)

	got := s.Text(30)
	if uniseg.StringWidth(got) != 30 {
		t.Errorf("expected width 30, got %d (%q)", uniseg.StringWidth(got), got)
	}
	if got[len(got)-5:] != "Saved" {
		t.Errorf("expected message at the right edge, got %q", got)
	}

	msg, typ := s.Message()
	if msg != "Saved" || typ != MessageInfo {
		t.Errorf("unexpected message state %q %v", msg, typ)
	}

	s.ClearMessage()
	if msg, _ := s.Message(); msg != "" {
		t.Errorf("expected cleared message, got %q", msg)
	}
}

func TestMessageWinsWhenNarrow(t *testing.T) {
	s := New()
	s.SetFilename("a-rather-long-file-name.txt")
	s.SetTotalLines(100)
	s.SetMessage("File changed on disk", MessageInfo)

	if got := s.Text(22); got != "File changed on disk" {
		t.Errorf("expected message only, got %q", got)
	}
}

func TestPromptReplacesStatus(t *testing.T) {
	s := New()
	s.SetMessage("ignored", MessageInfo)
	s.SetPrompt("File Name to Write:", "out.txt")

	if !s.PromptActive() {
		t.Fatal("expected prompt to be active")
	}
	if got := s.Text(80); got != "File Name to Write: out.txt" {
		t.Errorf("unexpected prompt text %q", got)
	}

	s.ClearPrompt()
	if s.PromptActive() {
		t.Error("expected prompt to be cleared")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"你好世界", 5, "你好"},
		{"éé", 1, "é"},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.expected {
			t.Errorf("Truncate(%q, %d): expected %q, got %q", tt.in, tt.width, tt.expected, got)
		}
	}
}

func TestRender(t *testing.T) {
	b := backend.NewNullBackend(40, 3)
	s := New()
	s.SetFilename("x.txt")
	s.SetTotalLines(4)

	if col := s.Render(b, 1, 40); col != -1 {
		t.Errorf("expected -1 without prompt, got %d", col)
	}
	if got := b.Row(1); got != " x.txt - 4 lines" {
		t.Errorf("unexpected row %q", got)
	}

	s.SetPrompt("Name:", "ab")
	if col := s.Render(b, 1, 40); col != 8 {
		t.Errorf("expected prompt cursor at column 8, got %d", col)
	}
}

func TestDrawStringWide(t *testing.T) {
	b := backend.NewNullBackend(10, 1)

	end := DrawString(b, 0, 0, 5, "世界世", core.DefaultStyle())
	if end != 4 {
		t.Errorf("expected to stop at column 4, got %d", end)
	}
	if got := b.Row(0); got != "世界" {
		t.Errorf("expected %q, got %q", "世界", got)
	}
	if !b.GetCell(1, 0).IsContinuation() {
		t.Error("expected continuation cell after wide rune")
	}
}
