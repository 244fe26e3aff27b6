package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "duet"})
	logger.now = fixedClock

	logger.WithField("b", 2).WithField("a", "x").Info("opened %s", "notes.txt")

	expected := "2024-03-01T12:30:00.000 [INFO] duet: opened notes.txt a=x b=2\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	if buf.Len() != 0 {
		t.Errorf("expected nothing below warn, got %q", buf.String())
	}

	logger.Warn("warn")
	logger.Error("error")
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", buf.String())
	}

	logger.SetLevel(LogLevelDebug)
	if !logger.Enabled(LogLevelDebug) {
		t.Error("debug should be enabled after SetLevel")
	}
}

func TestLogger_ChildSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	child := parent.WithComponent("app")

	child.Info("from child")
	parent.Info("from parent")

	out := buf.String()
	if !strings.Contains(out, "from child component=app") {
		t.Errorf("child line missing component: %q", out)
	}
	if strings.Contains(strings.SplitN(out, "\n", 2)[1], "component=") {
		t.Errorf("parent should not carry the child's field: %q", out)
	}
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()
	if logger.Enabled(LogLevelError) {
		t.Error("null logger should be disabled")
	}
	logger.Error("dropped")
}

func TestOpenLogFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	logger, closer, err := OpenLogFile(fs, "/duet.log", LogLevelInfo)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	logger.Info("hello")
	logger.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := afero.ReadFile(fs, "/duet.log")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, "[INFO] duet: hello") {
		t.Errorf("unexpected log line %q", line)
	}
	if strings.Contains(line, "hidden") {
		t.Error("debug line should be filtered")
	}

	_, id, ok := strings.Cut(line, "session=")
	if !ok {
		t.Fatalf("expected session field in %q", line)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session id %q is not a uuid: %v", id, err)
	}
}

func TestOpenLogFileEmptyPath(t *testing.T) {
	logger, closer, err := OpenLogFile(afero.NewMemMapFs(), "", LogLevelDebug)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	if logger.Enabled(LogLevelError) {
		t.Error("expected a disabled logger")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpenLogFileFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	if _, _, err := OpenLogFile(fs, "/duet.log", LogLevelInfo); err == nil {
		t.Error("expected error opening a log on a read-only fs")
	}
}
