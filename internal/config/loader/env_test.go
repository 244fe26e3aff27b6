package loader

import "testing"

func envLoaderWith(vars ...string) *EnvLoader {
	l := NewEnvLoader("DUET_")
	l.environ = func() []string { return vars }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := envLoaderWith(
		"DUET_LOG_LEVEL=debug",
		"DUET_TAB_WIDTH=2",
		"DUET_LINE_NUMBERS=yes",
		"HOME=/root",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := GetByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
	if val, ok := GetByPath(config, "editor.tabWidth"); !ok || val != int64(2) {
		t.Errorf("editor.tabWidth = %v (%T), want 2", val, val)
	}
	if val, ok := GetByPath(config, "editor.lineNumbers"); !ok || val != true {
		t.Errorf("editor.lineNumbers = %v, want true", val)
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	l := envLoaderWith("DUET_UI_SHOW_HELP_BAR=off", "DUET_BOGUS=1")

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := GetByPath(config, "ui.showHelpBar"); !ok || val != false {
		t.Errorf("ui.showHelpBar = %v, want false", val)
	}
	if _, ok := config["bogus"]; ok {
		t.Error("variables without a section should be ignored")
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := envLoaderWith("DUET_WATCH=false")
	l.AddMapping("DUET_WATCH", "editor.watchFile")

	config, _ := l.Load()
	if val, ok := GetByPath(config, "editor.watchFile"); !ok || val != false {
		t.Errorf("editor.watchFile = %v, want false", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("DUET_")

	tests := []struct {
		env      string
		expected string
	}{
		{"DUET_EDITOR_TAB_WIDTH", "editor.tabWidth"},
		{"DUET_UI_SHOW_HELP_BAR", "ui.showHelpBar"},
		{"DUET_LOGGING_LEVEL", "logging.level"},
		{"DUET_ALONE", ""},
	}

	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in       string
		expected any
	}{
		{"", ""},
		{"true", true},
		{"OFF", false},
		{"42", int64(42)},
		{"1", int64(1)},
		{"info", "info"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.expected)
		}
	}
}

func TestSetAndGetByPath(t *testing.T) {
	m := map[string]any{"editor": "scalar"}
	SetByPath(m, "editor.tabWidth", 3)

	if v, ok := GetByPath(m, "editor.tabWidth"); !ok || v != 3 {
		t.Errorf("expected 3, got %v", v)
	}
	if _, ok := GetByPath(m, "editor.missing"); ok {
		t.Error("expected missing path")
	}
}
