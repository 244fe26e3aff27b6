package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestTOMLLoader_Load(t *testing.T) {
	memfs := afero.NewMemMapFs()
	_ = afero.WriteFile(memfs, "/config.toml", []byte(`
[editor]
tabWidth = 4
expandTabs = true

[logging]
level = "debug"
`), 0o644)

	config, err := NewTOMLLoader(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	editor, ok := config["editor"].(map[string]any)
	if !ok {
		t.Fatal("expected editor to be a map")
	}
	if editor["tabWidth"] != int64(4) {
		t.Errorf("tabWidth = %v (%T), want 4", editor["tabWidth"], editor["tabWidth"])
	}
	if editor["expandTabs"] != true {
		t.Errorf("expandTabs = %v, want true", editor["expandTabs"])
	}
	if v, _ := GetByPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v, want debug", v)
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	config, err := NewTOMLLoader(afero.NewMemMapFs(), "/nope.toml").Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := afero.NewMemMapFs()
	_ = afero.WriteFile(memfs, "/bad.toml", []byte("[editor\ntabWidth = 4\n"), 0o644)

	_, err := NewTOMLLoader(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("unexpected path %q", pe.Path)
	}
	if pe.Line < 1 {
		t.Errorf("expected a line number, got %d", pe.Line)
	}
	if !strings.Contains(err.Error(), "/bad.toml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	l := NewTOMLLoader(afero.NewMemMapFs(), "")
	config, err := l.LoadFromReader(strings.NewReader("[ui]\nshowHelpBar = false\n"))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := GetByPath(config, "ui.showHelpBar"); !ok || v != false {
		t.Errorf("ui.showHelpBar = %v, want false", v)
	}
}

func TestForPath(t *testing.T) {
	memfs := afero.NewMemMapFs()

	if _, ok := ForPath(memfs, "/a/config.toml").(*TOMLLoader); !ok {
		t.Error("expected TOML loader for .toml")
	}
	if _, ok := ForPath(memfs, "/a/config.YAML").(*YAMLLoader); !ok {
		t.Error("expected YAML loader for .YAML")
	}
	if _, ok := ForPath(memfs, "/a/config.yml").(*YAMLLoader); !ok {
		t.Error("expected YAML loader for .yml")
	}
	if _, ok := ForPath(nil, "/a/config").(*TOMLLoader); !ok {
		t.Error("expected TOML loader by default")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tabWidth": 4, "expandTabs": false},
		"ui":     map[string]any{"showHelpBar": true},
	}
	src := map[string]any{
		"editor":  map[string]any{"tabWidth": 2},
		"logging": map[string]any{"level": "warn"},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"editor":  map[string]any{"tabWidth": 2, "expandTabs": false},
		"ui":      map[string]any{"showHelpBar": true},
		"logging": map[string]any{"level": "warn"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{"editor": map[string]any{"tabWidth": 4}}
	dst := Clone(src)

	dst["editor"].(map[string]any)["tabWidth"] = 8
	if src["editor"].(map[string]any)["tabWidth"] != 4 {
		t.Error("Clone should not share nested maps")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
