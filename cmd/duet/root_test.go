package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/dshills/duet/internal/config"
	"github.com/dshills/duet/internal/version"
)

type launch struct {
	called bool
	path   string
	cfg    *config.Config
}

func testRoot(fs afero.Fs, env []string, got *launch) rootOptions {
	return rootOptions{
		fs:      fs,
		environ: func() []string { return env },
		launch: func(_ context.Context, _ afero.Fs, path string, cfg *config.Config) error {
			got.called = true
			got.path = path
			got.cfg = cfg
			return nil
		},
	}
}

func execute(t *testing.T, opts rootOptions, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootOpensFile(t *testing.T) {
	var got launch
	if _, err := execute(t, testRoot(afero.NewMemMapFs(), nil, &got), "notes.txt"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !got.called || got.path != "notes.txt" {
		t.Errorf("expected launch with notes.txt, got %+v", got)
	}
	if got.cfg.Editor().LineNumbers {
		t.Error("line numbers should be off by default")
	}
}

func TestRootNoFile(t *testing.T) {
	var got launch
	if _, err := execute(t, testRoot(afero.NewMemMapFs(), nil, &got)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.path != "" {
		t.Errorf("expected empty path, got %q", got.path)
	}
}

func TestRootTooManyArgs(t *testing.T) {
	var got launch
	if _, err := execute(t, testRoot(afero.NewMemMapFs(), nil, &got), "a", "b"); err == nil {
		t.Error("expected an error for two files")
	}
	if got.called {
		t.Error("launch should not run")
	}
}

func TestRootFlags(t *testing.T) {
	var got launch
	_, err := execute(t, testRoot(afero.NewMemMapFs(), nil, &got),
		"-n", "--log-level", "debug", "--log-file", "/tmp/duet.log", "f.txt")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !got.cfg.Editor().LineNumbers {
		t.Error("-n should enable line numbers")
	}
	if l := got.cfg.Logging(); l.Level != "debug" || l.File != "/tmp/duet.log" {
		t.Errorf("unexpected logging config %+v", l)
	}
}

func TestRootFlagsBeatConfigAndEnv(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/duet.toml", []byte("[editor]\nlineNumbers = false\ntabWidth = 2\n"), 0o644)

	var got launch
	_, err := execute(t, testRoot(fs, []string{"DUET_LINE_NUMBERS=false", "DUET_EXPAND_TABS=true"}, &got),
		"-c", "/duet.toml", "--line-numbers")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	ed := got.cfg.Editor()
	if !ed.LineNumbers || ed.TabWidth != 2 || !ed.ExpandTabs {
		t.Errorf("unexpected editor config %+v", ed)
	}
}

func TestRootMissingConfig(t *testing.T) {
	var got launch
	_, err := execute(t, testRoot(afero.NewMemMapFs(), nil, &got), "-c", "/nope.toml")
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
	if got.called {
		t.Error("launch should not run")
	}
}

func TestRootInvalidLogLevel(t *testing.T) {
	var got launch
	_, err := execute(t, testRoot(afero.NewMemMapFs(), nil, &got), "--log-level", "loud")
	if !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRootVersion(t *testing.T) {
	var got launch
	out, err := execute(t, testRoot(afero.NewMemMapFs(), nil, &got), "--version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, version.Name+" "+version.Version) {
		t.Errorf("unexpected version output %q", out)
	}
	if got.called {
		t.Error("--version should not start the editor")
	}
}
