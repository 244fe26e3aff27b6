package buffer

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/dshills/duet/internal/engine/cursor"
)

func TestLoad(t *testing.T) {
	mem := afero.NewMemMapFs()
	if err := afero.WriteFile(mem, "/doc.txt", []byte("first\r\nsecond\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(mem, "/doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"first", "second"}, b.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if b.Path() != "/doc.txt" {
		t.Errorf("expected path /doc.txt, got %q", b.Path())
	}
	if b.Dirty() {
		t.Error("loaded buffer should not be dirty")
	}
	if !b.Primary().IsOrigin() {
		t.Errorf("expected cursor at origin, got %s", b.Primary())
	}
}

func TestLoadMissingFile(t *testing.T) {
	b, err := Load(afero.NewMemMapFs(), "/nope.txt")
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if b.LineCount() != 1 || b.Line(0) != "" {
		t.Errorf("expected a single empty line, got %q", b.Lines())
	}
	if b.Path() != "/nope.txt" {
		t.Errorf("path should stay associated, got %q", b.Path())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	_ = afero.WriteFile(mem, "/empty", nil, 0o644)

	b, err := Load(mem, "/empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestLoadDirectory(t *testing.T) {
	mem := afero.NewMemMapFs()
	_ = mem.MkdirAll("/dir", 0o755)

	b, err := Load(mem, "/dir")
	if !errors.Is(err, ErrIsDirectory) {
		t.Fatalf("expected ErrIsDirectory, got %v", err)
	}

	var fe *FileError
	if !errors.As(err, &fe) || fe.Op != "load" {
		t.Errorf("expected load FileError, got %v", err)
	}
	if b == nil || b.LineCount() != 1 || b.Path() != "/dir" {
		t.Error("expected a usable empty buffer bound to the path")
	}
}

func TestLoadNoPath(t *testing.T) {
	b, err := Load(afero.NewMemMapFs(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Path() != "" {
		t.Errorf("expected no path, got %q", b.Path())
	}
}

func TestSaveNoPath(t *testing.T) {
	b := FromText("abc", WithFs(afero.NewMemMapFs()))
	b.InsertChar('x')

	res, err := b.Save()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != SaveNoPath {
		t.Errorf("expected %s, got %s", SaveNoPath, res)
	}
	if !b.Dirty() {
		t.Error("dirty flag should be kept when nothing was written")
	}
}

func TestSaveWrites(t *testing.T) {
	mem := afero.NewMemMapFs()
	b := FromText("one\ntwo", WithFs(mem), WithPath("/out.txt"))
	b.SetPrimary(cursor.At(3, 1))
	b.InsertNewline()

	res, err := b.Save()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != SaveWritten {
		t.Errorf("expected %s, got %s", SaveWritten, res)
	}
	if b.Dirty() {
		t.Error("dirty flag should be cleared after save")
	}

	data, err := afero.ReadFile(mem, "/out.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("expected %q, got %q", "one\ntwo\n", string(data))
	}
}

func TestSaveOverwrites(t *testing.T) {
	mem := afero.NewMemMapFs()
	_ = afero.WriteFile(mem, "/f", []byte("a much longer original body"), 0o644)

	b, _ := Load(mem, "/f")
	b.SetPrimary(cursor.At(0, 0))
	for range b.LineLen(0) {
		b.MoveCursor(Right, nil, false)
	}
	for b.LineLen(0) > 0 {
		b.DeleteChar()
	}
	b.InsertChar('z')

	if _, err := b.Save(); err != nil {
		t.Fatal(err)
	}
	data, _ := afero.ReadFile(mem, "/f")
	if string(data) != "z" {
		t.Errorf("expected %q, got %q", "z", string(data))
	}
}

func TestSaveFailure(t *testing.T) {
	ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
	b := FromText("data", WithFs(ro), WithPath("/x.txt"))
	b.InsertChar('!')

	res, err := b.Save()
	if err == nil {
		t.Fatal("expected an error writing to a read-only file system")
	}
	if res != SaveFailed {
		t.Errorf("expected %s, got %s", SaveFailed, res)
	}

	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FileError, got %T", err)
	}
	if fe.Op != "save" || fe.Path != "/x.txt" {
		t.Errorf("unexpected error fields: %+v", fe)
	}
	if !b.Dirty() {
		t.Error("failed save should leave the buffer dirty")
	}
	if b.Line(0) != "!data" {
		t.Errorf("content should be unchanged, got %q", b.Line(0))
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	mem := afero.NewMemMapFs()
	want := []string{"alpha", "", "βeta 你好", "  indented"}

	b := New(WithFs(mem), WithPath("/rt.txt"))
	for i, line := range want {
		if i > 0 {
			b.InsertNewline()
		}
		b.InsertString(line)
	}
	if _, err := b.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(mem, "/rt.txt")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, loaded.Lines()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileErrorUnwrap(t *testing.T) {
	err := &FileError{Op: "save", Path: "/p", Err: fs.ErrPermission}

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected FileError to unwrap to the cause")
	}
	if err.Error() != "save /p: permission denied" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSaveResultString(t *testing.T) {
	if SaveFailed.String() != "failed" || SaveNoPath.String() != "no-path" || SaveWritten.String() != "written" {
		t.Error("unexpected SaveResult names")
	}
}
