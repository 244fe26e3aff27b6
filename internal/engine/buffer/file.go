package buffer

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

// SaveResult is the outcome of a Save call.
type SaveResult uint8

const (
	// SaveFailed means the write failed; the error says why.
	SaveFailed SaveResult = iota
	// SaveNoPath means the buffer has no associated path. Nothing was written.
	SaveNoPath
	// SaveWritten means the document was written and the dirty flag cleared.
	SaveWritten
)

// String returns a short name for the result.
func (r SaveResult) String() string {
	switch r {
	case SaveNoPath:
		return "no-path"
	case SaveWritten:
		return "written"
	default:
		return "failed"
	}
}

// Load reads path from fsys into a new buffer associated with path.
//
// Load always returns a usable buffer. A missing file yields an empty
// document and a nil error. Any other read failure also yields an empty
// document, and the error is returned so the caller can report it.
func Load(fsys afero.Fs, path string, opts ...Option) (*Buffer, error) {
	if fsys != nil {
		opts = append([]Option{WithFs(fsys)}, opts...)
	}
	b := New(append(opts, WithPath(path))...)

	if path == "" {
		return b, nil
	}

	info, err := b.fs.Stat(path)
	if err == nil && info.IsDir() {
		return b, &FileError{Op: "load", Path: path, Err: ErrIsDirectory}
	}

	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return b, &FileError{Op: "load", Path: path, Err: err}
	}

	b.lines = splitLines(string(data))
	return b, nil
}

// Save writes the document to the associated path, replacing the file's
// contents. Lines are joined by "\n" with no trailing newline.
//
// A buffer with no path returns SaveNoPath and a nil error. A failed write
// returns SaveFailed and a *FileError, leaving the buffer unchanged.
func (b *Buffer) Save() (SaveResult, error) {
	if b.path == "" {
		return SaveNoPath, nil
	}

	if err := afero.WriteFile(b.fs, b.path, []byte(b.Text()), 0o644); err != nil {
		return SaveFailed, &FileError{Op: "save", Path: b.path, Err: err}
	}

	b.dirty = false
	return SaveWritten, nil
}
