package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer file operations.
var (
	// ErrIsDirectory indicates the associated path names a directory.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileError describes a failed load or save of the associated file.
type FileError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
