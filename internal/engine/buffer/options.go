package buffer

import "github.com/spf13/afero"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithFs sets the file system used by Load and Save.
// The default is the operating system's file system.
func WithFs(fs afero.Fs) Option {
	return func(b *Buffer) {
		if fs != nil {
			b.fs = fs
		}
	}
}

// WithPath associates the buffer with a file path without reading it.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}
