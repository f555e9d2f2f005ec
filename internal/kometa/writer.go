package kometa

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Writer persists rendered files. Each file is written to a temporary name
// and renamed so Kometa never reads a half-written document.
type Writer struct {
	fs    afero.Fs
	chown bool
	uid   int
	gid   int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithOwnership chowns every written file to uid:gid.
func WithOwnership(uid, gid int) WriterOption {
	return func(w *Writer) {
		w.chown = true
		w.uid = uid
		w.gid = gid
	}
}

// NewWriter returns a Writer over fsys. A nil fsys means the OS file system.
func NewWriter(fsys afero.Fs, opts ...WriterOption) *Writer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	w := &Writer{fs: fsys}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Fs exposes the underlying file system.
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// WriteFile writes data to path, creating parent directories.
func (w *Writer) WriteFile(path string, data []byte) error {
	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(w.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	if w.chown {
		if err := w.fs.Chown(path, w.uid, w.gid); err != nil {
			return fmt.Errorf("chown %s to %d:%d: %w", path, w.uid, w.gid, err)
		}
	}
	return nil
}
