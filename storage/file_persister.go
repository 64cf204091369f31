// Package storage owns the on-disk artifact store for a batch run: the
// screenshot directory, the derived archive, and how bytes get to disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FilePersister will persist files. It abstracts away the where and how of
// writing artifact bytes to their destination.
type FilePersister interface {
	Persist(ctx context.Context, path string, data io.Reader) error
}

// LocalFilePersister writes artifacts to the local disk. Writes go through a
// temp file and a rename so a concurrent archive pass never observes a
// half-written image.
type LocalFilePersister struct{}

// Persist writes the contents of data to path.
func (l *LocalFilePersister) Persist(_ context.Context, path string, data io.Reader) (err error) {
	cp := filepath.Clean(path)

	dir := filepath.Dir(cp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(cp)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp artifact file in %q: %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, data); err != nil {
		return fmt.Errorf("writing artifact %q: %w", cp, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing artifact %q: %w", cp, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on artifact %q: %w", cp, err)
	}
	if err = os.Rename(tmp.Name(), cp); err != nil {
		return fmt.Errorf("renaming artifact into place %q: %w", cp, err)
	}
	return nil
}
