package storage

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ArchiveName is the fixed name of the downloadable bundle.
const ArchiveName = "screenshots.zip"

// ErrNoArtifacts is returned when archive creation is requested for a run
// that produced no successful captures. Callers surface it as a warning, not
// a batch failure.
var ErrNoArtifacts = errors.New("storage: no artifacts to archive")

// ArchiveError indicates packaging the artifact directory failed.
type ArchiveError struct {
	Err error
}

func (e ArchiveError) Error() string { return fmt.Sprintf("creating archive: %v", e.Err) }
func (e ArchiveError) Unwrap() error { return e.Err }

// ArchivePath returns where the bundle for this run lives.
func (d BatchDirs) ArchivePath() string {
	return filepath.Join(d.Archive, ArchiveName)
}

// CreateArchive bundles every artifact into a single zip and returns its
// path. Idempotent per run: an archive that already exists is reused for
// repeated downloads. Returns ErrNoArtifacts when the artifact directory is
// empty.
func (d BatchDirs) CreateArchive() (string, error) {
	out := d.ArchivePath()
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}

	names, err := d.Artifacts()
	if err != nil {
		return "", ArchiveError{Err: err}
	}
	if len(names) == 0 {
		return "", ErrNoArtifacts
	}

	f, err := os.Create(out)
	if err != nil {
		return "", ArchiveError{Err: err}
	}
	zw := zip.NewWriter(f)

	for _, name := range names {
		if err := addToArchive(zw, d.ArtifactPath(name), name); err != nil {
			_ = zw.Close()
			_ = f.Close()
			_ = os.Remove(out)
			return "", ArchiveError{Err: err}
		}
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return "", ArchiveError{Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(out)
		return "", ArchiveError{Err: err}
	}
	return out, nil
}

func addToArchive(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening artifact %q: %w", path, err)
	}
	defer src.Close()

	// Store instead of deflate: PNGs are already compressed.
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return fmt.Errorf("adding %q to archive: %w", name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copying %q into archive: %w", name, err)
	}
	return nil
}
