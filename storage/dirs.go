package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// BatchDirs is the explicit filesystem layout for one run: a directory of raw
// screenshot artifacts and a directory for the derived archive. Passing it as
// a value instead of touching ambient globals lets tests run isolated batches
// side by side.
type BatchDirs struct {
	Screenshots string
	Archive     string
}

// NewBatchDirs builds the layout and creates both directories.
func NewBatchDirs(screenshotDir, archiveDir string) (BatchDirs, error) {
	d := BatchDirs{Screenshots: screenshotDir, Archive: archiveDir}
	if err := d.ensure(); err != nil {
		return BatchDirs{}, err
	}
	return d, nil
}

func (d BatchDirs) ensure() error {
	for _, dir := range []string{d.Screenshots, d.Archive} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %q: %w", dir, err)
		}
	}
	return nil
}

// Flush clears both directories and recreates them empty. No artifacts from a
// previous run survive into a new aggregation. Idempotent.
func (d BatchDirs) Flush() error {
	for _, dir := range []string{d.Screenshots, d.Archive} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clearing directory %q: %w", dir, err)
		}
	}
	return d.ensure()
}

// ArtifactPath returns the path of a named artifact inside the screenshot
// directory.
func (d BatchDirs) ArtifactPath(name string) string {
	return filepath.Join(d.Screenshots, name)
}

// Artifacts lists the artifact files currently on disk, sorted by name.
func (d BatchDirs) Artifacts() ([]string, error) {
	entries, err := os.ReadDir(d.Screenshots)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts in %q: %w", d.Screenshots, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
