package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirs(t *testing.T) BatchDirs {
	t.Helper()
	root := t.TempDir()
	d, err := NewBatchDirs(filepath.Join(root, "screenshots"), filepath.Join(root, "zip_files"))
	require.NoError(t, err)
	return d
}

func TestNewBatchDirsCreatesBoth(t *testing.T) {
	t.Parallel()

	d := newTestDirs(t)
	for _, dir := range []string{d.Screenshots, d.Archive} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestFlushClearsStaleFiles(t *testing.T) {
	t.Parallel()

	d := newTestDirs(t)
	require.NoError(t, os.WriteFile(d.ArtifactPath("1_old.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(d.ArchivePath(), []byte("x"), 0o644))

	require.NoError(t, d.Flush())

	names, err := d.Artifacts()
	require.NoError(t, err)
	assert.Empty(t, names)
	_, err = os.Stat(d.ArchivePath())
	assert.True(t, os.IsNotExist(err))
}

func TestFlushIsIdempotent(t *testing.T) {
	t.Parallel()

	d := newTestDirs(t)
	require.NoError(t, os.WriteFile(d.ArtifactPath("1_old.png"), []byte("x"), 0o644))

	require.NoError(t, d.Flush())
	require.NoError(t, d.Flush())

	names, err := d.Artifacts()
	require.NoError(t, err)
	assert.Empty(t, names)

	info, err := os.Stat(d.Archive)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestArtifactsListsOnlyRegularFiles(t *testing.T) {
	t.Parallel()

	d := newTestDirs(t)
	require.NoError(t, os.WriteFile(d.ArtifactPath("2_b.png"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(d.ArtifactPath("1_a.png"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(d.ArtifactPath("subdir"), 0o755))

	names, err := d.Artifacts()
	require.NoError(t, err)
	assert.Equal(t, []string{"1_a.png", "2_b.png"}, names)
}
