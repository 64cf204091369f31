package storage

import (
	"archive/zip"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArchiveEmptyDir(t *testing.T) {
	t.Parallel()

	d := newTestDirs(t)
	_, err := d.CreateArchive()
	require.ErrorIs(t, err, ErrNoArtifacts)

	_, statErr := os.Stat(d.ArchivePath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateArchiveBundlesAllArtifacts(t *testing.T) {
	t.Parallel()

	d := newTestDirs(t)
	require.NoError(t, os.WriteFile(d.ArtifactPath("1_a.com.png"), []byte("aaa"), 0o644))
	require.NoError(t, os.WriteFile(d.ArtifactPath("2_b.com.png"), []byte("bbb"), 0o644))

	path, err := d.CreateArchive()
	require.NoError(t, err)
	assert.Equal(t, d.ArchivePath(), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"1_a.com.png", "2_b.com.png"}, names)
}

func TestCreateArchiveIsIdempotentPerRun(t *testing.T) {
	t.Parallel()

	d := newTestDirs(t)
	require.NoError(t, os.WriteFile(d.ArtifactPath("1_a.com.png"), []byte("aaa"), 0o644))

	first, err := d.CreateArchive()
	require.NoError(t, err)

	// A file appearing after the bundle is cut does not regenerate it.
	require.NoError(t, os.WriteFile(d.ArtifactPath("2_late.png"), []byte("zzz"), 0o644))
	second, err := d.CreateArchive()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	zr, err := zip.OpenReader(second)
	require.NoError(t, err)
	defer zr.Close()
	assert.Len(t, zr.File, 1)
}
