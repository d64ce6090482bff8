package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	root := t.TempDir()
	fm := NewFileManager(
		filepath.Join(root, "drafts"),
		filepath.Join(root, "output"),
		filepath.Join(root, "archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func TestEnsureDirectories(t *testing.T) {
	fm := newTestManager(t)
	for _, dir := range []string{fm.DraftsDir, fm.OutputDir, fm.ArchiveDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent.
	require.NoError(t, fm.EnsureDirectories())
}

func TestDiscoverDrafts(t *testing.T) {
	fm := newTestManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(fm.DraftsDir, "a.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(fm.DraftsDir, "b.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(fm.DraftsDir, "notas.txt"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(fm.DraftsDir, "a_fotos"), 0755))

	t.Run("default pattern picks JSON files only", func(t *testing.T) {
		files, err := fm.DiscoverDrafts("")
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "a.json", filepath.Base(files[0]))
		assert.Equal(t, "b.json", filepath.Base(files[1]))
	})

	t.Run("explicit pattern", func(t *testing.T) {
		files, err := fm.DiscoverDrafts("a.*")
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "a.json", filepath.Base(files[0]))
	})

	t.Run("empty directory yields no files", func(t *testing.T) {
		empty := newTestManager(t)
		files, err := empty.DiscoverDrafts("")
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestArchiveFile(t *testing.T) {
	fm := newTestManager(t)

	src := filepath.Join(fm.DraftsDir, "visita.json")
	require.NoError(t, os.WriteFile(src, []byte("{}"), 0644))

	archived, err := fm.ArchiveFile(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(fm.ArchiveDir, "visita.json"), archived)
	assert.NoFileExists(t, src)
	assert.FileExists(t, archived)
}

func TestArchiveDirectory(t *testing.T) {
	fm := newTestManager(t)

	src := filepath.Join(fm.DraftsDir, "visita_fotos")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "fachada"), 0755))
	photo := filepath.Join(src, "fachada", "frente.png")
	require.NoError(t, os.WriteFile(photo, []byte("png"), 0644))

	archived, err := fm.ArchiveDirectory(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(fm.ArchiveDir, "visita_fotos"), archived)
	assert.NoDirExists(t, src)

	moved, err := os.ReadFile(filepath.Join(archived, "fachada", "frente.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), moved)
}

func TestCopyDir(t *testing.T) {
	// Exercised directly because the rename fallback only triggers on
	// cross-device moves, which a temp dir cannot reproduce.
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "interior"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "interior", "sala.png"), []byte("png"), 0644))

	dst := filepath.Join(t.TempDir(), "copia")
	require.NoError(t, copyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "interior", "sala.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestCleanOldArchives(t *testing.T) {
	fm := newTestManager(t)

	old := filepath.Join(fm.ArchiveDir, "antiga.json")
	recent := filepath.Join(fm.ArchiveDir, "recente.json")
	require.NoError(t, os.WriteFile(old, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(recent, []byte("{}"), 0644))

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))

	removed, err := fm.CleanOldArchives(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, recent)
}

func TestFileExists(t *testing.T) {
	fm := newTestManager(t)
	assert.True(t, FileExists(fm.DraftsDir))
	assert.False(t, FileExists(filepath.Join(fm.DraftsDir, "nope.json")))
}
