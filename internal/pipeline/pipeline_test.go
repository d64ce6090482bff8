package pipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/coopvisita/relatorio-visitas/internal/config"
	"github.com/coopvisita/relatorio-visitas/pkg/utils"
)

// draftJSON is a draft that passes every validation rule once the facade
// photo arrives from the sidecar directory.
const draftJSON = `{
  "eCooperado": "Sim",
  "cpfCnpj": "111.444.777-35",
  "gerenteRelacionamento": "Maria Souza",
  "nomeRazaoSocial": "Padaria São João",
  "formaGestao": "LTDA",
  "dataVisita": "2024-12-25",
  "objetivoVisita": "Renovação de limite",
  "visitaEnderecoRegistrado": "Sim",
  "participantes": ["Ana Costa"]
}`

func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

// testSetup lays out a drafts directory with one draft and its facade photo
// and returns the draft path plus a config over temp directories.
func testSetup(t *testing.T) (string, *config.Config) {
	t.Helper()

	root := t.TempDir()
	cfg := &config.Config{
		DraftsDir:  filepath.Join(root, "drafts"),
		OutputDir:  filepath.Join(root, "output"),
		ArchiveDir: filepath.Join(root, "archive"),
	}

	fm := utils.NewFileManager(cfg.DraftsDir, cfg.OutputDir, cfg.ArchiveDir)
	require.NoError(t, fm.EnsureDirectories())

	draftPath := filepath.Join(cfg.DraftsDir, "visita.json")
	require.NoError(t, os.WriteFile(draftPath, []byte(draftJSON), 0644))
	writePNG(t, filepath.Join(SidecarDir(draftPath), "fachada", "01.png"))

	return draftPath, cfg
}

func TestProcessorRun(t *testing.T) {
	t.Run("renders and archives a valid draft", func(t *testing.T) {
		draftPath, cfg := testSetup(t)

		result := New(draftPath, cfg, false, zaptest.NewLogger(t)).Run()
		require.NoError(t, result.Error)
		require.True(t, result.Success)

		assert.Equal(t, 1, result.Stats.PhotosAttached)
		assert.GreaterOrEqual(t, result.Stats.Pages, 1)

		data, err := os.ReadFile(result.OutputFile)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

		// Draft and photos moved to the archive.
		assert.NoFileExists(t, draftPath)
		assert.NoDirExists(t, SidecarDir(draftPath))
		assert.FileExists(t, filepath.Join(cfg.ArchiveDir, "visita.json"))
		assert.DirExists(t, filepath.Join(cfg.ArchiveDir, "visita_fotos"))
	})

	t.Run("pending fields block rendering", func(t *testing.T) {
		draftPath, cfg := testSetup(t)
		require.NoError(t, os.RemoveAll(SidecarDir(draftPath)))

		result := New(draftPath, cfg, false, zaptest.NewLogger(t)).Run()
		require.False(t, result.Success)
		assert.Error(t, result.Error)
		assert.NotEmpty(t, result.Violations)
		assert.Empty(t, result.OutputFile)

		// The draft stays in place for the next run.
		assert.FileExists(t, draftPath)
	})

	t.Run("force renders past pending fields", func(t *testing.T) {
		draftPath, cfg := testSetup(t)
		require.NoError(t, os.RemoveAll(SidecarDir(draftPath)))

		result := New(draftPath, cfg, true, zaptest.NewLogger(t)).Run()
		require.NoError(t, result.Error)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Violations)
		assert.FileExists(t, result.OutputFile)
	})

	t.Run("unreadable draft fails", func(t *testing.T) {
		draftPath, cfg := testSetup(t)
		require.NoError(t, os.WriteFile(draftPath, []byte("{"), 0644))

		result := New(draftPath, cfg, false, zaptest.NewLogger(t)).Run()
		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})
}

func TestLoad(t *testing.T) {
	t.Run("attaches sidecar photos in name order", func(t *testing.T) {
		draftPath, _ := testSetup(t)
		writePNG(t, filepath.Join(SidecarDir(draftPath), "fachada", "00.png"))
		writePNG(t, filepath.Join(SidecarDir(draftPath), "interior", "01.png"))

		d, err := Load(draftPath)
		require.NoError(t, err)

		require.Len(t, d.FacadePhotos, 2)
		assert.Equal(t, "00.png", d.FacadePhotos[0].Name)
		assert.Equal(t, "01.png", d.FacadePhotos[1].Name)
		assert.Len(t, d.InteriorPhotos, 1)
		assert.Empty(t, d.StockPhotos)
	})

	t.Run("missing sidecar directory means no photos", func(t *testing.T) {
		draftPath, _ := testSetup(t)
		require.NoError(t, os.RemoveAll(SidecarDir(draftPath)))

		d, err := Load(draftPath)
		require.NoError(t, err)
		assert.Empty(t, d.FacadePhotos)
	})
}

func TestSidecarDir(t *testing.T) {
	assert.Equal(t, "/tmp/drafts/visita_fotos", SidecarDir("/tmp/drafts/visita.json"))
	assert.Equal(t, "visita_fotos", SidecarDir("visita.json"))
}
