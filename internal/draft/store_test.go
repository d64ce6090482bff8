package draft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	t.Run("save and load round trip", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "draft.json"), 0)

		d := New()
		d.EntityName = "Mercado Bom Preço"
		d.Banks = []BankEntry{{ID: "b1", Bank: "Sicoob", Pension: true}}
		require.NoError(t, store.Save(d))

		got, found, err := store.Load()
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Mercado Bom Preço", got.EntityName)
		require.Len(t, got.Banks, 1)
		assert.True(t, got.Banks[0].Pension)
	})

	t.Run("missing file means no draft", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "draft.json"), 0)
		_, found, err := store.Load()
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("quota rejects oversized drafts", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "draft.json"), 64)

		d := New()
		d.Notes = "uma observação longa o bastante para estourar a cota de armazenamento"
		err := store.Save(d)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrQuotaExceeded)

		// Nothing was written.
		_, found, err := store.Load()
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("save replaces the previous draft", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "draft.json"), 0)

		first := New()
		first.EntityName = "Primeira"
		require.NoError(t, store.Save(first))

		second := New()
		second.EntityName = "Segunda"
		require.NoError(t, store.Save(second))

		got, _, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "Segunda", got.EntityName)
	})

	t.Run("clear removes the draft and tolerates absence", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "draft.json"), 0)
		require.NoError(t, store.Save(New()))
		require.NoError(t, store.Clear())

		_, found, err := store.Load()
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, store.Clear())
	})

	t.Run("attachments never reach the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "draft.json")
		store := NewFileStore(path, 0)

		e := NewEngine(store, nil)
		require.NoError(t, e.AddAttachment(ListFacadePhotos, Attachment{Name: "fachada.jpg", Data: []byte("jpegdata")}))
		require.NoError(t, e.Save())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "jpegdata")
		assert.NotContains(t, string(data), "fachada.jpg")
	})
}

func TestReadDraftFile(t *testing.T) {
	t.Run("parses a draft and repairs nil lists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "visita.json")
		payload := `{"nomeRazaoSocial": "Mercado Bom Preço", "cpfCnpj": "111.444.777-35"}`
		require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

		d, err := ReadDraftFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Mercado Bom Preço", d.EntityName)
		assert.NotNil(t, d.Banks)
		assert.NotNil(t, d.Participants)
		assert.NotNil(t, d.FacadePhotos)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := ReadDraftFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "visita.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
		_, err := ReadDraftFile(path)
		assert.Error(t, err)
	})
}
