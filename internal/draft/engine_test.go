package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store := NewFileStore(t.TempDir()+"/draft.json", 0)
	return NewEngine(store, nil)
}

func TestEngineUpdateField(t *testing.T) {
	t.Run("sets the field and marks the draft dirty", func(t *testing.T) {
		e := newTestEngine(t)
		require.False(t, e.Dirty())

		require.NoError(t, e.UpdateField(FieldEntityName, "Mercado Bom Preço"))
		assert.Equal(t, "Mercado Bom Preço", e.Draft().EntityName)
		assert.True(t, e.Dirty())
	})

	t.Run("unknown field is an error", func(t *testing.T) {
		e := newTestEngine(t)
		err := e.UpdateField(Field("naoExiste"), "x")
		require.Error(t, err)
		assert.False(t, e.Dirty())
	})

	t.Run("snapshots do not alias engine state", func(t *testing.T) {
		e := newTestEngine(t)
		e.AddBank()

		snap := e.Draft()
		snap.Banks[0].Bank = "alterado"
		assert.Empty(t, e.Draft().Banks[0].Bank)
	})
}

func TestEngineApplyProfile(t *testing.T) {
	e := newTestEngine(t)
	e.ApplyProfile(Profile{Name: "João Lima", Email: "joao@coop.br", Role: "Gerente"})

	d := e.Draft()
	assert.Equal(t, "João Lima", d.Name)
	assert.Equal(t, "joao@coop.br", d.Email)
	assert.Equal(t, "Gerente", d.Role)
}

func TestEngineBankOperations(t *testing.T) {
	t.Run("add and update round trip", func(t *testing.T) {
		e := newTestEngine(t)
		entry := e.AddBank()
		require.NotEmpty(t, entry.ID)

		require.NoError(t, e.UpdateBankField(entry.ID, BankFieldName, "Banco do Brasil"))
		require.NoError(t, e.UpdateBankField(entry.ID, BankFieldTotalLiability, "R$ 150.000,00"))
		require.NoError(t, e.SetBankService(entry.ID, ServiceInsurance, true))

		banks := e.Draft().Banks
		require.Len(t, banks, 1)
		assert.Equal(t, "Banco do Brasil", banks[0].Bank)
		assert.Equal(t, "R$ 150.000,00", banks[0].TotalLiability)
		assert.True(t, banks[0].Insurance)
		assert.False(t, banks[0].Pension)
	})

	t.Run("each entry gets a distinct id", func(t *testing.T) {
		e := newTestEngine(t)
		a := e.AddBank()
		b := e.AddBank()
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("update addressed to a missing id is an error", func(t *testing.T) {
		e := newTestEngine(t)
		assert.Error(t, e.UpdateBankField("inexistente", BankFieldName, "x"))
		assert.Error(t, e.SetBankService("inexistente", ServicePension, true))
	})

	t.Run("removing an absent id is a no-op", func(t *testing.T) {
		e := newTestEngine(t)
		entry := e.AddBank()

		e.RemoveBank("inexistente")
		require.Len(t, e.Draft().Banks, 1)

		e.RemoveBank(entry.ID)
		assert.Empty(t, e.Draft().Banks)

		// Removing twice is fine.
		e.RemoveBank(entry.ID)
		assert.Empty(t, e.Draft().Banks)
	})
}

func TestEngineParticipants(t *testing.T) {
	t.Run("duplicates are rejected", func(t *testing.T) {
		e := newTestEngine(t)
		assert.True(t, e.AddParticipant("Ana Costa"))
		assert.False(t, e.AddParticipant("Ana Costa"))
		assert.Len(t, e.Draft().Participants, 1)
	})

	t.Run("update and remove by index", func(t *testing.T) {
		e := newTestEngine(t)
		e.AddParticipant("Ana Costa")
		e.AddParticipant("Pedro Santos")

		require.NoError(t, e.UpdateParticipant(1, "Pedro S. Santos"))
		assert.Equal(t, "Pedro S. Santos", e.Draft().Participants[1])

		require.NoError(t, e.RemoveParticipant(0))
		assert.Equal(t, []string{"Pedro S. Santos"}, e.Draft().Participants)
	})

	t.Run("out-of-range index is an error", func(t *testing.T) {
		e := newTestEngine(t)
		assert.Error(t, e.UpdateParticipant(0, "x"))
		assert.Error(t, e.RemoveParticipant(-1))
	})
}

func TestEngineAttachments(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.AddAttachment(ListFacadePhotos, Attachment{Name: "fachada.jpg", Data: []byte{1}}))
	require.NoError(t, e.AddAttachment(ListInteriorPhotos, Attachment{Name: "interior.jpg", Data: []byte{2}}))

	d := e.Draft()
	assert.Len(t, d.FacadePhotos, 1)
	assert.Len(t, d.InteriorPhotos, 1)

	require.NoError(t, e.RemoveAttachment(ListFacadePhotos, 0))
	assert.Empty(t, e.Draft().FacadePhotos)

	assert.Error(t, e.RemoveAttachment(ListFacadePhotos, 0))
	assert.Error(t, e.AddAttachment(AttachmentList("naoExiste"), Attachment{}))
}

func TestEngineReset(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.UpdateField(FieldEntityName, "Mercado Bom Preço"))
	e.AddBank()
	e.AddParticipant("Ana Costa")

	e.Reset()

	d := e.Draft()
	assert.Empty(t, d.EntityName)
	assert.Empty(t, d.Banks)
	assert.Empty(t, d.Participants)
	assert.False(t, e.Dirty())
}

func TestEngineSaveLoad(t *testing.T) {
	t.Run("scalars and lists survive, photos do not", func(t *testing.T) {
		path := t.TempDir() + "/draft.json"
		store := NewFileStore(path, 0)

		e := NewEngine(store, nil)
		require.NoError(t, e.UpdateField(FieldEntityName, "Mercado Bom Preço"))
		require.NoError(t, e.UpdateField(FieldTaxID, "111.444.777-35"))
		e.AddParticipant("Ana Costa")
		require.NoError(t, e.AddAttachment(ListFacadePhotos, Attachment{Name: "fachada.jpg", Data: []byte{1, 2, 3}}))
		require.NoError(t, e.Save())
		assert.False(t, e.Dirty())

		fresh := NewEngine(store, nil)
		found, err := fresh.Load()
		require.NoError(t, err)
		require.True(t, found)

		d := fresh.Draft()
		assert.Equal(t, "Mercado Bom Preço", d.EntityName)
		assert.Equal(t, "111.444.777-35", d.TaxID)
		assert.Equal(t, []string{"Ana Costa"}, d.Participants)
		assert.Empty(t, d.FacadePhotos)
	})

	t.Run("load with no stored draft", func(t *testing.T) {
		e := newTestEngine(t)
		found, err := e.Load()
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("save keeps photos on the live draft", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.AddAttachment(ListFacadePhotos, Attachment{Name: "fachada.jpg"}))
		require.NoError(t, e.Save())
		assert.Len(t, e.Draft().FacadePhotos, 1)
	})
}

func TestEngineSaveIfDirty(t *testing.T) {
	e := newTestEngine(t)

	saved, err := e.SaveIfDirty()
	require.NoError(t, err)
	assert.False(t, saved)

	require.NoError(t, e.UpdateField(FieldNotes, "visita tranquila"))

	saved, err = e.SaveIfDirty()
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = e.SaveIfDirty()
	require.NoError(t, err)
	assert.False(t, saved)
}
