package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/coopvisita/relatorio-visitas/internal/draft"
	"github.com/coopvisita/relatorio-visitas/internal/validation"
)

func sampleRow() Row {
	d := draft.New()
	d.EntityName = "Padaria São João"
	d.TaxID = "111.444.777-35"
	d.VisitDate = "2024-12-25"
	d.RelationshipManager = "Maria Souza"
	d.City = "Campinas"
	d.State = "SP"
	d.Banks = []draft.BankEntry{{ID: "b1", Bank: "Sicoob"}}
	d.FacadePhotos = []draft.Attachment{{Name: "fachada.jpg"}}

	return Row{Source: "visita.json", Draft: d}
}

func TestSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resumo.xlsx")

	invalid := Row{
		Source: "incompleta.json",
		Draft:  draft.New(),
		Violations: []validation.ValidationError{
			{Field: draft.FieldTaxID, Message: "CPF/CNPJ é obrigatório"},
			{Field: draft.FieldVisitDate, Message: "Data da visita é obrigatória"},
		},
	}

	require.NoError(t, Summary([]Row{sampleRow(), invalid}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Relatórios", cell)
		require.NoError(t, err)
		return v
	}

	// Header row.
	assert.Equal(t, "Arquivo", get("A1"))
	assert.Equal(t, "Situação", get("I1"))

	// Valid draft row.
	assert.Equal(t, "visita.json", get("A2"))
	assert.Equal(t, "Padaria São João", get("B2"))
	assert.Equal(t, "111.444.777-35", get("C2"))
	assert.Equal(t, "Campinas/SP", get("F2"))
	assert.Equal(t, "1", get("G2"))
	assert.Equal(t, "1", get("H2"))
	assert.Equal(t, "Válido", get("I2"))

	// Invalid draft row.
	assert.Equal(t, "incompleta.json", get("A3"))
	assert.Equal(t, "2 pendência(s)", get("I3"))
}

func TestSummaryEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resumo.xlsx")
	require.NoError(t, Summary(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Relatórios", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Arquivo", v)
}

func TestSummaryFilename(t *testing.T) {
	date := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "relatorios-visitas-2024-12-25.xlsx", SummaryFilename(date))
}
