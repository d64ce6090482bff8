package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStates(t *testing.T) {
	assert.Len(t, States, 27)

	seen := map[string]bool{}
	for _, s := range States {
		assert.Len(t, s.Code, 2)
		assert.NotEmpty(t, s.Name)
		assert.False(t, seen[s.Code], "duplicate state code %s", s.Code)
		seen[s.Code] = true
	}
}

func TestValidState(t *testing.T) {
	assert.True(t, ValidState("SP"))
	assert.True(t, ValidState("TO"))
	assert.False(t, ValidState("XX"))
	assert.False(t, ValidState("sp"))
	assert.False(t, ValidState(""))
}

func TestBanks(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Banks {
		assert.Len(t, b.Code, 3)
		assert.NotEmpty(t, b.Name)
		assert.False(t, seen[b.Code], "duplicate bank code %s", b.Code)
		seen[b.Code] = true
	}
}

func TestSelectorTables(t *testing.T) {
	assert.Equal(t, []string{"Alugado", "Próprio"}, PropertyTypes)

	assert.Len(t, VisitObjectives, 9)
	assert.Equal(t, "Acompanhamento de relacionamento", VisitObjectives[0])
	assert.Equal(t, "Outros", VisitObjectives[len(VisitObjectives)-1])

	assert.Equal(t, []string{"Excelente", "Bom", "Regular", "Ruim"}, PhysicalConditions)
}
