package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materiascout/materiascout/internal/infrastructure/materials"
)

func TestProjectTableFriendlyColumns(t *testing.T) {
	records := []materials.Material{
		{
			"material_id":    "mp-1",
			"formula_pretty": "Fe2O3",
			"symmetry":       map[string]interface{}{"symbol": "R-3c", "number": float64(167)},
			"is_stable":      true,
		},
	}

	table := ProjectTable(records, []string{"Space Group", "Stable?"})

	assert.Equal(t, []string{"Material ID", "Formula", "Space Group", "Stable?"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []interface{}{"mp-1", "Fe2O3", "R-3c", true}, table.Rows[0])
}

func TestProjectTableCallerOrderPreserved(t *testing.T) {
	records := []materials.Material{
		{
			"material_id":    "mp-2",
			"formula_pretty": "Si",
			"band_gap":       1.11,
			"density":        2.33,
		},
	}

	table := ProjectTable(records, []string{"density", "band_gap"})

	assert.Equal(t, []string{"Material ID", "Formula", "Density (g/cm³)", "Band Gap (eV)"}, table.Columns)
	assert.Equal(t, []interface{}{"mp-2", "Si", 2.33, 1.11}, table.Rows[0])
}

func TestProjectTableOmitsAbsentColumns(t *testing.T) {
	records := []materials.Material{
		{"material_id": "mp-3", "formula_pretty": "NaCl", "band_gap": 5.0},
		{"material_id": "mp-4", "formula_pretty": "KCl"},
	}

	table := ProjectTable(records, []string{"band_gap", "volume"})

	assert.Equal(t, []string{"Material ID", "Formula", "Band Gap (eV)"}, table.Columns)
	assert.Equal(t, []interface{}{"mp-3", "NaCl", 5.0}, table.Rows[0])
	assert.Equal(t, []interface{}{"mp-4", "KCl", nil}, table.Rows[1])
}

func TestProjectTableNestedValueMissingKey(t *testing.T) {
	records := []materials.Material{
		{
			"material_id":    "mp-5",
			"formula_pretty": "GaAs",
			"symmetry":       map[string]interface{}{"number": float64(216)},
		},
	}

	table := ProjectTable(records, []string{"Space Group"})
	assert.Equal(t, []interface{}{"mp-5", "GaAs", nil}, table.Rows[0])
}

func TestProjectTableNestedValueNotAnObject(t *testing.T) {
	records := []materials.Material{
		{
			"material_id":    "mp-7",
			"formula_pretty": "Fe2O3",
			"symmetry":       "R-3c",
		},
	}

	table := ProjectTable(records, []string{"Space Group"})
	assert.Equal(t, []interface{}{"mp-7", "Fe2O3", nil}, table.Rows[0])
}

func TestProjectTableDeduplicatesRequestedFields(t *testing.T) {
	records := []materials.Material{
		{"material_id": "mp-6", "formula_pretty": "C", "is_stable": false},
	}

	table := ProjectTable(records, []string{"Stable?", "is_stable", "material_id"})
	assert.Equal(t, []string{"Material ID", "Formula", "Stable?"}, table.Columns)
}

func TestFriendlyNameRoundTrip(t *testing.T) {
	assert.Equal(t, "Stable?", FriendlyName("is_stable"))
	assert.Equal(t, "is_stable", APIName("Stable?"))
	assert.Equal(t, "symmetry", APIName("Space Group"))
	assert.Equal(t, "nelements", FriendlyName("nelements"))
	assert.Equal(t, "nelements", APIName("nelements"))
}
