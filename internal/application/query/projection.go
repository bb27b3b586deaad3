package query

import (
	"github.com/materiascout/materiascout/internal/infrastructure/materials"
)

// Fields that every projected table carries regardless of what the caller
// asked for.
const (
	FieldMaterialID = "material_id"
	FieldFormula    = "formula_pretty"
)

// Friendly display aliases for upstream field names. Nested fields use a
// dotted path into the record.
var friendlyNames = map[string]string{
	FieldMaterialID:     "Material ID",
	FieldFormula:        "Formula",
	"is_stable":         "Stable?",
	"symmetry":          "Space Group",
	"band_gap":          "Band Gap (eV)",
	"density":           "Density (g/cm³)",
	"energy_above_hull": "Energy Above Hull (eV/atom)",
}

// apiNames is the inverse of friendlyNames.
var apiNames = func() map[string]string {
	m := make(map[string]string, len(friendlyNames))
	for api, friendly := range friendlyNames {
		m[friendly] = api
	}
	return m
}()

// fieldPaths maps upstream fields whose display value lives inside a
// nested object to the path of the scalar to show.
var fieldPaths = map[string][]string{
	"symmetry": {"symmetry", "symbol"},
}

// FriendlyName returns the display name for an upstream field, or the
// field itself when it has no alias.
func FriendlyName(field string) string {
	if name, ok := friendlyNames[field]; ok {
		return name
	}
	return field
}

// APIName resolves a requested property to its upstream field. Friendly
// aliases are translated; anything else is assumed to already be a field.
func APIName(property string) string {
	if field, ok := apiNames[property]; ok {
		return field
	}
	return property
}

// Table is a projected, column-ordered view of search records.
type Table struct {
	// Columns are display names, identifier and formula first, then the
	// requested properties in caller order.
	Columns []string `json:"columns"`

	// Rows holds one slice per record, aligned with Columns. Cells for
	// absent values are nil.
	Rows [][]interface{} `json:"rows"`
}

// ProjectTable flattens raw search records into a display table. The
// identifier and formula lead; requested properties follow in caller
// order; properties absent from every record are omitted entirely.
func ProjectTable(records []materials.Material, properties []string) Table {
	ordered := make([]string, 0, len(properties)+2)
	seen := map[string]struct{}{}
	for _, f := range []string{FieldMaterialID, FieldFormula} {
		ordered = append(ordered, f)
		seen[f] = struct{}{}
	}
	for _, p := range properties {
		field := APIName(p)
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		ordered = append(ordered, field)
	}

	// Drop columns no record can populate.
	fields := make([]string, 0, len(ordered))
	for _, f := range ordered {
		if f == FieldMaterialID || f == FieldFormula || anyHasField(records, f) {
			fields = append(fields, f)
		}
	}

	t := Table{
		Columns: make([]string, len(fields)),
		Rows:    make([][]interface{}, 0, len(records)),
	}
	for i, f := range fields {
		t.Columns[i] = FriendlyName(f)
	}
	for _, rec := range records {
		row := make([]interface{}, len(fields))
		for i, f := range fields {
			row[i] = cellValue(rec, f)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func anyHasField(records []materials.Material, field string) bool {
	for _, rec := range records {
		if _, ok := rec[field]; ok {
			return true
		}
	}
	return false
}

// cellValue extracts the display scalar for one field, descending into
// nested objects where the field declares a path.
func cellValue(rec materials.Material, field string) interface{} {
	v, ok := rec[field]
	if !ok {
		return nil
	}
	path, nested := fieldPaths[field]
	if !nested {
		return v
	}
	cur := v
	for _, key := range path[1:] {
		// A non-object where the path expects one yields a null cell, the
		// same as a missing sub-key.
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}
