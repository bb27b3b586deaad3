// Package materials provides access to the Materials Project summary API:
// a live HTTP client and a fixture-backed demo store, both behind the
// Searcher interface so the query service never knows which one it talks to.
package materials

import "context"

// Material is one per-material record returned by a search: a mapping from
// property name to value. Nested values (e.g. symmetry) stay as generic
// maps; projection flattens them later.
type Material map[string]interface{}

// ID returns the material's unique identifier, or "" when absent.
func (m Material) ID() string {
	if v, ok := m["material_id"].(string); ok {
		return v
	}
	return ""
}

// Formula returns the material's human-readable formula, or "" when absent.
func (m Material) Formula() string {
	if v, ok := m["formula_pretty"].(string); ok {
		return v
	}
	return ""
}

// SearchRequest carries one upstream search. Exactly one of Elements,
// Formula, or Chemsys identifies the chemistry; Fields restricts the
// returned properties; Limit caps the result count.
type SearchRequest struct {
	// Elements lists element symbols that must all occur in a material.
	Elements []string

	// Formula is an exact formula query ("Fe2O3"), used when the criteria
	// is a single formula-like token.
	Formula string

	// Chemsys is a dash-joined sorted chemical system ("Fe-O").
	Chemsys string

	// Fields is the ordered set of property names to fetch.
	Fields []string

	// Limit is the maximum number of records to return (>= 1).
	Limit int

	// APIKey is the opaque credential passed through to the upstream API.
	APIKey string
}

// Searcher is the boundary contract with the materials database. One
// failure surfaces as-is; implementations never retry.
type Searcher interface {
	// Search returns an ordered sequence of per-material records.
	Search(ctx context.Context, req SearchRequest) ([]Material, error)

	// ListProperties returns the property names the backend can serve.
	ListProperties(ctx context.Context, apiKey string) ([]string, error)
}
