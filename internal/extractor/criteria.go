package extractor

import (
	"sort"
	"strings"

	"github.com/materiascout/materiascout/pkg/errors"
)

// ErrNoElementsFound is returned by BuildCriteria when the extracted symbol
// list is empty: the query contained no recognizable chemistry. Callers
// treat it as "no results, refine your query", not a hard failure.
var ErrNoElementsFound = errors.New(errors.ErrCodeNoElementsFound,
	"no chemical elements or formulas found in the query")

// Criteria is the search criteria derived from one query. It carries the
// deduplicated symbol list verbatim (first-occurrence order) for structured
// element searches, and derives the canonical string forms on demand.
// Criteria has no mutable state; it is a pure function of the extracted
// list and exists only for the duration of one query.
type Criteria struct {
	// Symbols is the deduplicated extraction output in first-occurrence
	// order. Entries are element symbols or formula-like tokens.
	Symbols []string
}

// BuildCriteria validates the extracted symbol list and wraps it as search
// criteria. An empty list yields ErrNoElementsFound rather than an
// empty-string criteria.
func BuildCriteria(symbols []string) (Criteria, error) {
	if len(symbols) == 0 {
		return Criteria{}, ErrNoElementsFound
	}
	return Criteria{Symbols: symbols}, nil
}

// Single reports whether the criteria holds exactly one symbol, and returns
// it verbatim (it may be an element symbol or a formula-like token).
func (c Criteria) Single() (string, bool) {
	if len(c.Symbols) == 1 {
		return c.Symbols[0], true
	}
	return "", false
}

// String returns the canonical criteria string: the symbol itself for a
// single-symbol criteria, otherwise the chemical-system form. This is the
// stable key used for direct lookups and logging.
func (c Criteria) String() string {
	if s, ok := c.Single(); ok {
		return s
	}
	return c.ChemicalSystem()
}

// ChemicalSystem returns the dash-joined chemical-system form of the
// criteria. Symbols are always sorted lexicographically first, so any two
// permutations of the same symbol set produce the identical string ("Fe-O"
// for both Fe,O and O,Fe inputs).
func (c Criteria) ChemicalSystem() string {
	sorted := make([]string, len(c.Symbols))
	copy(sorted, c.Symbols)
	sort.Strings(sorted)
	return strings.Join(sorted, "-")
}
