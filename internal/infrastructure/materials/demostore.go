package materials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/logging"
	"github.com/materiascout/materiascout/pkg/errors"
)

// DemoStore is the offline Searcher implementation: a fixed set of sample
// materials loaded from a JSON fixture, for running the system without a
// Materials Project key. Matching follows the live element semantics: a
// material matches when every requested element occurs in its "elements"
// list, or when a requested formula token equals its formula.
type DemoStore struct {
	records []Material
	logger  logging.Logger
}

// NewDemoStore loads the fixture at path. A missing or malformed fixture is
// an error at construction time, not at query time.
func NewDemoStore(path string, logger logging.Logger) (*DemoStore, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig,
			fmt.Sprintf("cannot read demo fixture %q", path))
	}

	var records []Material
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig,
			fmt.Sprintf("cannot parse demo fixture %q", path))
	}

	logger.Info("demo store loaded",
		logging.String("path", path),
		logging.Int("materials", len(records)),
	)
	return &DemoStore{records: records, logger: logger.Named("demo")}, nil
}

// NewDemoStoreFromRecords builds a store from in-memory records, for tests.
func NewDemoStoreFromRecords(records []Material) *DemoStore {
	return &DemoStore{records: records, logger: logging.NewNopLogger()}
}

// Len returns the number of fixture materials.
func (s *DemoStore) Len() int {
	return len(s.records)
}

// Search filters the fixture by the request's chemistry and restricts each
// match to the requested fields. No API key is required in demo mode.
func (s *DemoStore) Search(_ context.Context, req SearchRequest) ([]Material, error) {
	limit := req.Limit
	if limit < 1 {
		limit = 1
	}

	var out []Material
	for _, rec := range s.records {
		if !s.matches(rec, req) {
			continue
		}
		out = append(out, selectFields(rec, req.Fields))
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// matches applies the demo matching rule for one material.
func (s *DemoStore) matches(rec Material, req SearchRequest) bool {
	switch {
	case len(req.Elements) > 0:
		return containsAllElements(rec, req.Elements) || rec.Formula() != "" && anyEquals(req.Elements, rec.Formula())
	case req.Formula != "":
		return rec.Formula() == req.Formula
	case req.Chemsys != "":
		if v, ok := rec["chemsys"].(string); ok {
			return v == req.Chemsys
		}
		return false
	default:
		return false
	}
}

// containsAllElements reports whether every symbol in want occurs in the
// material's "elements" list.
func containsAllElements(rec Material, want []string) bool {
	raw, ok := rec["elements"].([]interface{})
	if !ok {
		return false
	}
	have := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			have[s] = struct{}{}
		}
	}
	for _, w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}

func anyEquals(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// selectFields restricts rec to the requested fields. Requested fields the
// record lacks are simply absent from the copy; the identifier always
// survives so rows stay addressable.
func selectFields(rec Material, fields []string) Material {
	if len(fields) == 0 {
		out := make(Material, len(rec))
		for k, v := range rec {
			out[k] = v
		}
		return out
	}

	out := make(Material, len(fields)+1)
	if id := rec.ID(); id != "" {
		out["material_id"] = id
	}
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
	}
	return out
}

// ListProperties returns the union of property names across the fixture,
// sorted for stable display.
func (s *DemoStore) ListProperties(_ context.Context, _ string) ([]string, error) {
	set := make(map[string]struct{})
	for _, rec := range s.records {
		for k := range rec {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}
