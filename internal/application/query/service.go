// Package query orchestrates the natural-language search pipeline: element
// extraction, criteria construction, the upstream search call, and result
// projection for display. The service holds its collaborators explicitly;
// there is no process-wide client singleton, and each Service instance is
// an independent session configuration.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/materiascout/materiascout/internal/extractor"
	"github.com/materiascout/materiascout/internal/infrastructure/materials"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/logging"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/prometheus"
	"github.com/materiascout/materiascout/pkg/errors"
)

// Status classifies the outcome of one query.
type Status string

const (
	// StatusSuccess means the search ran and returned at least one record.
	StatusSuccess Status = "success"

	// StatusNoResults means either no chemistry was recognized in the
	// query, or the search matched nothing. Not an error.
	StatusNoResults Status = "no_results"
)

// DefaultMaxResults caps result counts when the caller does not say.
const DefaultMaxResults = 20

// Request is one natural-language search.
type Request struct {
	// Query is the free-text user query.
	Query string

	// Properties is the ordered list of display property names the caller
	// wants. Friendly names ("Space Group", "Stable?") are accepted and
	// resolved to their API fields.
	Properties []string

	// MaxResults caps the returned records; 0 means DefaultMaxResults.
	MaxResults int

	// APIKey is the opaque upstream credential. The demo searcher ignores
	// it; the live searcher requires it.
	APIKey string
}

// Result is the outcome of one query: what was extracted, the criteria
// used, and the projected display table.
type Result struct {
	Status   Status   `json:"status"`
	Message  string   `json:"message"`
	Elements []string `json:"extracted_elements"`
	Criteria string   `json:"criteria,omitempty"`
	Table    Table    `json:"table"`
}

// Service runs the query pipeline. It is stateless with respect to
// queries and safe for concurrent use.
type Service struct {
	extractor  *extractor.Extractor
	searcher   materials.Searcher
	logger     logging.Logger
	metrics    *prometheus.AppMetrics
	defaultMax int
}

// NewService constructs a Service. A nil extractor falls back to the
// built-in lexicon and periodic table; searcher is required.
func NewService(ext *extractor.Extractor, searcher materials.Searcher, logger logging.Logger) *Service {
	if ext == nil {
		ext = extractor.New(nil, nil)
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		extractor:  ext,
		searcher:   searcher,
		logger:     logger.Named("query"),
		defaultMax: DefaultMaxResults,
	}
}

// WithMetrics attaches pipeline instrumentation and returns the service
// for chaining. Without it the service records nothing.
func (s *Service) WithMetrics(m *prometheus.AppMetrics) *Service {
	s.metrics = m
	return s
}

// WithDefaultMaxResults overrides the result cap applied when a request
// does not set one. Non-positive values keep DefaultMaxResults.
func (s *Service) WithDefaultMaxResults(n int) *Service {
	if n > 0 {
		s.defaultMax = n
	}
	return s
}

// Extract runs only the interpretation stage: extraction plus criteria
// construction, no upstream call. Used by the CLI extract command and the
// interpretation endpoint.
func (s *Service) Extract(text string) ([]string, extractor.Criteria, error) {
	symbols := s.extractor.Extract(text)
	criteria, err := extractor.BuildCriteria(symbols)
	if err != nil {
		return symbols, extractor.Criteria{}, err
	}
	return symbols, criteria, nil
}

// Search runs the full pipeline. A query with no recognizable chemistry
// yields StatusNoResults, not an error; upstream failures are returned
// as-is, never retried.
func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	matches := s.extractor.ExtractMatches(req.Query)
	symbols := make([]string, len(matches))
	for i, m := range matches {
		symbols[i] = m.Value
		if s.metrics != nil {
			s.metrics.RecordExtraction(matchKindLabel(m.Kind))
		}
	}

	res := &Result{Elements: symbols}

	criteria, err := extractor.BuildCriteria(symbols)
	if err != nil {
		res.Status = StatusNoResults
		res.Message = "No chemical elements or formulas found in the query. " +
			"State an element name (e.g. 'iron'), a symbol (e.g. 'Fe'), or a formula (e.g. 'Fe2O3')."
		if s.metrics != nil {
			s.metrics.RecordQuery(string(StatusNoResults), 0, 0, time.Since(start))
		}
		return res, nil
	}
	res.Criteria = criteria.String()

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.defaultMax
	}

	fields := apiFields(req.Properties)

	mode := "elements"
	if searchFormula(matches) != "" {
		mode = "formula"
	}

	upstreamStart := time.Now()
	records, err := s.searcher.Search(ctx, materials.SearchRequest{
		Elements: searchElements(matches),
		Formula:  searchFormula(matches),
		Fields:   fields,
		Limit:    maxResults,
		APIKey:   req.APIKey,
	})
	if err != nil {
		s.logger.Error("upstream search failed",
			logging.String("criteria", res.Criteria),
			logging.Err(err),
		)
		if s.metrics != nil {
			s.metrics.RecordUpstream(mode, string(errors.GetCode(err)), time.Since(upstreamStart))
			s.metrics.RecordQuery("error", len(symbols), 0, time.Since(start))
			s.metrics.RecordError("query", string(errors.GetCode(err)))
		}
		return nil, errors.Wrap(err, errors.ErrCodeUnknown,
			fmt.Sprintf("search for %q failed", res.Criteria))
	}
	if s.metrics != nil {
		s.metrics.RecordUpstream(mode, "ok", time.Since(upstreamStart))
	}

	s.logger.Info("query served",
		logging.String("criteria", res.Criteria),
		logging.Strings("elements", symbols),
		logging.Int("results", len(records)),
		logging.Duration("elapsed", time.Since(start)),
	)

	if s.metrics != nil {
		status := StatusSuccess
		if len(records) == 0 {
			status = StatusNoResults
		}
		s.metrics.RecordQuery(string(status), len(symbols), len(records), time.Since(start))
	}

	if len(records) == 0 {
		res.Status = StatusNoResults
		res.Message = fmt.Sprintf("No materials found for criteria %q with the specified properties.", res.Criteria)
		return res, nil
	}

	res.Status = StatusSuccess
	res.Message = fmt.Sprintf("Successfully retrieved %d material(s).", len(records))
	res.Table = ProjectTable(records, req.Properties)
	return res, nil
}

// matchKindLabel names a match kind for instrumentation labels.
func matchKindLabel(k extractor.MatchKind) string {
	switch k {
	case extractor.MatchName:
		return "name"
	case extractor.MatchSymbol:
		return "symbol"
	case extractor.MatchFormula:
		return "formula"
	default:
		return "unknown"
	}
}

// Properties returns the property names the searcher can serve, with
// friendly display aliases substituted for their API fields.
func (s *Service) Properties(ctx context.Context, apiKey string) ([]string, error) {
	props, err := s.searcher.ListProperties(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = FriendlyName(p)
	}
	return out, nil
}

// searchElements returns the element list for the structured search
// variant: the deduplicated extraction output verbatim, first-occurrence
// order, no sorting. A single formula-like token is excluded here because
// it travels through the formula field instead.
func searchElements(matches []extractor.Match) []string {
	if len(matches) == 1 && matches[0].Kind == extractor.MatchFormula {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

// searchFormula returns the formula query for a single formula-like
// extraction ("Fe2O3"), where an element-list search would be wrong.
func searchFormula(matches []extractor.Match) string {
	if len(matches) == 1 && matches[0].Kind == extractor.MatchFormula {
		return matches[0].Value
	}
	return ""
}

// apiFields maps requested display properties to upstream fields and
// appends the identifier and formula columns the projection always needs.
// Order is preserved; duplicates are collapsed.
func apiFields(properties []string) []string {
	fields := make([]string, 0, len(properties)+2)
	seen := make(map[string]struct{}, len(properties)+2)
	add := func(f string) {
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		fields = append(fields, f)
	}

	for _, p := range properties {
		add(APIName(p))
	}
	add(FieldMaterialID)
	add(FieldFormula)
	return fields
}
