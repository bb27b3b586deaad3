package handlers

import (
	"net/http"

	"github.com/materiascout/materiascout/internal/infrastructure/materials"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/logging"
	"github.com/materiascout/materiascout/pkg/errors"
)

// SearchHandler serves the structured search proxy. It forwards criteria
// directly to the materials searcher without natural-language
// interpretation.
type SearchHandler struct {
	searcher      materials.Searcher
	defaultAPIKey string
	logger        logging.Logger
}

func NewSearchHandler(searcher materials.Searcher, defaultAPIKey string, logger logging.Logger) *SearchHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SearchHandler{
		searcher:      searcher,
		defaultAPIKey: defaultAPIKey,
		logger:        logger.Named("search_handler"),
	}
}

// SearchRequest is the body of POST /api/v1/materials/search. Exactly one
// of Elements, Formula, or Chemsys should be set; when more than one is
// present they are applied in that precedence order.
type SearchRequest struct {
	Elements []string `json:"elements,omitempty"`
	Formula  string   `json:"formula,omitempty"`
	Chemsys  string   `json:"chemsys,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// SearchResponse is the body returned by Search.
type SearchResponse struct {
	Count     int                  `json:"count"`
	Materials []materials.Material `json:"materials"`
}

// Search proxies a structured search to the materials database.
//
//	POST /api/v1/materials/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if len(req.Elements) == 0 && req.Formula == "" && req.Chemsys == "" {
		writeAppError(w, errors.New(errors.ErrCodeEmptyCriteria,
			"at least one of elements, formula, or chemsys is required"))
		return
	}

	records, err := h.searcher.Search(r.Context(), materials.SearchRequest{
		Elements: req.Elements,
		Formula:  req.Formula,
		Chemsys:  req.Chemsys,
		Fields:   req.Fields,
		Limit:    req.Limit,
		APIKey:   requestAPIKey(r, h.defaultAPIKey),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Count:     len(records),
		Materials: records,
	})
}
