package handlers

import (
	"net/http"
	"strings"

	"github.com/materiascout/materiascout/internal/application/query"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/logging"
	"github.com/materiascout/materiascout/pkg/errors"
)

// QueryHandler serves the natural-language endpoints.
type QueryHandler struct {
	service       *query.Service
	defaultAPIKey string
	logger        logging.Logger
}

// NewQueryHandler constructs a QueryHandler. defaultAPIKey is used for
// requests that carry no X-API-Key header.
func NewQueryHandler(service *query.Service, defaultAPIKey string, logger logging.Logger) *QueryHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &QueryHandler{
		service:       service,
		defaultAPIKey: defaultAPIKey,
		logger:        logger.Named("query_handler"),
	}
}

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query      string   `json:"query"`
	Properties []string `json:"properties,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

// Query runs the full natural-language pipeline.
//
//	POST /api/v1/query
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeAppError(w, errors.New(errors.ErrCodeInvalidQuery, "query text is required"))
		return
	}

	res, err := h.service.Search(r.Context(), query.Request{
		Query:      req.Query,
		Properties: req.Properties,
		MaxResults: req.MaxResults,
		APIKey:     requestAPIKey(r, h.defaultAPIKey),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ExtractRequest is the body of POST /api/v1/extract.
type ExtractRequest struct {
	Query string `json:"query"`
}

// ExtractResponse reports the interpretation of one query without
// touching the upstream database.
type ExtractResponse struct {
	Elements       []string `json:"extracted_elements"`
	Criteria       string   `json:"criteria"`
	ChemicalSystem string   `json:"chemical_system"`
}

// Extract runs only extraction and criteria construction.
//
//	POST /api/v1/extract
func (h *QueryHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeBody(r, &req); err != nil {
		writeAppError(w, err)
		return
	}

	symbols, criteria, err := h.service.Extract(req.Query)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExtractResponse{
		Elements:       symbols,
		Criteria:       criteria.String(),
		ChemicalSystem: criteria.ChemicalSystem(),
	})
}

// PropertiesResponse is the body of GET /api/v1/materials/properties.
type PropertiesResponse struct {
	Properties []string `json:"properties"`
}

// Properties lists the display property names available for queries.
//
//	GET /api/v1/materials/properties
func (h *QueryHandler) Properties(w http.ResponseWriter, r *http.Request) {
	props, err := h.service.Properties(r.Context(), requestAPIKey(r, h.defaultAPIKey))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PropertiesResponse{Properties: props})
}
