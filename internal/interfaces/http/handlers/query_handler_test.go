package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materiascout/materiascout/internal/application/query"
	"github.com/materiascout/materiascout/internal/infrastructure/materials"
	"github.com/materiascout/materiascout/pkg/errors"
)

type stubSearcher struct {
	lastReq materials.SearchRequest
	records []materials.Material
	props   []string
	err     error
}

func (s *stubSearcher) Search(_ context.Context, req materials.SearchRequest) ([]materials.Material, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubSearcher) ListProperties(_ context.Context, _ string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.props, nil
}

func newQueryHandler(searcher materials.Searcher) *QueryHandler {
	return NewQueryHandler(query.NewService(nil, searcher, nil), "server-key", nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestQuerySuccess(t *testing.T) {
	searcher := &stubSearcher{records: []materials.Material{
		{"material_id": "mp-19770", "formula_pretty": "Fe2O3", "is_stable": true},
	}}
	h := newQueryHandler(searcher)

	rec := postJSON(t, h.Query, `{"query":"iron and oxygen","properties":["Stable?"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res query.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, query.StatusSuccess, res.Status)
	assert.Equal(t, []string{"Fe", "O"}, res.Elements)
	assert.Equal(t, "Fe-O", res.Criteria)
	assert.Equal(t, "server-key", searcher.lastReq.APIKey)
}

func TestQueryHeaderKeyOverridesDefault(t *testing.T) {
	searcher := &stubSearcher{records: []materials.Material{{"material_id": "mp-149", "formula_pretty": "Si"}}}
	h := newQueryHandler(searcher)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"silicon"}`))
	req.Header.Set(headerAPIKey, "caller-key")
	rec := httptest.NewRecorder()
	h.Query(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "caller-key", searcher.lastReq.APIKey)
}

func TestQueryNoChemistryIs200NoResults(t *testing.T) {
	h := newQueryHandler(&stubSearcher{})

	rec := postJSON(t, h.Query, `{"query":"what is the meaning of life"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res query.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, query.StatusNoResults, res.Status)
}

func TestQueryEmptyTextRejected(t *testing.T) {
	h := newQueryHandler(&stubSearcher{})

	rec := postJSON(t, h.Query, `{"query":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "QRY_001", body.Code)
}

func TestQueryMalformedBody(t *testing.T) {
	h := newQueryHandler(&stubSearcher{})

	rec := postJSON(t, h.Query, `{"query": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryUnknownFieldRejected(t *testing.T) {
	h := newQueryHandler(&stubSearcher{})

	rec := postJSON(t, h.Query, `{"query":"iron","limit":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryUpstreamRejectedMapsTo401(t *testing.T) {
	searcher := &stubSearcher{err: errors.New(errors.ErrCodeUpstreamRejected, "API key rejected").
		WithDetail("invalid key")}
	h := newQueryHandler(searcher)

	rec := postJSON(t, h.Query, `{"query":"iron"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UPS_002", body.Code)
	assert.Equal(t, "invalid key", body.Detail)
}

func TestQueryUpstreamUnavailableMapsTo502(t *testing.T) {
	searcher := &stubSearcher{err: errors.New(errors.ErrCodeUpstreamUnavailable, "materials API unreachable")}
	h := newQueryHandler(searcher)

	rec := postJSON(t, h.Query, `{"query":"iron"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestExtractEndpoint(t *testing.T) {
	h := newQueryHandler(&stubSearcher{})

	rec := postJSON(t, h.Extract, `{"query":"oxygen and iron"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res ExtractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"O", "Fe"}, res.Elements)
	assert.Equal(t, "Fe-O", res.Criteria)
	assert.Equal(t, "Fe-O", res.ChemicalSystem)
}

func TestExtractNoChemistryMapsTo422(t *testing.T) {
	h := newQueryHandler(&stubSearcher{})

	rec := postJSON(t, h.Extract, `{"query":"hello there"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "QRY_002", body.Code)
}

func TestPropertiesEndpoint(t *testing.T) {
	h := newQueryHandler(&stubSearcher{props: []string{"band_gap", "is_stable"}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Properties(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res PropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"Band Gap (eV)", "Stable?"}, res.Properties)
}
