package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materiascout/materiascout/internal/infrastructure/materials"
	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/prometheus"
	"github.com/materiascout/materiascout/pkg/errors"
)

type fakeSearcher struct {
	lastReq materials.SearchRequest
	records []materials.Material
	props   []string
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, req materials.SearchRequest) ([]materials.Material, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSearcher) ListProperties(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.props, nil
}

func TestSearchNoElementsIsNotAnError(t *testing.T) {
	fake := &fakeSearcher{}
	svc := NewService(nil, fake, nil)

	res, err := svc.Search(context.Background(), Request{Query: "tell me about the weather"})
	require.NoError(t, err)
	assert.Equal(t, StatusNoResults, res.Status)
	assert.Empty(t, res.Elements)
	assert.Empty(t, res.Criteria)
	assert.Contains(t, res.Message, "No chemical elements")
	assert.Empty(t, fake.lastReq.Elements, "upstream must not be called")
}

func TestSearchElementsMode(t *testing.T) {
	fake := &fakeSearcher{records: []materials.Material{
		{"material_id": "mp-19770", "formula_pretty": "Fe2O3", "is_stable": true},
	}}
	svc := NewService(nil, fake, nil)

	res, err := svc.Search(context.Background(), Request{
		Query:      "stable compounds of oxygen and iron",
		Properties: []string{"Stable?"},
		APIKey:     "k",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, []string{"O", "Fe"}, res.Elements)
	assert.Equal(t, "Fe-O", res.Criteria)
	assert.Equal(t, []string{"O", "Fe"}, fake.lastReq.Elements)
	assert.Empty(t, fake.lastReq.Formula)
	assert.Equal(t, []string{"is_stable", "material_id", "formula_pretty"}, fake.lastReq.Fields)
	assert.Equal(t, "k", fake.lastReq.APIKey)

	require.Len(t, res.Table.Rows, 1)
	assert.Equal(t, []string{"Material ID", "Formula", "Stable?"}, res.Table.Columns)
}

func TestSearchSingleFormulaMode(t *testing.T) {
	fake := &fakeSearcher{records: []materials.Material{
		{"material_id": "mp-19770", "formula_pretty": "Fe2O3"},
	}}
	svc := NewService(nil, fake, nil)

	res, err := svc.Search(context.Background(), Request{Query: "properties of Fe2O3 please"})
	require.NoError(t, err)

	assert.Equal(t, "Fe2O3", res.Criteria)
	assert.Equal(t, "Fe2O3", fake.lastReq.Formula)
	assert.Empty(t, fake.lastReq.Elements)
	assert.Equal(t, StatusSuccess, res.Status)
}

func TestSearchMixedTokensUseElementsMode(t *testing.T) {
	fake := &fakeSearcher{records: []materials.Material{
		{"material_id": "mp-22862", "formula_pretty": "NaCl"},
	}}
	svc := NewService(nil, fake, nil)

	res, err := svc.Search(context.Background(), Request{Query: "iron, NaCl and O"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Fe", "NaCl", "O"}, res.Elements)
	assert.Equal(t, []string{"Fe", "NaCl", "O"}, fake.lastReq.Elements)
	assert.Empty(t, fake.lastReq.Formula)
	assert.Equal(t, "Fe-NaCl-O", res.Criteria)
}

func TestSearchEmptyUpstreamYieldsNoResults(t *testing.T) {
	fake := &fakeSearcher{}
	svc := NewService(nil, fake, nil)

	res, err := svc.Search(context.Background(), Request{Query: "compounds of xenon"})
	require.NoError(t, err)
	assert.Equal(t, StatusNoResults, res.Status)
	assert.Contains(t, res.Message, `"Xe"`)
}

func TestSearchUpstreamErrorPropagates(t *testing.T) {
	fake := &fakeSearcher{err: errors.New(errors.ErrCodeUpstreamRejected, "API key rejected")}
	svc := NewService(nil, fake, nil)

	res, err := svc.Search(context.Background(), Request{Query: "iron oxide Fe2O3", APIKey: "bad"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUpstreamRejected), "wrap must preserve the upstream code")
}

func TestSearchDefaultLimit(t *testing.T) {
	fake := &fakeSearcher{records: []materials.Material{{"material_id": "mp-149", "formula_pretty": "Si"}}}
	svc := NewService(nil, fake, nil)

	_, err := svc.Search(context.Background(), Request{Query: "silicon"})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxResults, fake.lastReq.Limit)

	_, err = svc.Search(context.Background(), Request{Query: "silicon", MaxResults: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, fake.lastReq.Limit)
}

func TestSearchConfiguredDefaultLimit(t *testing.T) {
	fake := &fakeSearcher{records: []materials.Material{{"material_id": "mp-149", "formula_pretty": "Si"}}}
	svc := NewService(nil, fake, nil).WithDefaultMaxResults(50)

	_, err := svc.Search(context.Background(), Request{Query: "silicon"})
	require.NoError(t, err)
	assert.Equal(t, 50, fake.lastReq.Limit)

	// An explicit per-request cap still wins.
	_, err = svc.Search(context.Background(), Request{Query: "silicon", MaxResults: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, fake.lastReq.Limit)

	// Non-positive overrides are ignored.
	svc.WithDefaultMaxResults(0)
	_, err = svc.Search(context.Background(), Request{Query: "silicon"})
	require.NoError(t, err)
	assert.Equal(t, 50, fake.lastReq.Limit)
}

func TestExtract(t *testing.T) {
	svc := NewService(nil, &fakeSearcher{}, nil)

	symbols, criteria, err := svc.Extract("lithium iron and oxygen")
	require.NoError(t, err)
	assert.Equal(t, []string{"Li", "Fe", "O"}, symbols)
	assert.Equal(t, "Fe-Li-O", criteria.ChemicalSystem())

	_, _, err = svc.Extract("nothing chemical here")
	require.Error(t, err)
	assert.True(t, errors.IsNoElementsFound(err))
}

func TestPropertiesFriendlyAliases(t *testing.T) {
	fake := &fakeSearcher{props: []string{"band_gap", "is_stable", "nelements", "symmetry"}}
	svc := NewService(nil, fake, nil)

	props, err := svc.Properties(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"Band Gap (eV)", "Stable?", "nelements", "Space Group"}, props)
}

func TestSearchRecordsPipelineMetrics(t *testing.T) {
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "scouttest",
	}, nil)
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)

	fake := &fakeSearcher{records: []materials.Material{
		{"material_id": "mp-19770", "formula_pretty": "Fe2O3"},
	}}
	svc := NewService(nil, fake, nil).WithMetrics(metrics)

	_, err = svc.Search(context.Background(), Request{Query: "iron and oxygen"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `scouttest_queries_total{status="success"} 1`)
	assert.Contains(t, body, `scouttest_extractions_total{kind="name"} 2`)
	assert.Contains(t, body, `scouttest_upstream_requests_total{mode="elements",status="ok"} 1`)
}

func TestSearchUpstreamErrorRecordsErrorMetrics(t *testing.T) {
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "scouttest",
	}, nil)
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)

	fake := &fakeSearcher{err: errors.New(errors.ErrCodeUpstreamUnavailable, "down")}
	svc := NewService(nil, fake, nil).WithMetrics(metrics)

	_, err = svc.Search(context.Background(), Request{Query: "iron"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `scouttest_queries_total{status="error"} 1`)
	assert.Contains(t, body, `scouttest_errors_total{code="UPS_001",component="query"} 1`)
}
