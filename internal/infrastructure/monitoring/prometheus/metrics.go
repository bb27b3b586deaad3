package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the service emits.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Query pipeline
	QueriesTotal      CounterVec
	ExtractionsTotal  CounterVec
	ExtractedPerQuery HistogramVec
	QueryDuration     HistogramVec
	QueryResultCount  HistogramVec

	// Upstream database
	UpstreamRequestsTotal   CounterVec
	UpstreamRequestDuration HistogramVec

	// System health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultUpstreamDurationBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	DefaultResultCountBuckets      = []float64{0, 1, 5, 10, 20, 50, 100, 200}
	DefaultExtractionBuckets       = []float64{0, 1, 2, 3, 5, 8, 13}
)

// NewAppMetrics registers all metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method")

	m.QueriesTotal = collector.RegisterCounter("queries_total", "Natural-language queries by outcome", "status")
	m.ExtractionsTotal = collector.RegisterCounter("extractions_total", "Extracted tokens by kind", "kind")
	m.ExtractedPerQuery = collector.RegisterHistogram("extracted_per_query", "Extracted symbols per query", DefaultExtractionBuckets)
	m.QueryDuration = collector.RegisterHistogram("query_duration_seconds", "End-to-end query duration", DefaultHTTPDurationBuckets)
	m.QueryResultCount = collector.RegisterHistogram("query_result_count", "Materials returned per query", DefaultResultCountBuckets)

	m.UpstreamRequestsTotal = collector.RegisterCounter("upstream_requests_total", "Upstream search requests", "mode", "status")
	m.UpstreamRequestDuration = collector.RegisterHistogram("upstream_request_duration_seconds", "Upstream search duration", DefaultUpstreamDurationBuckets, "mode")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}

// RecordHTTPRequest records one served request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordQuery records one pipeline run.
func (m *AppMetrics) RecordQuery(status string, extracted, results int, duration time.Duration) {
	m.QueriesTotal.WithLabelValues(status).Inc()
	m.ExtractedPerQuery.WithLabelValues().Observe(float64(extracted))
	m.QueryDuration.WithLabelValues().Observe(duration.Seconds())
	m.QueryResultCount.WithLabelValues().Observe(float64(results))
}

// RecordUpstream records one upstream search call. mode is "elements",
// "formula" or "chemsys"; status is "ok" or the error code.
func (m *AppMetrics) RecordUpstream(mode, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(mode, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordExtraction counts one extracted token by its classification
// ("name", "symbol", "formula").
func (m *AppMetrics) RecordExtraction(kind string) {
	m.ExtractionsTotal.WithLabelValues(kind).Inc()
}

// RecordError counts an error against a component.
func (m *AppMetrics) RecordError(component, code string) {
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

// SetHealth flags a component up or down.
func (m *AppMetrics) SetHealth(component string, up bool) {
	v := 0.0
	if up {
		v = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(component).Set(v)
}
