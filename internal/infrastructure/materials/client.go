package materials

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/materiascout/materiascout/internal/infrastructure/monitoring/logging"
	"github.com/materiascout/materiascout/pkg/errors"
)

// DefaultBaseURL is the Materials Project API endpoint.
const DefaultBaseURL = "https://api.materialsproject.org"

// summaryPath is the materials summary search path.
const summaryPath = "/materials/summary/"

// maxBodyDetail caps how much of an upstream error body is carried into the
// error detail surfaced to the user.
const maxBodyDetail = 2048

// ClientConfig holds the construction parameters for the live client.
type ClientConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxLimit       int
}

// Client is the live Searcher implementation over the Materials Project
// REST API. It performs one request per search call and never retries: a
// transport failure or an upstream rejection is surfaced verbatim.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxLimit   int
	logger     logging.Logger
}

// NewClient constructs a live materials client. Zero-valued config fields
// fall back to the production endpoint, a 30 s timeout, and a result cap
// of 200.
func NewClient(cfg ClientConfig, logger logging.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxLimit == 0 {
		cfg.MaxLimit = 200
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("invalid materials API base URL %q", cfg.BaseURL))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		maxLimit:   cfg.MaxLimit,
		logger:     logger.Named("materials"),
	}, nil
}

// summaryResponse is the envelope the summary endpoint returns.
type summaryResponse struct {
	Data []Material `json:"data"`
}

// Search performs one summary search against the upstream API.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Material, error) {
	if req.APIKey == "" {
		return nil, errors.New(errors.ErrCodeMissingAPIKey,
			"Materials Project API key is not set")
	}

	limit := req.Limit
	if limit < 1 {
		limit = 1
	}
	if limit > c.maxLimit {
		limit = c.maxLimit
	}

	q := url.Values{}
	switch {
	case len(req.Elements) > 0:
		q.Set("elements", strings.Join(req.Elements, ","))
	case req.Chemsys != "":
		q.Set("chemsys", req.Chemsys)
	case req.Formula != "":
		q.Set("formula", req.Formula)
	default:
		return nil, errors.New(errors.ErrCodeEmptyCriteria,
			"search request carries no elements, chemsys, or formula")
	}
	if len(req.Fields) > 0 {
		q.Set("_fields", strings.Join(req.Fields, ","))
	}
	q.Set("_limit", strconv.Itoa(limit))

	var resp summaryResponse
	if err := c.get(ctx, summaryPath, q, req.APIKey, &resp); err != nil {
		return nil, err
	}

	c.logger.Debug("upstream search done",
		logging.Strings("elements", req.Elements),
		logging.Int("results", len(resp.Data)),
	)
	return resp.Data, nil
}

// Ping checks that the upstream API is reachable and accepts the key: one
// minimal summary request, one record, identifier field only. Used by the
// readiness probe.
func (c *Client) Ping(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return errors.New(errors.ErrCodeMissingAPIKey,
			"Materials Project API key is not set")
	}
	q := url.Values{}
	q.Set("elements", "Si")
	q.Set("_fields", "material_id")
	q.Set("_limit", "1")

	var resp summaryResponse
	return c.get(ctx, summaryPath, q, apiKey, &resp)
}

// ListProperties returns the summary property names the upstream can
// serve. The catalog is fixed by the summary document model, so no network
// round-trip is needed; the key check keeps the credential contract uniform
// across the Searcher interface.
func (c *Client) ListProperties(_ context.Context, apiKey string) ([]string, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingAPIKey,
			"Materials Project API key is not set")
	}
	out := make([]string, len(SummaryFields))
	copy(out, SummaryFields)
	return out, nil
}

// get performs one GET request and decodes the JSON response into out.
// Transport failures map to ErrCodeUpstreamUnavailable; HTTP error statuses
// map via classifyStatus with the upstream body carried as detail.
func (c *Client) get(ctx context.Context, path string, q url.Values, apiKey string, out interface{}) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "cannot build upstream request")
	}
	httpReq.Header.Set("X-API-KEY", apiKey)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUpstreamUnavailable,
			"materials API unreachable")
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUpstreamUnavailable,
			"reading materials API response failed")
	}

	c.logger.Debug("upstream request",
		logging.String("path", path),
		logging.Int("status", httpResp.StatusCode),
		logging.Duration("elapsed", time.Since(start)),
	)

	if httpResp.StatusCode != http.StatusOK {
		return classifyStatus(httpResp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization,
			"cannot decode materials API response")
	}
	return nil
}

// classifyStatus maps an upstream HTTP error status to the error taxonomy:
// auth and validation failures are rejections, everything else is an
// availability failure. The upstream detail is carried verbatim.
func classifyStatus(status int, body []byte) error {
	detail := upstreamDetail(body)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden,
		http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.Newf(errors.ErrCodeUpstreamRejected,
			"materials API rejected the request (HTTP %d)", status).WithDetail(detail)
	default:
		return errors.Newf(errors.ErrCodeUpstreamUnavailable,
			"materials API returned HTTP %d", status).WithDetail(detail)
	}
}

// upstreamDetail extracts a human-readable message from an upstream error
// body. FastAPI-style {"detail": ...} payloads are unwrapped; anything else
// is passed through truncated.
func upstreamDetail(body []byte) string {
	var envelope struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != nil {
		switch d := envelope.Detail.(type) {
		case string:
			return d
		default:
			if raw, err := json.Marshal(d); err == nil {
				return string(raw)
			}
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyDetail {
		s = s[:maxBodyDetail]
	}
	return s
}
