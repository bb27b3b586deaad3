package client

import (
	"context"
	"net/http"
)

// QueryRequest is one natural-language search.
type QueryRequest struct {
	Query      string   `json:"query"`
	Properties []string `json:"properties,omitempty"`
	MaxResults int      `json:"max_results,omitempty"`
}

// Table is the projected display table of a query result.
type Table struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// QueryResult is the outcome of one natural-language query.
type QueryResult struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Elements []string `json:"extracted_elements"`
	Criteria string   `json:"criteria,omitempty"`
	Table    Table    `json:"table"`
}

// NoResults reports whether the query yielded nothing (either no
// recognizable chemistry or an empty search).
func (r *QueryResult) NoResults() bool {
	return r.Status == "no_results"
}

// Query runs the full natural-language pipeline on the server.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	var res QueryResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/query", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExtractResult is the server's interpretation of one query.
type ExtractResult struct {
	Elements       []string `json:"extracted_elements"`
	Criteria       string   `json:"criteria"`
	ChemicalSystem string   `json:"chemical_system"`
}

// Extract interprets a query without searching.
func (c *Client) Extract(ctx context.Context, queryText string) (*ExtractResult, error) {
	var res ExtractResult
	body := map[string]string{"query": queryText}
	if err := c.do(ctx, http.MethodPost, "/api/v1/extract", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchRequest is a structured materials search.
type SearchRequest struct {
	Elements []string `json:"elements,omitempty"`
	Formula  string   `json:"formula,omitempty"`
	Chemsys  string   `json:"chemsys,omitempty"`
	Fields   []string `json:"fields,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// SearchResult holds raw material records.
type SearchResult struct {
	Count     int                      `json:"count"`
	Materials []map[string]interface{} `json:"materials"`
}

// SearchMaterials proxies a structured search to the materials database.
func (c *Client) SearchMaterials(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	var res SearchResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/materials/search", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Properties lists the display property names available for queries.
func (c *Client) Properties(ctx context.Context) ([]string, error) {
	var res struct {
		Properties []string `json:"properties"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/materials/properties", nil, &res); err != nil {
		return nil, err
	}
	return res.Properties, nil
}

// Health reports the server's liveness status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	var res struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &res); err != nil {
		return "", err
	}
	return res.Status, nil
}
