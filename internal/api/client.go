// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bonial-oss/threat-intel/internal/types"
)

const (
	ingestPath = "/api/ingest"
	queryPath  = "/api/query"
	healthPath = "/api/health"

	maxResponseSize = 10 * 1024 * 1024 // 10 MB
	maxErrorBody    = 64 * 1024
)

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	StatusCode int
	// Detail is the backend's "detail" field, if the error body had one.
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Client talks to the threat-intelligence backend. Every call is a single
// attempt: there is no retry and no client-side timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// BaseURL returns the backend URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IngestCVEs asks the backend to pull and index CVEs published in the last
// daysBack days, at most maxResults of them.
func (c *Client) IngestCVEs(ctx context.Context, daysBack, maxResults int) (*types.IngestResult, error) {
	var result types.IngestResult
	req := types.IngestRequest{DaysBack: daysBack, MaxResults: maxResults}
	if err := c.do(ctx, http.MethodPost, ingestPath, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// QueryThreats sends the query string as is and returns the answer.
func (c *Client) QueryThreats(ctx context.Context, query string) (*types.QueryResult, error) {
	var result types.QueryResult
	if err := c.do(ctx, http.MethodPost, queryPath, types.QueryRequest{Query: query}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health reports the backend's health status.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var status types.HealthStatus
	if err := c.do(ctx, http.MethodGet, healthPath, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do performs one JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// newAPIError drains the error body and extracts a FastAPI-style detail.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_, _ = io.Copy(io.Discard, resp.Body)

	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		apiErr.Detail = s
	} else {
		// Validation errors carry a structured detail.
		apiErr.Detail = string(body.Detail)
	}
	return apiErr
}
