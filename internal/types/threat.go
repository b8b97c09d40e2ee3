// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// IngestRequest is the body of POST /api/ingest.
type IngestRequest struct {
	DaysBack   int `json:"days_back"`
	MaxResults int `json:"max_results"`
}

// IngestResult is the backend's answer to an ingest request.
type IngestResult struct {
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
}

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResult holds the generated answer and the CVEs it was built from.
// Sources may be absent.
type QueryResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources,omitempty"`
}

// Source is a single CVE referenced by an answer.
type Source struct {
	CVEID     string    `json:"cve_id"`
	Severity  string    `json:"severity"`
	CVSSScore CVSSScore `json:"cvss_score"`
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status string `json:"status"`
}

// CVSSScore is a CVSS score as sent by the backend. Some backends send a
// JSON number, others a string; both are accepted and String returns the
// value as it should be displayed.
type CVSSScore struct {
	raw json.RawMessage
}

// NewCVSSScore returns a numeric score.
func NewCVSSScore(v float64) CVSSScore {
	return CVSSScore{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// String formats a numeric score in its shortest form (9.0 becomes "9") and
// returns a string score verbatim. An absent score is "".
func (s CVSSScore) String() string {
	if len(s.raw) == 0 || bytes.Equal(s.raw, []byte("null")) {
		return ""
	}
	if s.raw[0] == '"' {
		var str string
		if err := json.Unmarshal(s.raw, &str); err != nil {
			return ""
		}
		return str
	}
	f, err := strconv.ParseFloat(string(s.raw), 64)
	if err != nil {
		return string(s.raw)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// UnmarshalJSON accepts a number, a string or null.
func (s *CVSSScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty cvss_score")
	}
	switch data[0] {
	case '"', 'n':
		var probe *string
		if err := json.Unmarshal(data, &probe); err != nil {
			return fmt.Errorf("invalid cvss_score %s: %w", data, err)
		}
	default:
		var probe float64
		if err := json.Unmarshal(data, &probe); err != nil {
			return fmt.Errorf("invalid cvss_score %s: %w", data, err)
		}
	}
	s.raw = append(s.raw[:0], data...)
	return nil
}

// MarshalJSON emits the score in the form it was received.
func (s CVSSScore) MarshalJSON() ([]byte, error) {
	if len(s.raw) == 0 {
		return []byte("null"), nil
	}
	return s.raw, nil
}
