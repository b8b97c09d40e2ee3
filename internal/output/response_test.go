// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonial-oss/threat-intel/internal/types"
)

func makeTestResult() *types.QueryResult {
	return &types.QueryResult{
		Answer: "Several remote code execution flaws were published this month.",
		Sources: []types.Source{
			{CVEID: "CVE-2024-1234", Severity: "CRITICAL", CVSSScore: types.NewCVSSScore(9.8)},
			{CVEID: "CVE-2023-5678", Severity: "HIGH", CVSSScore: types.NewCVSSScore(7.5)},
			{CVEID: "CVE-2023-0001", Severity: "MEDIUM", CVSSScore: types.NewCVSSScore(5)},
		},
	}
}

func TestWriteResponse_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, nil, Config{}))
	assert.Empty(t, buf.String())
}

func TestWriteResponse_NoSources(t *testing.T) {
	tests := []struct {
		name    string
		sources []types.Source
	}{
		{"nil sources", nil},
		{"empty sources", []types.Source{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteResponse(&buf, &types.QueryResult{Answer: "X", Sources: tc.sources}, Config{}))

			output := buf.String()
			assert.Contains(t, output, "Analysis")
			assert.Contains(t, output, "X")
			assert.NotContains(t, output, "Sources")
			assert.NotContains(t, output, "┌")
		})
	}
}

func TestWriteResponse_SingleSource(t *testing.T) {
	result := &types.QueryResult{
		Answer: "X",
		Sources: []types.Source{
			{CVEID: "CVE-2024-1234", Severity: "CRITICAL", CVSSScore: types.NewCVSSScore(9.8)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, result, Config{}))

	output := buf.String()
	assert.Contains(t, output, "Sources")
	for _, col := range []string{"CVE", "Severity", "CVSS"} {
		assert.Contains(t, output, col)
	}
	assert.Contains(t, output, "CVE-2024-1234")
	assert.Contains(t, output, "CRITICAL")
	assert.Contains(t, output, "9.8")
	assert.Equal(t, 1, strings.Count(output, "CVE-2024-1234"))
	assert.Equal(t, criticalColor, severityColor("CRITICAL"))
}

func TestWriteResponse_PreservesOrder(t *testing.T) {
	result := makeTestResult()
	// Reverse severity order on purpose; rendering must not sort.
	result.Sources[0], result.Sources[2] = result.Sources[2], result.Sources[0]

	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, result, Config{}))

	assertOrder(t, buf.String(), "CVE-2023-0001", "CVE-2023-5678", "CVE-2024-1234")
}

func TestWriteResponse_ScoreVerbatim(t *testing.T) {
	var result types.QueryResult
	require.NoError(t, json.Unmarshal([]byte(`{
		"answer": "A",
		"sources": [
			{"cve_id": "CVE-2024-0002", "severity": "LOW", "cvss_score": "3.10"},
			{"cve_id": "CVE-2024-0003", "severity": "HIGH", "cvss_score": 8.25}
		]
	}`), &result))

	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, &result, Config{}))

	output := buf.String()
	assert.Contains(t, output, "3.10")
	assert.Contains(t, output, "8.25")
	assert.NotContains(t, output, "8.3")
}

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		severity string
		want     rgb
	}{
		{"CRITICAL", criticalColor},
		{"HIGH", highColor},
		{"MEDIUM", mediumColor},
		{"LOW", defaultColor},
		{"UNKNOWN", defaultColor},
		{"", defaultColor},
		{"critical", defaultColor},
	}

	for _, tc := range tests {
		t.Run(tc.severity, func(t *testing.T) {
			assert.Equal(t, tc.want, severityColor(tc.severity))
		})
	}
}

func TestWriteResponse_TerminalBadges(t *testing.T) {
	result := &types.QueryResult{
		Answer: "X",
		Sources: []types.Source{
			{CVEID: "CVE-2024-1234", Severity: "CRITICAL", CVSSScore: types.NewCVSSScore(9.8)},
			{CVEID: "CVE-2024-9999", Severity: "UNKNOWN", CVSSScore: types.NewCVSSScore(0)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, result, Config{IsTerminal: true}))

	output := buf.String()
	assert.Contains(t, output, "\x1b[")
	assert.Contains(t, output, "48;2;220;53;69", "CRITICAL badge uses the critical background")
	assert.Contains(t, output, "48;2;40;167;69", "UNKNOWN badge uses the default background")
	assert.NotContains(t, output, "48;2;253;126;20")
	assert.Contains(t, output, "9.8")
}

func TestWriteResponse_PlainHasNoANSI(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponse(&buf, makeTestResult(), Config{}))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestWriteJSON_QueryResult(t *testing.T) {
	var result types.QueryResult
	in := `{"answer":"A <b>","sources":[{"cve_id":"CVE-2024-1","severity":"HIGH","cvss_score":"7.5"}]}`
	require.NoError(t, json.Unmarshal([]byte(in), &result))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	assert.JSONEq(t, in, buf.String())
	assert.Contains(t, buf.String(), "<b>", "HTML must not be escaped")
	assert.Contains(t, buf.String(), "\n  ")
}

// assertOrder checks that the given strings appear in order in the output.
func assertOrder(t *testing.T, output string, items ...string) {
	t.Helper()
	last := -1
	for _, item := range items {
		idx := strings.Index(output, item)
		require.NotEqual(t, -1, idx, "%s not found in output", item)
		assert.Greater(t, idx, last, "%s should appear after previous item", item)
		last = idx
	}
}
