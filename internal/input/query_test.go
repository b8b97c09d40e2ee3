// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	queries []string
}

func (r *recordingHandler) HandleQuery(_ context.Context, query string) {
	r.queries = append(r.queries, query)
}

func TestSubmit_BlankDraftIsDropped(t *testing.T) {
	tests := []struct {
		name  string
		draft string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n  \t"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &recordingHandler{}
			q := NewQueryInput(h)
			q.SetDraft(tc.draft)

			assert.False(t, q.Submit(context.Background()))
			assert.Empty(t, h.queries)
		})
	}
}

func TestSubmit_ForwardsDraft(t *testing.T) {
	h := &recordingHandler{}
	q := NewQueryInput(h)
	q.SetDraft("log4j RCE")

	assert.True(t, q.Submit(context.Background()))
	assert.Equal(t, []string{"log4j RCE"}, h.queries)
}

func TestSubmit_ForwardsUntrimmedDraft(t *testing.T) {
	h := &recordingHandler{}
	q := NewQueryInput(h)
	q.SetDraft("  critical iOS vulnerabilities  ")

	assert.True(t, q.Submit(context.Background()))
	assert.Equal(t, []string{"  critical iOS vulnerabilities  "}, h.queries)
}

func TestSubmit_DisabledWhileLoading(t *testing.T) {
	h := &recordingHandler{}
	q := NewQueryInput(h)
	q.SetDraft("log4j RCE")
	q.SetLoading(true)

	assert.True(t, q.Disabled())
	assert.Equal(t, "Searching...", q.ButtonLabel())
	assert.False(t, q.Submit(context.Background()))
	assert.Empty(t, h.queries)

	q.SetLoading(false)
	assert.False(t, q.Disabled())
	assert.Equal(t, "Search", q.ButtonLabel())
	assert.True(t, q.Submit(context.Background()))
	assert.Equal(t, []string{"log4j RCE"}, h.queries)
}

func TestSubmit_KeepsDraft(t *testing.T) {
	q := NewQueryInput(QueryHandlerFunc(func(context.Context, string) {}))
	q.SetDraft("openssl")

	q.Submit(context.Background())
	assert.Equal(t, "openssl", q.Draft())
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"log4j RCE\n", "log4j RCE"},
		{"windows line\r\n", "windows line"},
		{"  padded  \n", "  padded  "},
		{"no terminator", "no terminator"},
	}

	for _, tc := range tests {
		q := NewQueryInput(QueryHandlerFunc(func(context.Context, string) {}))
		q.ReadLine(tc.line)
		assert.Equal(t, tc.want, q.Draft())
	}
}
