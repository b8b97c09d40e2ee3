// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"context"
	"strings"
	"sync"
)

const (
	Placeholder = "Ask about security threats... (e.g., 'Show me critical iOS vulnerabilities')"

	searchLabel    = "Search"
	searchingLabel = "Searching..."
)

// QueryHandler receives submitted queries.
type QueryHandler interface {
	HandleQuery(ctx context.Context, query string)
}

// QueryHandlerFunc adapts a function to QueryHandler.
type QueryHandlerFunc func(ctx context.Context, query string)

func (f QueryHandlerFunc) HandleQuery(ctx context.Context, query string) { f(ctx, query) }

// QueryInput holds the draft query typed by the user. While loading is set
// the input is disabled and submissions are ignored.
type QueryInput struct {
	handler QueryHandler

	mu      sync.Mutex
	draft   string
	loading bool
}

// NewQueryInput creates an input that forwards submissions to handler.
func NewQueryInput(handler QueryHandler) *QueryInput {
	return &QueryInput{handler: handler}
}

// SetDraft replaces the draft query.
func (q *QueryInput) SetDraft(draft string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.draft = draft
}

// ReadLine sets the draft from one line of terminal input. Only the line
// terminator is removed.
func (q *QueryInput) ReadLine(line string) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	q.SetDraft(line)
}

func (q *QueryInput) Draft() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.draft
}

// SetLoading is controlled by the owner of the request.
func (q *QueryInput) SetLoading(loading bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading = loading
}

// Disabled reports whether the input and its submit control are disabled.
func (q *QueryInput) Disabled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}

// ButtonLabel returns the submit control's label.
func (q *QueryInput) ButtonLabel() string {
	if q.Disabled() {
		return searchingLabel
	}
	return searchLabel
}

// Submit forwards the draft to the handler and reports whether it did.
// A blank draft is dropped silently. The draft is passed on untrimmed;
// trimming only decides whether it is blank.
func (q *QueryInput) Submit(ctx context.Context) bool {
	q.mu.Lock()
	draft, loading := q.draft, q.loading
	q.mu.Unlock()

	if loading || strings.TrimSpace(draft) == "" {
		return false
	}
	q.handler.HandleQuery(ctx, draft)
	return true
}
