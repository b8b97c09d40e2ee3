// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/bonial-oss/threat-intel/internal/types"
)

const (
	ingestErrorPrefix = "Failed to ingest CVEs: "
	queryErrorPrefix  = "Failed to query: "
)

// Client is the subset of the backend API the shell drives.
type Client interface {
	IngestCVEs(ctx context.Context, daysBack, maxResults int) (*types.IngestResult, error)
	QueryThreats(ctx context.Context, query string) (*types.QueryResult, error)
}

// Notifier delivers a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// State is the transient UI state. The flags are independent and may be
// combined, e.g. ingesting while a query is loading.
type State struct {
	Ingesting bool
	Loading   bool
	// Error is the banner text; empty when there is none.
	Error string
	// Cause is the failure behind Error.
	Cause    error
	Response *types.QueryResult
}

// Options configures an App.
type Options struct {
	DaysBack   int
	MaxResults int
	// DiscardStale drops the result of a query that was superseded by a
	// newer one. When false the query that resolves last wins.
	DiscardStale bool
	Notifier     Notifier
	// OnChange receives a snapshot after every state change. It is called
	// with the state lock held and must not call back into the App.
	OnChange func(State)
}

// App owns the UI state and runs the ingest and query actions.
type App struct {
	client Client
	opts   Options

	mu    sync.Mutex
	state State
	seq   uint64
}

// New creates an App backed by client.
func New(client Client, opts Options) *App {
	return &App{client: client, opts: opts}
}

// State returns a snapshot of the current state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// update applies fn to the state and publishes the result.
func (a *App) update(fn func(s *State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.state)
	if a.opts.OnChange != nil {
		a.opts.OnChange(a.state)
	}
}

// Ingest triggers backend ingestion. On success the user is notified with
// the ingested count; on failure the error banner is set. The response and
// loading flag of a concurrent or previous query are left alone.
func (a *App) Ingest(ctx context.Context) error {
	a.update(func(s *State) {
		s.Ingesting = true
		s.Error = ""
		s.Cause = nil
	})

	result, err := a.client.IngestCVEs(ctx, a.opts.DaysBack, a.opts.MaxResults)
	if err != nil {
		a.update(func(s *State) {
			s.Error = ingestErrorPrefix + err.Error()
			s.Cause = err
			s.Ingesting = false
		})
		return err
	}

	if a.opts.Notifier != nil {
		a.opts.Notifier.Notify(fmt.Sprintf("Successfully ingested %d CVEs", result.Count))
	}
	a.update(func(s *State) { s.Ingesting = false })
	return nil
}

// Query clears the previous response and error, then runs query against the
// backend.
func (a *App) Query(ctx context.Context, query string) error {
	var token uint64
	a.update(func(s *State) {
		a.seq++
		token = a.seq
		s.Loading = true
		s.Error = ""
		s.Cause = nil
		s.Response = nil
	})

	result, err := a.client.QueryThreats(ctx, query)

	a.update(func(s *State) {
		if a.opts.DiscardStale && token != a.seq {
			return
		}
		if err != nil {
			s.Error = queryErrorPrefix + err.Error()
			s.Cause = err
		} else {
			s.Response = result
		}
		s.Loading = false
	})
	return err
}

// HandleQuery runs Query; the outcome is reported through the state.
func (a *App) HandleQuery(ctx context.Context, query string) {
	_ = a.Query(ctx, query)
}
