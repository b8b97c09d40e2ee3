// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bonial-oss/threat-intel/internal/app"
	"github.com/bonial-oss/threat-intel/internal/input"
	"github.com/bonial-oss/threat-intel/internal/output"
)

const clearScreen = "\x1b[H\x1b[2J"

func newShellCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session (default)",
		Long: `Start an interactive session. Every line is sent as a query; type
` + output.IngestCommand + ` to ingest the latest CVEs and ` + output.QuitCommand + ` to leave.
Ingestion runs in the background while queries are answered. Queries typed
while another one is loading are queued and sent in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}
}

// view serializes writes of the interactive session to its output.
type view struct {
	mu     sync.Mutex
	w      io.Writer
	cfg    output.Config
	query  *input.QueryInput
	notice string
}

func (v *view) render(s app.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cfg.IsTerminal {
		fmt.Fprint(v.w, clearScreen)
	}
	_ = output.WriteScreen(v.w, output.Screen{
		Notice:    v.notice,
		Ingesting: s.Ingesting,
		Loading:   s.Loading,
		Error:     s.Error,
		Response:  s.Response,
	}, v.cfg)
	if v.cfg.IsTerminal {
		fmt.Fprintf(v.w, "\n%s\n[%s] > ", input.Placeholder, v.query.ButtonLabel())
	}
}

// Notify keeps the ingest confirmation on screen until the next action.
// The app redraws right after notifying, which is when it shows up.
func (v *view) Notify(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = msg
}

func (v *view) clearNotice() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notice = ""
}

// readLines feeds stdin lines into a channel until EOF or stop is closed.
func readLines(r io.Reader, stop <-chan struct{}) (<-chan string, func() error) {
	lines := make(chan string)
	var scanErr error
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		scanErr = scanner.Err()
	}()
	// Only valid once lines is closed.
	return lines, func() error { return scanErr }
}

func runShell(cmd *cobra.Command, opts *Options) error {
	w := cmd.OutOrStdout()
	v := &view{w: w, cfg: output.Config{IsTerminal: output.IsOutputToTerminal(w)}}

	g, ctx := errgroup.WithContext(cmd.Context())

	// inflight is closed when the running query resolves; nil when idle.
	// Only touched from this goroutine.
	var inflight chan struct{}

	var q *input.QueryInput
	a := newApp(opts, v, func(s app.State) {
		q.SetLoading(s.Loading)
		v.render(s)
	})
	q = input.NewQueryInput(input.QueryHandlerFunc(func(ctx context.Context, query string) {
		done := make(chan struct{})
		inflight = done
		q.SetLoading(true)
		g.Go(func() error {
			defer close(done)
			printDetail(cmd.ErrOrStderr(), opts, a.Query(ctx, query))
			return nil
		})
	}))
	v.query = q

	v.render(a.State())

	stop := make(chan struct{})
	defer close(stop)
	lines, scanErr := readLines(cmd.InOrStdin(), stop)

	var ingesting atomic.Bool
	var pending []string
	for {
		if inflight == nil && len(pending) > 0 {
			line := pending[0]
			pending = pending[1:]
			v.clearNotice()
			q.ReadLine(line)
			q.Submit(ctx)
			continue
		}
		if lines == nil && inflight == nil {
			break
		}

		select {
		case <-inflight:
			inflight = nil
		case <-ctx.Done():
			return g.Wait()
		case line, ok := <-lines:
			if !ok {
				lines = nil
				if err := scanErr(); err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				continue
			}
			switch strings.TrimSpace(line) {
			case "":
			case output.QuitCommand:
				// Queries typed before quitting still run.
				lines = nil
			case output.IngestCommand:
				if !ingesting.CompareAndSwap(false, true) {
					fmt.Fprintln(cmd.ErrOrStderr(), "ingestion already running, ignored")
					continue
				}
				v.clearNotice()
				g.Go(func() error {
					defer ingesting.Store(false)
					printDetail(cmd.ErrOrStderr(), opts, a.Ingest(ctx))
					return nil
				})
			default:
				if inflight != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "query queued until the current one finishes")
				}
				pending = append(pending, line)
			}
		}
	}

	return g.Wait()
}
