// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bonial-oss/threat-intel/internal/input"
	"github.com/bonial-oss/threat-intel/internal/output"
)

func newQueryCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <text...>",
		Short: "Ask the backend a question about security threats",
		Long: `Ask the backend a question about security threats. All arguments are
joined with single spaces. A blank query is ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json")

	return cmd
}

func runQuery(cmd *cobra.Command, opts *Options, query string) error {
	if opts.Format != "table" && opts.Format != "json" {
		return &ExitError{
			Code:    2,
			Message: fmt.Sprintf("unsupported output format: %s", opts.Format),
		}
	}

	a := newApp(opts, nil, nil)

	q := input.NewQueryInput(a)
	q.SetDraft(query)
	if !q.Submit(cmd.Context()) {
		return nil
	}

	state := a.State()
	if state.Cause != nil {
		printDetail(cmd.ErrOrStderr(), opts, state.Cause)
		return &ExitError{Code: 1, Message: state.Error}
	}

	w := cmd.OutOrStdout()
	switch opts.Format {
	case "json":
		return output.WriteJSON(w, state.Response)
	default:
		return output.WriteResponse(w, state.Response, output.Config{
			IsTerminal: output.IsOutputToTerminal(w),
		})
	}
}
