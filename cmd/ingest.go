// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bonial-oss/threat-intel/internal/app"
	"github.com/bonial-oss/threat-intel/internal/config"
)

func newIngestCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Trigger ingestion of recently published CVEs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIngest(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.DaysBack, "days-back", config.DefaultDaysBack, "Ingest CVEs published within this many days")
	flags.IntVar(&opts.MaxResults, "max-results", config.DefaultMaxResults, "Maximum number of CVEs to ingest")

	return cmd
}

func runIngest(cmd *cobra.Command, opts *Options) error {
	if opts.DaysBack <= 0 || opts.MaxResults <= 0 {
		return &ExitError{Code: 2, Message: "--days-back and --max-results must be positive"}
	}

	w := cmd.OutOrStdout()
	notifier := app.NotifierFunc(func(msg string) {
		fmt.Fprintln(w, msg)
	})
	a := newApp(opts, notifier, nil)

	if err := a.Ingest(cmd.Context()); err != nil {
		printDetail(cmd.ErrOrStderr(), opts, err)
		return &ExitError{Code: 1, Message: a.State().Error}
	}
	return nil
}
