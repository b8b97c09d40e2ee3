// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bonial-oss/threat-intel/internal/api"
	"github.com/bonial-oss/threat-intel/internal/app"
	"github.com/bonial-oss/threat-intel/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code with an optional message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options holds all CLI flag values.
type Options struct {
	APIURL     string
	Verbose    bool
	Format     string
	DaysBack   int
	MaxResults int
}

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &Options{
		DaysBack:   config.DefaultDaysBack,
		MaxResults: config.DefaultMaxResults,
	}

	cmd := &cobra.Command{
		Use:     "threat-intel",
		Short:   "Query a threat-intelligence RAG backend about CVEs",
		Version: Version,
		Long: `threat-intel is a terminal front-end for a threat-intelligence backend.
It triggers CVE ingestion and asks free-text questions, rendering the
generated answer together with the CVEs it was based on.

Without a subcommand an interactive shell is started.

Usage:
  threat-intel query "Show me critical iOS vulnerabilities"
  threat-intel ingest --days-back 7
  THREAT_INTEL_API_URL=http://intel:8000 threat-intel`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return resolveConfig(opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.APIURL, "api-url", "", "Backend base URL (default $"+config.APIURLEnv+" or "+config.DefaultAPIURL+")")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Print backend error details to stderr")

	cmd.AddCommand(
		newIngestCommand(opts),
		newQueryCommand(opts),
		newHealthCommand(opts),
		newShellCommand(opts),
	)

	return cmd
}

// resolveConfig fills the backend URL from the environment unless
// --api-url was given. Ingest sizes come from flags only.
func resolveConfig(opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("loading configuration: %v", err)}
	}
	if opts.APIURL == "" {
		opts.APIURL = cfg.APIURL
	}
	return nil
}

// newApp builds the application shell for the resolved options.
func newApp(opts *Options, notifier app.Notifier, onChange func(app.State)) *app.App {
	return app.New(api.NewClient(opts.APIURL), app.Options{
		DaysBack:   opts.DaysBack,
		MaxResults: opts.MaxResults,
		Notifier:   notifier,
		OnChange:   onChange,
	})
}

// printDetail writes the backend's error detail when verbose output is on.
func printDetail(w io.Writer, opts *Options, err error) {
	if !opts.Verbose || err == nil {
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		fmt.Fprintf(w, "detail: %s\n", apiErr.Detail)
	}
}
