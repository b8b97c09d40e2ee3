// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bonial-oss/threat-intel/internal/api"
)

func newHealthCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := api.NewClient(opts.APIURL)
			status, err := client.Health(cmd.Context())
			if err != nil {
				printDetail(cmd.ErrOrStderr(), opts, err)
				return &ExitError{Code: 1, Message: fmt.Sprintf("backend at %s is not reachable: %v", client.BaseURL(), err)}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", client.BaseURL(), status.Status)
			return nil
		},
	}
}
