// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"

	"github.com/aquasecurity/tml"
	"github.com/fatih/color"

	"github.com/bonial-oss/threat-intel/internal/types"
)

const (
	title       = "Threat Intelligence RAG"
	subtitle    = "Search and analyze cybersecurity vulnerabilities"
	loadingText = "Analyzing threats..."

	IngestCommand = ":ingest"
	QuitCommand   = ":quit"
)

// Screen is everything the interactive view shows at one point in time.
type Screen struct {
	Notice    string
	Ingesting bool
	Loading   bool
	Error     string
	Response  *types.QueryResult
}

// IngestLabel returns the label of the ingest trigger.
func IngestLabel(ingesting bool) string {
	if ingesting {
		return "Ingesting..."
	}
	return "Ingest Latest CVEs"
}

// WriteHeader writes the title block and the ingest trigger.
func WriteHeader(w io.Writer, ingesting bool, cfg Config) {
	if cfg.IsTerminal {
		_ = tml.Fprintf(w, "<bold>%s</bold>\n<dim>%s</dim>\n", title, subtitle)
	} else {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, subtitle)
	}
	fmt.Fprintf(w, "[%s] %s\n\n", IngestCommand, IngestLabel(ingesting))
}

// WriteError writes the error banner. Nothing is written for an empty message.
func WriteError(w io.Writer, msg string, cfg Config) {
	if msg == "" {
		return
	}
	if cfg.IsTerminal {
		banner := color.BgRGB(0xf8, 0xd7, 0xda).Add(color.Bold)
		banner.AddRGB(0x72, 0x1c, 0x24)
		banner.EnableColor()
		fmt.Fprintln(w, banner.Sprintf(" %s ", msg))
		return
	}
	fmt.Fprintln(w, msg)
}

// WriteScreen renders the full view: header, ingest notice, error banner,
// loading indicator and the last response.
func WriteScreen(w io.Writer, s Screen, cfg Config) error {
	WriteHeader(w, s.Ingesting, cfg)
	if s.Notice != "" {
		fmt.Fprintln(w, s.Notice)
	}
	WriteError(w, s.Error, cfg)
	if s.Loading {
		if cfg.IsTerminal {
			_ = tml.Fprintf(w, "<dim>%s</dim>\n", loadingText)
		} else {
			fmt.Fprintln(w, loadingText)
		}
	}
	return WriteResponse(w, s.Response, cfg)
}
