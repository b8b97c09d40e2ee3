// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	aqtable "github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/bonial-oss/threat-intel/internal/types"
)

// Config controls how results are rendered.
type Config struct {
	IsTerminal bool // true when output goes to a terminal (enables ANSI styling)
}

// IsOutputToTerminal returns true if the writer is stdout connected to a
// character device (TTY) and colors have not been disabled via NO_COLOR.
func IsOutputToTerminal(output io.Writer) bool {
	return output == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) && !color.NoColor
}

// rgb is a badge background color.
type rgb struct {
	R, G, B int
}

var (
	criticalColor = rgb{0xdc, 0x35, 0x45}
	highColor     = rgb{0xfd, 0x7e, 0x14}
	mediumColor   = rgb{0xff, 0xc1, 0x07}
	defaultColor  = rgb{0x28, 0xa7, 0x45}
)

// severityColor maps a severity to its badge color. Anything other than
// CRITICAL, HIGH or MEDIUM gets the default color.
func severityColor(severity string) rgb {
	switch severity {
	case "CRITICAL":
		return criticalColor
	case "HIGH":
		return highColor
	case "MEDIUM":
		return mediumColor
	default:
		return defaultColor
	}
}

// severityBadge returns the severity wrapped in a colored badge.
func severityBadge(severity string) string {
	c := severityColor(severity)
	badge := color.BgRGB(c.R, c.G, c.B).Add(color.FgHiWhite, color.Bold)
	badge.EnableColor()
	return badge.Sprintf(" %s ", severity)
}

// WriteResponse renders a query result: the answer and, when there are any,
// its sources in the order the backend returned them. A nil result renders
// nothing.
func WriteResponse(w io.Writer, result *types.QueryResult, cfg Config) error {
	if result == nil {
		return nil
	}

	writeHeading(w, "Analysis", cfg.IsTerminal)
	if _, err := fmt.Fprintln(w, result.Answer); err != nil {
		return fmt.Errorf("writing answer: %w", err)
	}

	if len(result.Sources) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	writeHeading(w, "Sources", cfg.IsTerminal)
	writeSourceTable(w, result.Sources, cfg)
	return nil
}

// writeHeading underlines a section title.
func writeHeading(w io.Writer, title string, isTerminal bool) {
	if isTerminal {
		_ = tml.Fprintf(w, "<underline><bold>%s</bold></underline>\n", title)
		return
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(title)))
}

// writeSourceTable renders one row per source card.
func writeSourceTable(w io.Writer, sources []types.Source, cfg Config) {
	tw := aqtable.New(w)
	if cfg.IsTerminal {
		tw.SetHeaderStyle(aqtable.StyleBold)
		tw.SetLineStyle(aqtable.StyleDim)
	}
	tw.SetBorders(true)
	tw.SetRowLines(true)
	tw.SetHeaders("CVE", "Severity", "CVSS")
	for i := range sources {
		tw.AddRow(sourceCells(&sources[i], cfg)...)
	}
	tw.Render()
}

// sourceCells returns the cells for a single source. The score is shown
// as received, without rounding.
func sourceCells(s *types.Source, cfg Config) []string {
	severity := s.Severity
	if cfg.IsTerminal {
		severity = severityBadge(severity)
	}
	return []string{s.CVEID, severity, s.CVSSScore.String()}
}
