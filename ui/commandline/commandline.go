// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package commandline contains convenience UI tools to report performance sessions on the command line.
package commandline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/horizontal/pkg/perf"
	"github.com/pkg/errors"
)

// PrintSession writes a table with one row per (case, run kind) of the session, preceded by a
// title with the session ID and host description. Failed cases are highlighted in red.
func PrintSession(w io.Writer, session *perf.Session) error {
	t := newTableWithReds(lipgloss.Left, lipgloss.Right, lipgloss.Left, lipgloss.Right)
	t.Table.Headers("Case", "Elements", "Kind", "Runs", "Average", "Median", "Min", "Max", "Num Ops", "GOps/Sec")
	for _, report := range session.Reports {
		elements := humanize.Comma(int64(report.Case.Rows) * int64(report.Case.Cols))
		if report.Err != nil {
			t.Row(true, report.Case.String(), elements, "failed", "-", "-", "-", "-", "-", "-", shortError(report.Err))
			continue
		}
		for _, res := range report.Results {
			t.Row(false,
				report.Case.String(),
				elements,
				res.Kind.String(),
				humanize.Comma(int64(res.NumRunning)),
				FormatDuration(res.Average()),
				FormatDuration(res.Median()),
				FormatDuration(res.Min()),
				FormatDuration(res.Max()),
				humanize.Comma(res.NumOps),
				fmt.Sprintf("%.2f", res.OpsPerSecond()/1e9),
			)
		}
	}
	title := titleStyle.Render(fmt.Sprintf("Session %s (%s, took %s)",
		session.ID, session.Host, FormatDuration(session.Duration)))
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, t.Table.Render())
	return errors.Wrap(err, "printing session report")
}

// shortError returns the last part of the error message, which is usually the most specific.
func shortError(err error) string {
	parts := strings.Split(err.Error(), ": ")
	const maxParts = 2
	if len(parts) > maxParts {
		parts = parts[len(parts)-maxParts:]
	}
	return strings.Join(parts, ": ")
}
