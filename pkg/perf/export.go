// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package perf

import (
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// DataFrame converts the session to a table with one row per (case, kind), and one row for each
// failed case with the "error" column set.
//
// Durations are in seconds.
func (s *Session) DataFrame() dataframe.DataFrame {
	var (
		sessions, names, kinds, errs []string
		rows, cols, runs             []int
		total, avg, minT, maxT, med  []float64
		gOpsPerSec                   []float64
	)
	addRow := func(c Case, kind string, res *Results, err error) {
		sessions = append(sessions, s.ID.String())
		names = append(names, c.String())
		rows = append(rows, c.Rows)
		cols = append(cols, c.Cols)
		kinds = append(kinds, kind)
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		errs = append(errs, errMsg)
		if res == nil {
			res = &Results{}
		}
		runs = append(runs, res.NumRunning)
		total = append(total, res.TotalTime.Seconds())
		avg = append(avg, res.Average().Seconds())
		minT = append(minT, res.Min().Seconds())
		maxT = append(maxT, res.Max().Seconds())
		med = append(med, res.Median().Seconds())
		gOpsPerSec = append(gOpsPerSec, res.OpsPerSecond()/1e9)
	}
	for _, report := range s.Reports {
		if report.Err != nil {
			addRow(report.Case, "", nil, report.Err)
			continue
		}
		for _, res := range report.Results {
			addRow(report.Case, res.Kind.String(), res, nil)
		}
	}
	return dataframe.New(
		series.New(sessions, series.String, "session"),
		series.New(names, series.String, "case"),
		series.New(rows, series.Int, "rows"),
		series.New(cols, series.Int, "cols"),
		series.New(kinds, series.String, "kind"),
		series.New(runs, series.Int, "runs"),
		series.New(total, series.Float, "total_s"),
		series.New(avg, series.Float, "avg_s"),
		series.New(minT, series.Float, "min_s"),
		series.New(maxT, series.Float, "max_s"),
		series.New(med, series.Float, "median_s"),
		series.New(gOpsPerSec, series.Float, "gops_per_s"),
		series.New(errs, series.String, "error"),
	)
}

// WriteCSV writes the session's DataFrame as CSV, with a header line.
func WriteCSV(w io.Writer, session *Session) error {
	df := session.DataFrame()
	if df.Err != nil {
		return errors.Wrap(df.Err, "building results table")
	}
	return errors.Wrap(df.WriteCSV(w), "writing results as CSV")
}
