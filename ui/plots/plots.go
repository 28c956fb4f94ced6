// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package plots renders performance sessions as charts with gonum/plot.
package plots

import (
	"image/color"
	"slices"

	"github.com/gomlx/horizontal/pkg/perf"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"k8s.io/klog/v2"
)

// Default size of the saved plots.
var (
	DefaultWidth  = 12 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// kindColors used for each run kind.
var kindColors = map[perf.RunKind]color.Color{
	perf.RunKindTaskRun:     color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	perf.RunKindPipelineRun: color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

// ThroughputPoints extracts, for each run kind, the throughput in GOps/sec as a function of the
// number of matrix elements, sorted by the number of elements.
//
// Failed cases and results without a known number of operations are skipped.
func ThroughputPoints(session *perf.Session) map[perf.RunKind]plotter.XYs {
	points := make(map[perf.RunKind]plotter.XYs)
	for _, report := range session.Reports {
		if report.Err != nil {
			continue
		}
		elements := float64(report.Case.Rows) * float64(report.Case.Cols)
		for _, res := range report.Results {
			gOps := res.OpsPerSecond() / 1e9
			if gOps <= 0 {
				continue
			}
			points[res.Kind] = append(points[res.Kind], plotter.XY{X: elements, Y: gOps})
		}
	}
	for kind, xys := range points {
		slices.SortFunc(xys, func(a, b plotter.XY) int {
			switch {
			case a.X < b.X:
				return -1
			case a.X > b.X:
				return 1
			}
			return 0
		})
		points[kind] = xys
	}
	return points
}

// NewThroughputPlot creates a plot of the throughput of each run kind of the session.
func NewThroughputPlot(session *perf.Session) (*plot.Plot, error) {
	points := ThroughputPoints(session)
	if len(points) == 0 {
		return nil, errors.Errorf("session %s has no successful results with a known number of operations to plot", session.ID)
	}
	p := plot.New()
	p.Title.Text = "Matrix-vector product throughput"
	p.X.Label.Text = "matrix elements"
	p.Y.Label.Text = "GOps/sec"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	for _, kind := range perf.RunKindValues() {
		xys, found := points[kind]
		if !found {
			continue
		}
		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "creating line for %s", kind)
		}
		line.Color = kindColors[kind]
		scatter.Color = kindColors[kind]
		p.Add(line, scatter)
		p.Legend.Add(kind.String(), line, scatter)
	}
	p.Legend.Top = true
	return p, nil
}

// SaveThroughput saves the throughput plot of the session to filePath. The format is taken from
// the file extension (e.g. ".png", ".svg", ".pdf").
func SaveThroughput(session *perf.Session, filePath string) error {
	p, err := NewThroughputPlot(session)
	if err != nil {
		return err
	}
	if err = p.Save(DefaultWidth, DefaultHeight, filePath); err != nil {
		return errors.Wrapf(err, "saving throughput plot to %q", filePath)
	}
	klog.V(1).Infof("throughput plot saved to %q", filePath)
	return nil
}
