// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"fmt"
	"io"
	"os"

	"github.com/gomlx/horizontal/pkg/perf"
	"github.com/schollz/progressbar/v3"
)

// ProgressbarStyle to use. Defaults to the ASCII version.
// Consider "progressbar.ThemeUnicode" for a prettier version.
// But it requires some of the graphical symbols to be supported.
var ProgressbarStyle = progressbar.ThemeASCII

// ProgressBar displays the progress of a perf.Suite, one step per case.
type ProgressBar struct {
	bar      *progressbar.ProgressBar
	numCases int
	numDone  int
	failures int
}

// AttachProgressBar creates a ProgressBar for the cases of suite, writing to w (os.Stderr if nil),
// and registers it as an OnCase hook.
func AttachProgressBar(suite *perf.Suite, w io.Writer) *ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	pBar := &ProgressBar{numCases: len(suite.Cases)}
	pBar.bar = progressbar.NewOptions(pBar.numCases,
		progressbar.OptionSetDescription("Measuring"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("cases"),
		progressbar.OptionSetTheme(ProgressbarStyle),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(w) }),
	)
	suite.AddOnCase(pBar.onCase)
	return pBar
}

func (pBar *ProgressBar) onCase(index int, report *perf.Report) {
	pBar.numDone++
	if report.Err != nil {
		pBar.failures++
	}
	description := fmt.Sprintf("Measured %s", report.Case)
	if pBar.failures > 0 {
		description = fmt.Sprintf("%s (%d failed)", description, pBar.failures)
	}
	pBar.bar.Describe(description)
	_ = pBar.bar.Add(1)
}

// Done returns the number of cases reported so far.
func (pBar *ProgressBar) Done() int { return pBar.numDone }

// Failures returns the number of failed cases reported so far.
func (pBar *ProgressBar) Failures() int { return pBar.failures }

// Finish completes the bar, even if not all cases were reported.
func (pBar *ProgressBar) Finish() error {
	if pBar.bar.IsFinished() {
		return nil
	}
	return pBar.bar.Finish()
}
