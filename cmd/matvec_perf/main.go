// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// matvec_perf measures the horizontal scheme matrix-vector product over several problem sizes,
// in "task_run" and "pipeline_run" modes, and reports the results.
//
// Example:
//
//	matvec_perf -set "sizes=1000x1000,2000x2000;runs=20" -csv=/tmp/matvec.csv -plot=/tmp/matvec.png
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gomlx/horizontal/pkg/core/task"
	"github.com/gomlx/horizontal/pkg/perf"
	"github.com/gomlx/horizontal/pkg/tasks/matvec"
	"github.com/gomlx/horizontal/ui/commandline"
	"github.com/gomlx/horizontal/ui/plots"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagCSV      = flag.String("csv", "", "If set, the results are saved as CSV to the given file.")
	flagPlot     = flag.String("plot", "", "If set, a throughput plot is saved to the given file. The format is taken from the extension (.png, .svg, .pdf).")
	flagColor    = flag.Bool("color", false, "Force colors in the report, even if the output is not a terminal.")
	flagProgress = flag.Bool("progress", true, "Display a progress bar on stderr while measuring.")
	flagStats    = flag.Bool("stats", true, "Print one line of statistics per case and kind, in addition to the table.")
)

func main() {
	klog.InitFlags(nil)
	settings := defaultSettings()
	settingsFlag := commandline.CreateSettingsFlag(settings, "")
	flag.Parse()
	settingsSet := must.M1(commandline.ParseSettings(settings, *settingsFlag))
	klog.V(1).Infof("settings changed: %q\n%s", settingsSet, commandline.SprintSettings(settings))
	cfg, err := newConfig(settings)
	if err != nil {
		klog.Errorf("invalid settings: %+v", err)
		os.Exit(1)
	}
	if *flagColor {
		commandline.ForceColors()
	}
	if err := run(cfg); err != nil {
		klog.Errorf("%v", err)
		os.Exit(1)
	}
}

func newSuite(cfg *config) *perf.Suite {
	seed := cfg.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	klog.V(1).Infof("random seed: %d", seed)
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &perf.Suite{
		Cases: cfg.cases,
		Kinds: cfg.kinds,
		Attributes: perf.Attributes{
			NumRunning: cfg.runs,
			NumWarmup:  cfg.warmup,
		},
		NewTask: func(c perf.Case) (task.Task, int64, error) {
			mvCase := matvec.NewRandomCase(src, c.Rows, c.Cols)
			return mvCase.Task, mvCase.Task.NumOps(), nil
		},
	}
}

func run(cfg *config) error {
	suite := newSuite(cfg)
	var pBar *commandline.ProgressBar
	if *flagProgress {
		pBar = commandline.AttachProgressBar(suite, os.Stderr)
	}
	session := suite.Run()
	if pBar != nil {
		if err := pBar.Finish(); err != nil {
			klog.Warningf("failed to finish progress bar: %v", err)
		}
	}

	if err := commandline.PrintSession(os.Stdout, session); err != nil {
		return err
	}
	var numOverTime int
	for _, report := range session.Reports {
		for _, results := range report.Results {
			if *flagStats {
				perf.PrintPerfStatistic(os.Stdout, results)
			}
			if err := perf.CheckTimeLimit(results, cfg.maxTime); err != nil {
				klog.Errorf("%v", err)
				numOverTime++
			}
		}
	}

	if *flagCSV != "" {
		if err := saveCSV(session, *flagCSV); err != nil {
			return err
		}
	}
	if *flagPlot != "" {
		if err := plots.SaveThroughput(session, *flagPlot); err != nil {
			return err
		}
		fmt.Printf("Throughput plot saved to %q\n", *flagPlot)
	}

	if failed := session.Failed(); len(failed) > 0 || numOverTime > 0 {
		return errors.Errorf("%d of %d cases failed, %d results exceeded the time limit of %s",
			len(failed), len(session.Reports), numOverTime, cfg.maxTime)
	}
	return nil
}

func saveCSV(session *perf.Session, filePath string) (err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "creating CSV file %q", filePath)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "closing CSV file %q", filePath)
		}
	}()
	if err = perf.WriteCSV(f, session); err != nil {
		return err
	}
	fmt.Printf("Results saved to %q\n", filePath)
	return nil
}
