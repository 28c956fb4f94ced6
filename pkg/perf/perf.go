// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package perf measures the performance of a task.Task.
//
// A Perf wraps an already-built task and runs it in one of two modes:
//
//   - TaskRun: validates and pre-processes once, then times only the Run phase, NumRunning times,
//     and finally post-processes once.
//   - PipelineRun: times the full Validation, PreProcessing, Run and PostProcessing sequence,
//     NumRunning times.
//
// Repetitions run sequentially on the calling goroutine. Any phase failure aborts the run and
// leaves the Results empty: there are no partial statistics.
//
// Example:
//
//	c := matvec.NewRandomCase(nil, 2000, 2000)
//	attrs := &perf.Attributes{NumRunning: 10, NumOps: c.Task.NumOps()}
//	results := &perf.Results{Name: "matvec_2000x2000"}
//	if err := perf.New(c.Task).PipelineRun(attrs, results); err != nil {
//		klog.Fatalf("pipeline_run failed: %+v", err)
//	}
//	perf.PrintPerfStatistic(os.Stdout, results)
package perf

import (
	"fmt"
	"io"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/horizontal/pkg/core/task"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultMaxTime is the default limit of the average duration of a repetition, see CheckTimeLimit.
const DefaultMaxTime = 10 * time.Second

// ErrTimeLimitExceeded is returned by CheckTimeLimit.
var ErrTimeLimitExceeded = errors.New("time limit exceeded")

// Attributes configure a TaskRun or PipelineRun.
type Attributes struct {
	// NumRunning is the number of timed repetitions. If 0, nothing is run and the results are empty.
	NumRunning int

	// NumWarmup is the number of untimed repetitions before the timed ones.
	NumWarmup int

	// CurrentTimer measures the repetitions. If nil, a monotonic wall-clock timer is used.
	CurrentTimer Timer

	// NumOps is the number of operations of one repetition, copied to Results to report throughput.
	NumOps int64
}

// Perf runs a task for performance measurement.
type Perf struct {
	task task.Task
}

// New returns a Perf for the given task. The task is not run until TaskRun or PipelineRun is called.
func New(t task.Task) *Perf {
	return &Perf{task: t}
}

// TaskRun times only the Run phase of the task, attrs.NumRunning times.
//
// Validation and PreProcessing are executed once before, and PostProcessing once after, untimed.
// The statistics are stored in results, which is reset first.
func (p *Perf) TaskRun(attrs *Attributes, results *Results) error {
	return p.measure(RunKindTaskRun, attrs, results)
}

// PipelineRun times the full sequence of phases of the task, attrs.NumRunning times.
// The statistics are stored in results, which is reset first.
func (p *Perf) PipelineRun(attrs *Attributes, results *Results) error {
	return p.measure(RunKindPipelineRun, attrs, results)
}

// Run dispatches to TaskRun or PipelineRun according to kind.
func (p *Perf) Run(kind RunKind, attrs *Attributes, results *Results) error {
	if !kind.IsARunKind() {
		return errors.Errorf("perf: unknown run kind %s", kind)
	}
	return p.measure(kind, attrs, results)
}

func (p *Perf) measure(kind RunKind, attrs *Attributes, results *Results) (err error) {
	if p.task == nil {
		return errors.New("perf: no task to measure")
	}
	if attrs == nil || results == nil {
		return errors.Errorf("perf: %s requires non-nil attributes and results", kind)
	}
	if attrs.NumRunning < 0 || attrs.NumWarmup < 0 {
		return errors.Errorf("perf: invalid number of repetitions (NumRunning=%d, NumWarmup=%d)",
			attrs.NumRunning, attrs.NumWarmup)
	}
	results.Reset(kind, attrs.NumOps)
	if attrs.NumRunning == 0 {
		klog.V(1).Infof("perf: %s of %q with no repetitions", kind, results.Name)
		return nil
	}
	timer := attrs.CurrentTimer
	if timer == nil {
		timer = NewMonotonicTimer()
	}
	defer func() {
		if err != nil {
			results.Reset(kind, attrs.NumOps)
			err = errors.WithMessagef(err, "perf: %s of %q", kind, results.Name)
		}
	}()

	switch kind {
	case RunKindTaskRun:
		if err = p.call(task.PhaseValidation); err != nil {
			return
		}
		if err = p.call(task.PhasePreProcessing); err != nil {
			return
		}
		for range attrs.NumWarmup {
			if err = p.call(task.PhaseRun); err != nil {
				return
			}
		}
		for range attrs.NumRunning {
			start := timer.Seconds()
			if err = p.call(task.PhaseRun); err != nil {
				return
			}
			results.add(secondsToDuration(timer.Seconds() - start))
		}
		err = p.call(task.PhasePostProcessing)

	case RunKindPipelineRun:
		for range attrs.NumWarmup {
			if err = p.pipeline(); err != nil {
				return
			}
		}
		for range attrs.NumRunning {
			start := timer.Seconds()
			if err = p.pipeline(); err != nil {
				return
			}
			results.add(secondsToDuration(timer.Seconds() - start))
		}
	}
	if err == nil {
		klog.V(1).Infof("perf: %s of %q: %d runs, average %s", kind, results.Name, results.NumRunning, results.Average())
	}
	return
}

// call executes one phase, converting panics into errors.
func (p *Perf) call(phase task.Phase) error {
	var err error
	if exception := exceptions.Try(func() { err = phase.Call(p.task) }); exception != nil {
		return panicToError(exception, "panic in phase %s", phase)
	}
	if err != nil {
		return errors.WithMessagef(err, "phase %s", phase)
	}
	return nil
}

// panicToError converts a recovered panic value of any type to an error with the given message.
func panicToError(exception any, format string, args ...any) error {
	if err, ok := exception.(error); ok {
		return errors.Wrapf(err, format, args...)
	}
	return errors.Errorf("%s: %v", fmt.Sprintf(format, args...), exception)
}

func (p *Perf) pipeline() error {
	for _, phase := range task.PhaseValues() {
		if err := p.call(phase); err != nil {
			return err
		}
	}
	return nil
}

// PrintPerfStatistic writes a one-line summary of results to w:
//
//	<name>:<kind>:runs=<n>:total=<seconds>s:avg=<seconds>s
func PrintPerfStatistic(w io.Writer, results *Results) {
	name := results.Name
	if name == "" {
		name = "unnamed"
	}
	_, err := fmt.Fprintf(w, "%s:%s:runs=%d:total=%.10fs:avg=%.10fs\n",
		name, results.Kind, results.NumRunning, results.TotalTime.Seconds(), results.Average().Seconds())
	if err != nil {
		klog.Warningf("failed to print performance statistics of %q: %v", name, err)
	}
}

// CheckTimeLimit returns an error wrapping ErrTimeLimitExceeded if the average duration of the
// repetitions in results is above limit. A limit <= 0 disables the check.
func CheckTimeLimit(results *Results, limit time.Duration) error {
	if limit <= 0 {
		return nil
	}
	if avg := results.Average(); avg > limit {
		return errors.Wrapf(ErrTimeLimitExceeded, "%s of %q took %s on average, limit is %s",
			results.Kind, results.Name, avg, limit)
	}
	return nil
}
