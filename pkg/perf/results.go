// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package perf

import (
	"slices"
	"time"
)

// RunKind tells which phases of a task were timed.
type RunKind int

//go:generate go tool enumer -type=RunKind -trimprefix=RunKind -transform=snake -output=gen_runkind_enumer.go results.go

const (
	// RunKindTaskRun times only the Run phase.
	RunKindTaskRun RunKind = iota

	// RunKindPipelineRun times the full Validation, PreProcessing, Run and PostProcessing sequence.
	RunKindPipelineRun
)

// Results of a TaskRun or PipelineRun.
//
// All derived statistics are 0 if there were no repetitions.
type Results struct {
	// Name identifies the configuration, e.g. "matvec_1000x1000". Optional, set by the caller.
	Name string

	Kind       RunKind
	NumRunning int
	TotalTime  time.Duration

	// Durations of each repetition, in order.
	Durations []time.Duration

	// NumOps is the number of operations per repetition, 0 if unknown.
	NumOps int64
}

// Reset clears the statistics, keeping Name.
func (r *Results) Reset(kind RunKind, numOps int64) {
	r.Kind = kind
	r.NumRunning = 0
	r.TotalTime = 0
	r.Durations = r.Durations[:0]
	r.NumOps = numOps
}

func (r *Results) add(d time.Duration) {
	r.Durations = append(r.Durations, d)
	r.NumRunning++
	r.TotalTime += d
}

// Average duration of a repetition.
func (r *Results) Average() time.Duration {
	if r.NumRunning == 0 {
		return 0
	}
	return r.TotalTime / time.Duration(r.NumRunning)
}

// Min duration of a repetition.
func (r *Results) Min() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	return slices.Min(r.Durations)
}

// Max duration of a repetition.
func (r *Results) Max() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	return slices.Max(r.Durations)
}

// Median duration of a repetition. For an even number of repetitions it is the mean of the two middle ones.
func (r *Results) Median() time.Duration {
	n := len(r.Durations)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(r.Durations)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// OpsPerSecond returns the throughput based on the average duration, or 0 if either NumOps or
// the average duration is unknown.
func (r *Results) OpsPerSecond() float64 {
	avg := r.Average()
	if r.NumOps <= 0 || avg <= 0 {
		return 0
	}
	return float64(r.NumOps) / avg.Seconds()
}
