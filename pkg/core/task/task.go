// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package task defines the lifecycle shared by all benchmarked tasks.
//
// A Task goes through four phases, always in the same order:
//
//  1. Validation: checks the shapes and counts of the task data it was built with.
//  2. PreProcessing: stages the inputs into the task's working state.
//  3. Run: the computation proper. This is the only phase timed by a "task run".
//  4. PostProcessing: writes the results back to the caller-owned output buffers.
//
// Each phase returns an error. Any error is fatal to the current run: there are no
// partial results and no retries.
package task

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Task is implemented by every computation that can be driven by the perf harness.
type Task interface {
	// Validation checks that the task data is consistent with what the task expects.
	// It must not panic on malformed task data.
	Validation() error

	// PreProcessing stages inputs into the task's working state. It fails if Validation
	// didn't succeed first.
	PreProcessing() error

	// Run executes the computation. It can be called repeatedly after PreProcessing, and
	// each call with unchanged inputs must produce the same result.
	Run() error

	// PostProcessing writes the results of the last Run to the output buffers.
	PostProcessing() error
}

// Phase of the Task lifecycle.
type Phase int

//go:generate go tool enumer -type=Phase -trimprefix=Phase -transform=snake -output=gen_phase_enumer.go task.go

const (
	PhaseValidation Phase = iota
	PhasePreProcessing
	PhaseRun
	PhasePostProcessing
)

// Call invokes the method of t corresponding to the phase.
func (p Phase) Call(t Task) error {
	switch p {
	case PhaseValidation:
		return t.Validation()
	case PhasePreProcessing:
		return t.PreProcessing()
	case PhaseRun:
		return t.Run()
	case PhasePostProcessing:
		return t.PostProcessing()
	}
	return errors.Errorf("unknown task phase %s", p)
}

// RunPipeline executes all phases of t in order, stopping at the first failure.
//
// The returned error is wrapped with the name of the phase that failed, and it still
// matches the sentinel errors of this package with errors.Is.
func RunPipeline(t Task) error {
	for _, phase := range PhaseValues() {
		if err := phase.Call(t); err != nil {
			klog.V(2).Infof("task %T failed in phase %s: %v", t, phase, err)
			return errors.WithMessagef(err, "phase %s", phase)
		}
	}
	return nil
}
