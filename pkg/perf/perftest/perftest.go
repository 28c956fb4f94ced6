// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package perftest provides deterministic test doubles for the perf harness: a fake
// clock and a scripted task.
package perftest

import (
	"time"

	"github.com/gomlx/horizontal/pkg/core/task"
)

// FakeTimer is a perf.Timer that advances by a fixed Step every time it is read.
//
// With it, every timed repetition measured by the harness (one read before and one
// after) lasts exactly Step.
type FakeTimer struct {
	Step  time.Duration
	Reads int

	now float64
}

// NewFakeTimer returns a FakeTimer starting at 0 that advances step on each read.
func NewFakeTimer(step time.Duration) *FakeTimer {
	return &FakeTimer{Step: step}
}

// Seconds implements perf.Timer.
func (f *FakeTimer) Seconds() float64 {
	current := f.now
	f.now += f.Step.Seconds()
	f.Reads++
	return current
}

// Task is a scripted task.Task that records the phases called on it.
type Task struct {
	// Calls lists the phases in the order they were invoked.
	Calls []task.Phase

	// Failures maps a phase to the error it should return.
	Failures map[task.Phase]error

	// Panics maps a phase to the value it should panic with.
	Panics map[task.Phase]any

	// OnRun is called at each Run, if set.
	OnRun func()
}

var _ task.Task = (*Task)(nil)

// NewTask returns a Task that succeeds on every phase.
func NewTask() *Task {
	return &Task{
		Failures: make(map[task.Phase]error),
		Panics:   make(map[task.Phase]any),
	}
}

// Count returns how many times phase was called.
func (t *Task) Count(phase task.Phase) int {
	var count int
	for _, p := range t.Calls {
		if p == phase {
			count++
		}
	}
	return count
}

func (t *Task) call(phase task.Phase) error {
	t.Calls = append(t.Calls, phase)
	if v, found := t.Panics[phase]; found {
		panic(v)
	}
	return t.Failures[phase]
}

// Validation implements task.Task.
func (t *Task) Validation() error { return t.call(task.PhaseValidation) }

// PreProcessing implements task.Task.
func (t *Task) PreProcessing() error { return t.call(task.PhasePreProcessing) }

// Run implements task.Task.
func (t *Task) Run() error {
	if t.OnRun != nil {
		t.OnRun()
	}
	return t.call(task.PhaseRun)
}

// PostProcessing implements task.Task.
func (t *Task) PostProcessing() error { return t.call(task.PhasePostProcessing) }
