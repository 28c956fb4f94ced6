// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package perf

import (
	"fmt"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/horizontal/pkg/core/task"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Case is one configuration of a Suite.
type Case struct {
	// Name of the case. If empty, it is generated from the dimensions.
	Name       string
	Rows, Cols int
}

// String returns the name of the case.
func (c Case) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%dx%d", c.Rows, c.Cols)
}

// Factory builds the task for a case and returns the number of operations of one Run.
//
// The task must hold references to its buffers for as long as it lives.
type Factory func(c Case) (t task.Task, numOps int64, err error)

// Report holds the outcome of one Case.
type Report struct {
	Case Case

	// Results, one per RunKind requested, in order. Empty if Err is set.
	Results []*Results

	// Err is set if the case failed to build, to verify or to run.
	Err error
}

// Session is the outcome of Suite.Run.
type Session struct {
	ID       uuid.UUID
	Host     HostInfo
	Started  time.Time
	Duration time.Duration
	Reports  []*Report
}

// Failed returns the reports with an error.
func (s *Session) Failed() []*Report {
	var failed []*Report
	for _, r := range s.Reports {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// OnCaseFn is called after each case of a Suite is finished, with its index and report.
type OnCaseFn func(index int, report *Report)

// Suite runs a list of cases through the perf harness.
//
// For each case it builds the task, verifies it once with task.RunPipeline, and then measures each
// of the Kinds with a copy of Attributes (NumOps is taken from the Factory).
type Suite struct {
	Cases      []Case
	Kinds      []RunKind
	Attributes Attributes
	NewTask    Factory

	// OnCase hooks, called in order.
	OnCase []OnCaseFn
}

// AddOnCase registers a hook and returns the Suite, for chaining.
func (s *Suite) AddOnCase(fn OnCaseFn) *Suite {
	s.OnCase = append(s.OnCase, fn)
	return s
}

// Run executes all cases sequentially. Failures are recorded in the reports, and don't stop the
// remaining cases.
func (s *Suite) Run() *Session {
	session := &Session{
		ID:      uuid.New(),
		Host:    DescribeHost(),
		Started: time.Now(),
	}
	klog.V(1).Infof("perf session %s on %s: %d cases", session.ID, session.Host, len(s.Cases))
	for ii, c := range s.Cases {
		report := s.runCase(c)
		if report.Err != nil {
			klog.Errorf("case %s failed: %v", c, report.Err)
		}
		session.Reports = append(session.Reports, report)
		for _, fn := range s.OnCase {
			fn(ii, report)
		}
	}
	session.Duration = time.Since(session.Started)
	return session
}

func (s *Suite) runCase(c Case) *Report {
	report := &Report{Case: c}
	if s.NewTask == nil {
		report.Err = errors.New("perf: Suite.NewTask not set")
		return report
	}
	var t task.Task
	var numOps int64
	var err error
	if exception := exceptions.Try(func() { t, numOps, err = s.NewTask(c) }); exception != nil {
		err = panicToError(exception, "panic building task")
	}
	if err != nil {
		report.Err = errors.WithMessagef(err, "building task for case %s", c)
		return report
	}
	if err = verifyPipeline(t); err != nil {
		report.Err = errors.WithMessagef(err, "verifying case %s", c)
		return report
	}
	p := New(t)
	for _, kind := range s.Kinds {
		attrs := s.Attributes
		attrs.NumOps = numOps
		results := &Results{Name: c.String()}
		if err = p.Run(kind, &attrs, results); err != nil {
			report.Err = err
			report.Results = nil
			return report
		}
		report.Results = append(report.Results, results)
	}
	return report
}

// verifyPipeline runs task.RunPipeline once, converting panics into errors.
func verifyPipeline(t task.Task) (err error) {
	if exception := exceptions.Try(func() { err = task.RunPipeline(t) }); exception != nil {
		err = panicToError(exception, "panic in pipeline")
	}
	return
}
