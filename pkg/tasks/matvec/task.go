// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package matvec

import (
	"github.com/gomlx/horizontal/pkg/core/task"
	"github.com/gomlx/horizontal/pkg/core/taskdata"
	"k8s.io/klog/v2"
)

// Element is the type of the matrix, vector and result values.
type Element = int32

// Task is the matrix-vector product over caller-owned buffers.
//
// Expected task data:
//
//   - Inputs: rows buffers with cols elements each, followed by the vector buffer with cols elements.
//   - InputsCount: [rows, cols].
//   - Outputs: one buffer with rows elements.
//   - OutputsCount: [rows].
//
// Run computes into a working buffer, and PostProcessing copies it to the output buffer:
// so timing only Run doesn't include writing to the caller's memory.
type Task struct {
	data *taskdata.TaskData

	// Working state, set by PreProcessing.
	rows, cols int
	matrix     [][]Element
	vector     []Element
	output     []Element
	result     []Element

	// Last phase that succeeded, -1 if none.
	done task.Phase
}

var _ task.Task = (*Task)(nil)

// New creates a Task over data. The data is only read at Validation and later phases.
func New(data *taskdata.TaskData) *Task {
	return &Task{data: data, done: -1}
}

// Rows returns the number of rows staged by PreProcessing.
func (t *Task) Rows() int { return t.rows }

// Cols returns the number of columns staged by PreProcessing.
func (t *Task) Cols() int { return t.cols }

// NumOps returns the number of arithmetic operations per Run, based on the counts of the task data.
// It returns 0 if the counts are missing.
func (t *Task) NumOps() int64 {
	if t.data == nil || len(t.data.InputsCount) < 2 {
		return 0
	}
	return NumOps(int(t.data.InputsCount[0]), int(t.data.InputsCount[1]))
}

// Validation checks the buffers and counts of the task data. It resets the working state.
func (t *Task) Validation() error {
	t.done = -1
	t.matrix, t.vector, t.output, t.result = nil, nil, nil, nil
	d := t.data
	if d == nil {
		return task.MissingBufferf("matvec task created without task data")
	}
	rows, err := d.InputCount(0)
	if err != nil {
		return err
	}
	cols, err := d.InputCount(1)
	if err != nil {
		return err
	}
	outLen, err := d.OutputCount(0)
	if err != nil {
		return err
	}
	if outLen != rows {
		return task.ShapeMismatchf("outputs_count[0]=%d != inputs_count[0]=%d (rows)", outLen, rows)
	}
	if d.NumInputs() != int(rows)+1 {
		return task.ShapeMismatchf("expected %d input buffers (%d rows + vector), got %d", rows+1, rows, d.NumInputs())
	}
	if d.NumOutputs() != 1 {
		return task.ShapeMismatchf("expected 1 output buffer, got %d", d.NumOutputs())
	}
	elementSize := taskdata.SizeOf[Element]()
	for ii, buf := range d.Inputs {
		if len(buf) != int(cols)*elementSize {
			what := "row"
			if ii == int(rows) {
				what = "vector"
			}
			return task.ShapeMismatchf("input #%d (%s) has %d bytes, expected %d elements of %d bytes",
				ii, what, len(buf), cols, elementSize)
		}
	}
	if len(d.Outputs[0]) != int(rows)*elementSize {
		return task.ShapeMismatchf("output has %d bytes, expected %d elements of %d bytes",
			len(d.Outputs[0]), rows, elementSize)
	}
	t.done = task.PhaseValidation
	return nil
}

// PreProcessing stages typed views of the rows, the vector and the output.
func (t *Task) PreProcessing() error {
	if t.done < task.PhaseValidation {
		return task.PhaseOrderf(task.PhasePreProcessing, task.PhaseValidation)
	}
	d := t.data
	t.rows, t.cols = int(d.InputsCount[0]), int(d.InputsCount[1])
	t.matrix = make([][]Element, t.rows)
	var err error
	for r := range t.rows {
		if t.matrix[r], err = taskdata.ViewN[Element](d.Inputs[r], t.cols); err != nil {
			return err
		}
	}
	if t.vector, err = taskdata.ViewN[Element](d.Inputs[t.rows], t.cols); err != nil {
		return err
	}
	if t.output, err = taskdata.ViewN[Element](d.Outputs[0], t.rows); err != nil {
		return err
	}
	t.result = make([]Element, t.rows)
	t.done = task.PhasePreProcessing
	klog.V(2).Infof("matvec: staged %dx%d matrix", t.rows, t.cols)
	return nil
}

// Run computes the product into the working buffer.
func (t *Task) Run() error {
	if t.done < task.PhasePreProcessing {
		return task.PhaseOrderf(task.PhaseRun, task.PhasePreProcessing)
	}
	HorizontalScheme(t.matrix, t.vector, t.result)
	t.done = task.PhaseRun
	return nil
}

// PostProcessing copies the result of the last Run to the output buffer.
func (t *Task) PostProcessing() error {
	if t.done < task.PhaseRun {
		return task.PhaseOrderf(task.PhasePostProcessing, task.PhaseRun)
	}
	copy(t.output, t.result)
	t.done = task.PhasePostProcessing
	return nil
}
