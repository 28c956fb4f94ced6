// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package taskdata holds the input and output buffers of a task, along with their element counts.
//
// Buffers are caller-owned byte slices, usually aliasing a typed slice created with Bytes.
// The container never copies nor owns the memory: tasks recover typed views with View and
// read inputs and write outputs in place.
//
// The meaning of the counts is a convention between the caller and the task. E.g., for the
// matrix-vector task InputsCount[0] is the number of rows and InputsCount[1] the number of columns.
package taskdata

import (
	"fmt"
	"strings"

	"github.com/gomlx/horizontal/pkg/core/task"
)

// TaskData is the container of raw buffers and counts a task is built with.
//
// The order of Inputs and Outputs is significant.
type TaskData struct {
	Inputs       [][]byte
	InputsCount  []uint32
	Outputs      [][]byte
	OutputsCount []uint32
}

// New returns an empty TaskData.
func New() *TaskData {
	return &TaskData{}
}

// AddInput appends input buffers.
func (d *TaskData) AddInput(buffers ...[]byte) *TaskData {
	d.Inputs = append(d.Inputs, buffers...)
	return d
}

// AddInputCount appends input counts.
func (d *TaskData) AddInputCount(counts ...uint32) *TaskData {
	d.InputsCount = append(d.InputsCount, counts...)
	return d
}

// AddOutput appends output buffers.
func (d *TaskData) AddOutput(buffers ...[]byte) *TaskData {
	d.Outputs = append(d.Outputs, buffers...)
	return d
}

// AddOutputCount appends output counts.
func (d *TaskData) AddOutputCount(counts ...uint32) *TaskData {
	d.OutputsCount = append(d.OutputsCount, counts...)
	return d
}

// NumInputs returns the number of input buffers.
func (d *TaskData) NumInputs() int { return len(d.Inputs) }

// NumOutputs returns the number of output buffers.
func (d *TaskData) NumOutputs() int { return len(d.Outputs) }

// InputCount returns InputsCount[i], or an error wrapping task.ErrMissingBuffer if it is not set.
func (d *TaskData) InputCount(i int) (uint32, error) {
	if i < 0 || i >= len(d.InputsCount) {
		return 0, task.MissingBufferf("inputs_count[%d] not set (%d counts given)", i, len(d.InputsCount))
	}
	return d.InputsCount[i], nil
}

// OutputCount returns OutputsCount[i], or an error wrapping task.ErrMissingBuffer if it is not set.
func (d *TaskData) OutputCount(i int) (uint32, error) {
	if i < 0 || i >= len(d.OutputsCount) {
		return 0, task.MissingBufferf("outputs_count[%d] not set (%d counts given)", i, len(d.OutputsCount))
	}
	return d.OutputsCount[i], nil
}

// String implements fmt.Stringer. It lists buffer sizes, not contents.
func (d *TaskData) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TaskData{inputs=%d", len(d.Inputs))
	if len(d.Inputs) > 0 {
		fmt.Fprintf(&sb, " (%s)", bufferSizes(d.Inputs))
	}
	fmt.Fprintf(&sb, ", inputs_count=%v, outputs=%d", d.InputsCount, len(d.Outputs))
	if len(d.Outputs) > 0 {
		fmt.Fprintf(&sb, " (%s)", bufferSizes(d.Outputs))
	}
	fmt.Fprintf(&sb, ", outputs_count=%v}", d.OutputsCount)
	return sb.String()
}

// bufferSizes summarizes byte sizes, collapsing runs of equal sizes to keep large
// containers readable.
func bufferSizes(buffers [][]byte) string {
	var parts []string
	for ii := 0; ii < len(buffers); {
		size := len(buffers[ii])
		jj := ii + 1
		for jj < len(buffers) && len(buffers[jj]) == size {
			jj++
		}
		if jj-ii > 1 {
			parts = append(parts, fmt.Sprintf("%dx%dB", jj-ii, size))
		} else {
			parts = append(parts, fmt.Sprintf("%dB", size))
		}
		ii = jj
	}
	return strings.Join(parts, ", ")
}
