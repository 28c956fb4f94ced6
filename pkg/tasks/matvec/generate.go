// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package matvec

import (
	"math"
	"math/rand/v2"

	"github.com/gomlx/horizontal/pkg/core/taskdata"
	"gonum.org/v1/gonum/stat/distuv"
)

// Parameters of the random values used in benchmarks: normally distributed, rounded,
// and clipped to [-ValueClip, +ValueClip].
const (
	ValueStdDev = 100.0
	ValueClip   = 300
)

func newNormal(src rand.Source) distuv.Normal {
	return distuv.Normal{Mu: 0, Sigma: ValueStdDev, Src: src}
}

func sample(dist distuv.Normal) Element {
	v := math.Round(dist.Rand())
	return Element(min(max(v, -ValueClip), ValueClip))
}

// RandomMatrixNormal returns a rows x cols matrix of random values. See ValueStdDev and ValueClip.
//
// If src is nil, a randomly seeded source is used.
func RandomMatrixNormal(src rand.Source, rows, cols int) [][]Element {
	dist := newNormal(src)
	matrix := make([][]Element, rows)
	for r := range matrix {
		row := make([]Element, cols)
		for c := range row {
			row[c] = sample(dist)
		}
		matrix[r] = row
	}
	return matrix
}

// RandomVectorNormal returns a vector of size random values. See ValueStdDev and ValueClip.
//
// If src is nil, a randomly seeded source is used.
func RandomVectorNormal(src rand.Source, size int) []Element {
	dist := newNormal(src)
	vec := make([]Element, size)
	for i := range vec {
		vec[i] = sample(dist)
	}
	return vec
}

// NewTaskData returns a TaskData aliasing matrix, vector and result, laid out as Task expects.
//
// The number of columns is taken from the vector. Nothing is copied: result is written
// in place by Task.PostProcessing.
func NewTaskData(matrix [][]Element, vector, result []Element) *taskdata.TaskData {
	data := taskdata.New()
	for _, row := range matrix {
		data.AddInput(taskdata.Bytes(row))
	}
	return data.
		AddInput(taskdata.Bytes(vector)).
		AddInputCount(uint32(len(matrix)), uint32(len(vector))).
		AddOutput(taskdata.Bytes(result)).
		AddOutputCount(uint32(len(result)))
}

// Case holds the caller-owned buffers of one benchmark configuration and the Task built over them.
//
// Matrix, Vector and Result must stay reachable while the Task is used: the task data only aliases them.
type Case struct {
	Matrix [][]Element
	Vector []Element
	Result []Element
	Data   *taskdata.TaskData
	Task   *Task
}

// NewRandomCase generates a random rows x cols problem and the Task to solve it.
func NewRandomCase(src rand.Source, rows, cols int) *Case {
	c := &Case{
		Matrix: RandomMatrixNormal(src, rows, cols),
		Vector: RandomVectorNormal(src, cols),
		Result: make([]Element, rows),
	}
	c.Data = NewTaskData(c.Matrix, c.Vector, c.Result)
	c.Task = New(c.Data)
	return c
}

// Expected computes the product with the reference kernel, without touching Result.
func (c *Case) Expected() []Element {
	want := make([]Element, len(c.Matrix))
	HorizontalScheme(c.Matrix, c.Vector, want)
	return want
}
