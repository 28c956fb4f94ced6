// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package matvec

import (
	"math/rand/v2"
	"testing"

	"github.com/gomlx/horizontal/pkg/core/task"
	"github.com/gomlx/horizontal/pkg/core/taskdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskPipeline(t *testing.T) {
	matrix := [][]int32{{1, 2}, {3, 4}}
	vector := []int32{5, 6}
	result := make([]int32, 2)
	tsk := New(NewTaskData(matrix, vector, result))

	require.NoError(t, tsk.Validation())
	require.NoError(t, tsk.PreProcessing())
	assert.Equal(t, 2, tsk.Rows())
	assert.Equal(t, 2, tsk.Cols())
	require.NoError(t, tsk.Run())
	// Run doesn't write to the caller's buffer, PostProcessing does.
	assert.Equal(t, []int32{0, 0}, result)
	require.NoError(t, tsk.PostProcessing())
	assert.Equal(t, []int32{17, 39}, result)
	assert.Equal(t, int64(8), tsk.NumOps())
}

func TestTaskCancellingRow(t *testing.T) {
	result := make([]int32, 1)
	tsk := New(NewTaskData([][]int32{{300, -300, 0}}, []int32{1, 1, 1}, result))
	require.NoError(t, task.RunPipeline(tsk))
	assert.Equal(t, []int32{0}, result)
}

func TestTaskZeroColumns(t *testing.T) {
	result := []int32{9, 9, 9}
	tsk := New(NewTaskData([][]int32{{}, {}, {}}, []int32{}, result))
	require.NoError(t, task.RunPipeline(tsk))
	assert.Equal(t, []int32{0, 0, 0}, result)
}

func TestTaskZeroRows(t *testing.T) {
	result := []int32{}
	tsk := New(NewTaskData([][]int32{}, []int32{1, 2}, result))
	require.NoError(t, task.RunPipeline(tsk))
	assert.Empty(t, result)
}

func TestTaskRunIsIdempotent(t *testing.T) {
	c := NewRandomCase(rand.NewPCG(3, 5), 31, 17)
	require.NoError(t, task.RunPipeline(c.Task))
	first := append([]int32(nil), c.Result...)
	assert.Equal(t, c.Expected(), first)

	require.NoError(t, c.Task.Run())
	require.NoError(t, c.Task.Run())
	require.NoError(t, c.Task.PostProcessing())
	assert.Equal(t, first, c.Result)

	// The whole pipeline can be run again on the same instance.
	require.NoError(t, task.RunPipeline(c.Task))
	assert.Equal(t, first, c.Result)
}

func TestTaskValidation(t *testing.T) {
	row0, row1 := []int32{1, 2}, []int32{3, 4}
	vector := []int32{5, 6}

	t.Run("outputs_count mismatch", func(t *testing.T) {
		result := make([]int32, 3)
		data := NewTaskData([][]int32{row0, row1}, vector, result)
		require.Equal(t, uint32(3), data.OutputsCount[0])
		tsk := New(data)
		err := tsk.Validation()
		require.ErrorIs(t, err, task.ErrShapeMismatch)
		assert.Contains(t, err.Error(), "outputs_count[0]=3 != inputs_count[0]=2")

		// No further phase can run.
		require.ErrorIs(t, tsk.PreProcessing(), task.ErrPhaseOrder)
		require.ErrorIs(t, tsk.Run(), task.ErrPhaseOrder)
		require.ErrorIs(t, tsk.PostProcessing(), task.ErrPhaseOrder)
		assert.Equal(t, []int32{0, 0, 0}, result)
	})

	t.Run("missing counts", func(t *testing.T) {
		data := taskdata.New().AddInput(taskdata.Bytes(row0)).AddInputCount(1)
		require.ErrorIs(t, New(data).Validation(), task.ErrMissingBuffer)

		data = taskdata.New().AddInput(taskdata.Bytes(row0), taskdata.Bytes(vector)).AddInputCount(1, 2)
		require.ErrorIs(t, New(data).Validation(), task.ErrMissingBuffer)

		require.ErrorIs(t, New(nil).Validation(), task.ErrMissingBuffer)
		assert.Equal(t, int64(0), New(nil).NumOps())
		assert.Equal(t, int64(0), New(taskdata.New()).NumOps())
	})

	t.Run("wrong number of inputs", func(t *testing.T) {
		result := make([]int32, 2)
		data := NewTaskData([][]int32{row0, row1}, vector, result)
		data.Inputs = data.Inputs[1:]
		require.ErrorIs(t, New(data).Validation(), task.ErrShapeMismatch)
	})

	t.Run("wrong number of outputs", func(t *testing.T) {
		result := make([]int32, 2)
		data := NewTaskData([][]int32{row0, row1}, vector, result)
		data.AddOutput(taskdata.Bytes(result))
		require.ErrorIs(t, New(data).Validation(), task.ErrShapeMismatch)
	})

	t.Run("short row", func(t *testing.T) {
		result := make([]int32, 2)
		data := NewTaskData([][]int32{row0, {3}}, vector, result)
		err := New(data).Validation()
		require.ErrorIs(t, err, task.ErrShapeMismatch)
		assert.Contains(t, err.Error(), "input #1 (row)")
	})

	t.Run("short vector", func(t *testing.T) {
		result := make([]int32, 2)
		data := NewTaskData([][]int32{row0, row1}, vector, result)
		data.Inputs[2] = data.Inputs[2][:4]
		err := New(data).Validation()
		require.ErrorIs(t, err, task.ErrShapeMismatch)
		assert.Contains(t, err.Error(), "input #2 (vector)")
	})

	t.Run("short output", func(t *testing.T) {
		result := make([]int32, 1)
		data := NewTaskData([][]int32{row0, row1}, vector, result)
		data.OutputsCount[0] = 2
		require.ErrorIs(t, New(data).Validation(), task.ErrShapeMismatch)
	})
}

func TestTaskPhaseOrder(t *testing.T) {
	result := make([]int32, 1)
	tsk := New(NewTaskData([][]int32{{1}}, []int32{2}, result))
	require.ErrorIs(t, tsk.Run(), task.ErrPhaseOrder)
	require.NoError(t, tsk.Validation())
	require.ErrorIs(t, tsk.PostProcessing(), task.ErrPhaseOrder)
	require.NoError(t, tsk.PreProcessing())
	require.ErrorIs(t, tsk.PostProcessing(), task.ErrPhaseOrder)
	require.NoError(t, tsk.Run())
	require.NoError(t, tsk.PostProcessing())
	assert.Equal(t, []int32{2}, result)
}
