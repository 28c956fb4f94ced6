// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package matvec implements the dense matrix-vector product with the "horizontal scheme":
// the matrix is split by rows, and each output element is the dot product of one row with
// the vector.
//
// The Task type wraps the computation in the task lifecycle, reading its inputs from a
// taskdata.TaskData with one buffer per matrix row followed by the vector buffer, and
// InputsCount = [rows, cols].
package matvec

import (
	"golang.org/x/exp/constraints"
)

// HorizontalScheme computes result = matrix * vector, one row at a time.
//
// Arithmetic is done in T: overflows wrap around following two's-complement semantics.
// With zero columns the result is all zeros.
//
// Panics if len(result) < len(matrix) or any row is shorter than the vector.
func HorizontalScheme[T constraints.Integer](matrix [][]T, vector, result []T) {
	if len(result) < len(matrix) {
		panic("result slice too small")
	}
	cols := len(vector)
	for r, row := range matrix {
		if len(row) < cols {
			panic("matrix row too small")
		}
		result[r] = Dot(row[:cols], vector)
	}
}

// Dot returns the dot product of a and b[:len(a)].
func Dot[T constraints.Integer](a, b []T) T {
	b = b[:len(a)]
	var sum T
	for i, x := range a {
		sum += x * b[i]
	}
	return sum
}

// NumOps returns the number of arithmetic operations (one multiplication and one addition per
// matrix element) of a rows x cols matrix-vector product.
func NumOps(rows, cols int) int64 {
	return 2 * int64(rows) * int64(cols)
}
