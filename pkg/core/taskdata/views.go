// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package taskdata

import (
	"unsafe"

	"github.com/gomlx/horizontal/pkg/core/task"
	"golang.org/x/exp/constraints"
)

// Element is the set of types that can be stored in a task data buffer.
type Element interface {
	constraints.Integer | constraints.Float
}

// SizeOf returns the size in bytes of one element of type T.
func SizeOf[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Bytes returns a byte view of values, sharing the same underlying memory.
//
// Writes to the returned slice are visible in values and vice versa.
func Bytes[T Element](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), len(values)*SizeOf[T]())
}

// View returns a typed view of buf, sharing the same underlying memory.
//
// It returns an error wrapping task.ErrShapeMismatch if the length of buf is not a multiple
// of the element size, or if buf is not aligned for T.
func View[T Element](buf []byte) ([]T, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	size := SizeOf[T]()
	if len(buf)%size != 0 {
		var zero T
		return nil, task.ShapeMismatchf("buffer of %d bytes is not a multiple of %T's size (%d bytes)", len(buf), zero, size)
	}
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	var zero T
	if uintptr(ptr)%unsafe.Alignof(zero) != 0 {
		return nil, task.ShapeMismatchf("buffer is not aligned for %T", zero)
	}
	return unsafe.Slice((*T)(ptr), len(buf)/size), nil
}

// ViewN is like View, but also checks that the buffer holds exactly n elements.
func ViewN[T Element](buf []byte, n int) ([]T, error) {
	if len(buf) != n*SizeOf[T]() {
		var zero T
		return nil, task.ShapeMismatchf("buffer of %d bytes doesn't hold %d elements of %T", len(buf), n, zero)
	}
	if n == 0 {
		return []T{}, nil
	}
	return View[T](buf)
}
