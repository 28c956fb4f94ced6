// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package task

import (
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is returned when buffer counts or sizes don't match the task's expectations.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrMissingBuffer is returned when a required buffer or count is not present in the task data.
	ErrMissingBuffer = errors.New("missing buffer")

	// ErrPhaseOrder is returned when a phase is invoked before the phases it depends on succeeded.
	ErrPhaseOrder = errors.New("phase called out of order")
)

// ShapeMismatchf returns an error wrapping ErrShapeMismatch with the formatted message.
func ShapeMismatchf(format string, args ...any) error {
	return errors.Wrapf(ErrShapeMismatch, format, args...)
}

// MissingBufferf returns an error wrapping ErrMissingBuffer with the formatted message.
func MissingBufferf(format string, args ...any) error {
	return errors.Wrapf(ErrMissingBuffer, format, args...)
}

// PhaseOrderf returns an error wrapping ErrPhaseOrder, reporting that phase was called
// before required succeeded.
func PhaseOrderf(phase, required Phase) error {
	return errors.Wrapf(ErrPhaseOrder, "%s requires a successful %s first", phase, required)
}
