// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package perf

import (
	"math"
	"time"
)

// Timer is the clock used by the harness to measure repetitions.
//
// Seconds returns the elapsed seconds since an arbitrary epoch chosen by the timer. It must not
// decrease within a run: this is not checked, and a decreasing timer yields zero-length repetitions.
type Timer interface {
	Seconds() float64
}

// TimerFunc adapts a function to the Timer interface.
type TimerFunc func() float64

// Seconds implements Timer.
func (fn TimerFunc) Seconds() float64 { return fn() }

type monotonicTimer struct {
	start time.Time
}

// NewMonotonicTimer returns a Timer measuring wall-clock time since its creation, using the
// monotonic clock reading of time.Time.
func NewMonotonicTimer() Timer {
	return &monotonicTimer{start: time.Now()}
}

// Seconds implements Timer.
func (t *monotonicTimer) Seconds() float64 {
	return time.Since(t.start).Seconds()
}

// secondsToDuration converts an elapsed time in seconds, rounded to the nanosecond, clamping negative values to 0.
func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
