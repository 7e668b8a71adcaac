// Package clock provides an injectable time source, so code that measures
// elapsed time (query timing in sqld) stays deterministic under test.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func New() *SystemClock {
	return &SystemClock{}
}

var _ Clock = &SystemClock{}

func (c *SystemClock) Now() time.Time { return time.Now() }
