package utils

import "time"

// FixedStep tells a frame-driven loop when the next generation is due.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep returns a FixedStep that fires once per interval. The first call to
// ShouldStep fires immediately.
func NewFixedStep(interval time.Duration) *FixedStep {
	f := &FixedStep{now: time.Now}
	f.SetInterval(interval)
	f.accumulator = f.step
	return f
}

// SetInterval changes the step length. Non-positive values fall back to 200ms.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	f.step = interval
}

// ShouldStep reports whether a step is due and consumes it.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
