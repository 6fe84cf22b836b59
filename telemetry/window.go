package telemetry

import "time"

// Clock abstracts the monotonic time source so tests can drive the
// collector deterministically instead of racing the wall clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock. Go's time.Now() carries a
// monotonic reading, so elapsed-time comparisons stay correct across
// NTP adjustments without extra bookkeeping.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type stampedSample[S Sample] struct {
	at     time.Time
	sample S
}

// WindowCollector retains samples for window and emits a representative
// sample at most once per step. The current implementation returns the
// most recent sample in the window; a stronger implementation may
// aggregate (mean, percentiles) instead — callers must not depend on
// "latest sample" behavior.
type WindowCollector[S Sample] struct {
	window     time.Duration
	step       time.Duration
	clock      Clock
	samples    []stampedSample[S]
	lastEmit   time.Time
	hasEmitted bool
}

// NewWindowCollector builds a collector retaining samples for window
// and emitting at most once per step, using clock as its time source.
func NewWindowCollector[S Sample](window, step time.Duration, clock Clock) *WindowCollector[S] {
	if clock == nil {
		clock = SystemClock{}
	}
	return &WindowCollector[S]{window: window, step: step, clock: clock}
}

// Push stamps sample with the current time, appends it, and evicts
// everything older than window.
func (c *WindowCollector[S]) Push(sample S) {
	now := c.clock.Now()
	c.samples = append(c.samples, stampedSample[S]{at: now, sample: sample})

	cutoff := now.Add(-c.window)
	i := 0
	for i < len(c.samples) && c.samples[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		c.samples = c.samples[i:]
	}
}

// ShouldEmit reports whether Emit would currently produce a sample.
func (c *WindowCollector[S]) ShouldEmit() bool {
	if !c.hasEmitted {
		return len(c.samples) > 0
	}
	return c.clock.Now().Sub(c.lastEmit) >= c.step
}

// Emit returns the most recent retained sample if ShouldEmit, advancing
// the step cadence; otherwise it returns the zero value and false.
func (c *WindowCollector[S]) Emit() (S, bool) {
	var zero S
	if !c.ShouldEmit() {
		return zero, false
	}
	now := c.clock.Now()
	c.lastEmit = now
	c.hasEmitted = true
	if len(c.samples) == 0 {
		return zero, false
	}
	return c.samples[len(c.samples)-1].sample, true
}

// Len reports how many samples are currently retained in the window.
func (c *WindowCollector[S]) Len() int { return len(c.samples) }
