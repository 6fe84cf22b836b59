package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually-advanced Clock for deterministic window tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestWindowCollectorEmitsLatestSample(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := NewWindowCollector[TransportSample](200*time.Millisecond, 100*time.Millisecond, clk)

	s := TransportSample{QueueDepth: 10}
	c.Push(s)
	require.True(t, c.ShouldEmit())

	got, ok := c.Emit()
	require.True(t, ok)
	assert.Equal(t, uint32(10), got.QueueDepth)
}

func TestWindowCollectorEvictsOldSamples(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := NewWindowCollector[TransportSample](100*time.Millisecond, 50*time.Millisecond, clk)

	c.Push(TransportSample{QueueDepth: 1})
	clk.advance(150 * time.Millisecond)
	c.Push(TransportSample{QueueDepth: 2})

	assert.Equal(t, 1, c.Len(), "the first sample should have aged out of the window")
}

func TestWindowCollectorStepCadence(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := NewWindowCollector[TransportSample](time.Second, 100*time.Millisecond, clk)

	c.Push(TransportSample{QueueDepth: 1})
	_, ok := c.Emit()
	require.True(t, ok)

	// Immediately after emitting, should not emit again until step elapses.
	c.Push(TransportSample{QueueDepth: 2})
	assert.False(t, c.ShouldEmit())

	clk.advance(100 * time.Millisecond)
	assert.True(t, c.ShouldEmit())
	got, ok := c.Emit()
	require.True(t, ok)
	assert.Equal(t, uint32(2), got.QueueDepth)
}
