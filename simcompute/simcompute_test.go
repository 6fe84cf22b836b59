package simcompute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luxfi/nematode/policy"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBaselinePoolAssignsQueuedTasks(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	sim := New(policy.NewBaselineCompute(), 8, clk, nil)

	sim.Enqueue(1000)
	sim.Tick()

	assert.Equal(t, 0, sim.QueueLen())
	assert.Equal(t, 1, sim.BusyWorkerCount())
}

func TestTaskCompletesAfterWorkDuration(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	sim := New(policy.NewBaselineCompute(), 8, clk, nil)

	sim.Enqueue(1000)
	sim.Tick()
	assert.Equal(t, 1, sim.BusyWorkerCount())

	clk.advance(2 * time.Millisecond)
	sim.Tick()
	assert.Equal(t, 0, sim.BusyWorkerCount(), "a 1000us task should have completed after 2ms")
	assert.Equal(t, 1, sim.Stats().TaskCount())
}

func TestResizeDownPreservesBusyWorkers(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	sim := New(policy.NewBaselineCompute(), 8, clk, nil)

	for i := 0; i < 8; i++ {
		sim.Enqueue(10_000_000) // long-running, won't finish mid-test
	}
	sim.Tick()
	assert.Equal(t, 8, sim.BusyWorkerCount())

	// Resizing the pool below the busy count must never interrupt
	// in-flight tasks: all 8 busy workers must survive.
	sim.resize(2)
	assert.Equal(t, 8, sim.WorkerCount(), "shrink below the busy count should be deferred, not forced")
	assert.Equal(t, 8, sim.BusyWorkerCount())
}

func TestResizeDownRemovesOnlyIdleWorkers(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	sim := New(policy.NewBaselineCompute(), 8, clk, nil)

	sim.Enqueue(10_000_000)
	sim.Tick()
	assert.Equal(t, 1, sim.BusyWorkerCount())

	sim.resize(2)
	assert.Equal(t, 2, sim.WorkerCount())
	assert.Equal(t, 1, sim.BusyWorkerCount(), "the one busy worker must remain among the surviving two")
}

func TestResizeUpAddsIdleWorkers(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	sim := New(policy.NewBaselineCompute(), 2, clk, nil)

	sim.resize(8)
	assert.Equal(t, 8, sim.WorkerCount())
	assert.Equal(t, 0, sim.BusyWorkerCount())
}
