// Package simcompute is a discrete-event simulator of a task queue
// served by a resizable worker pool, whose size is driven by a
// pluggable control policy. Each tick completes finished tasks,
// assigns queued tasks to idle workers, evaluates telemetry, consults
// the policy, and resizes the pool. Busy workers are never preempted:
// shrinking only removes workers that are currently idle.
package simcompute

import (
	"sort"
	"time"

	"github.com/luxfi/nematode/metrics"
	"github.com/luxfi/nematode/policy"
	"github.com/luxfi/nematode/telemetry"
)

// Task is one simulated unit of work.
type Task struct {
	ID          uint64
	WorkUS      uint64
	ArrivalTime time.Time
	StartTime   time.Time
	started     bool
}

type worker struct {
	task       *Task
	finishedAt time.Time
}

func (w *worker) idle() bool { return w.task == nil }

func (w *worker) assign(t Task, now time.Time) {
	t.StartTime = now
	t.started = true
	w.task = &t
	w.finishedAt = now.Add(time.Duration(t.WorkUS) * time.Microsecond)
}

func (w *worker) checkComplete(now time.Time) *Task {
	if w.task == nil || now.Before(w.finishedAt) {
		return nil
	}
	t := w.task
	w.task = nil
	return t
}

// mark timestamps a one-second rolling window entry.
type mark struct {
	at time.Time
}

// Simulator drives a task queue and worker pool against a
// policy.ComputePolicy.
type Simulator struct {
	queue   []Task
	workers []*worker
	policy  policy.ComputePolicy
	clock   telemetry.Clock
	stats   *metrics.ComputeCollectors

	nextTaskID   uint64
	lastDecision policy.ComputeDecision
	hasDecision  bool

	completedSincePeriod int
	lastThroughputAt     time.Time

	arrivals     []mark
	completions  []mark
	taskTimesWindowUS []float64
}

// New builds a Simulator with initialWorkers idle workers. clock
// defaults to telemetry.SystemClock if nil; stats defaults to an
// unregistered ComputeCollectors if nil.
func New(p policy.ComputePolicy, initialWorkers int, clock telemetry.Clock, stats *metrics.ComputeCollectors) *Simulator {
	if clock == nil {
		clock = telemetry.SystemClock{}
	}
	if stats == nil {
		stats = metrics.NewComputeCollectors(nil)
	}
	workers := make([]*worker, initialWorkers)
	for i := range workers {
		workers[i] = &worker{}
	}
	return &Simulator{policy: p, workers: workers, clock: clock, stats: stats, lastThroughputAt: clock.Now()}
}

// Enqueue admits a new task requiring workUS of work, timestamped at
// the current clock reading.
func (s *Simulator) Enqueue(workUS uint64) {
	now := s.clock.Now()
	s.queue = append(s.queue, Task{ID: s.nextTaskID, WorkUS: workUS, ArrivalTime: now})
	s.nextTaskID++
	s.arrivals = append(s.arrivals, mark{at: now})
}

// Tick advances the simulator by one control cycle: complete finished
// tasks, assign queued work to idle workers, consult the policy, and
// resize the pool to match its decision.
func (s *Simulator) Tick() {
	now := s.clock.Now()

	for _, w := range s.workers {
		if t := w.checkComplete(now); t != nil {
			totalUS := float64(now.Sub(t.ArrivalTime).Microseconds())
			s.stats.RecordTaskTime(totalUS)
			s.taskTimesWindowUS = append(s.taskTimesWindowUS, totalUS)
			s.completedSincePeriod++
			s.completions = append(s.completions, mark{at: now})
		}
	}

	for _, w := range s.workers {
		if w.idle() && len(s.queue) > 0 {
			t := s.queue[0]
			s.queue = s.queue[1:]
			w.assign(t, now)
		}
	}

	sample := s.collectTelemetry(now)
	decision := s.policy.Decide(sample)

	if s.hasDecision && decision.Changed(s.lastDecision) {
		s.stats.RecordDecisionChange()
	}
	s.lastDecision = decision
	s.hasDecision = true

	s.resize(int(decision.NWorkers))
	s.stats.SetWorkerCount(len(s.workers))

	if now.Sub(s.lastThroughputAt) >= time.Second {
		elapsed := now.Sub(s.lastThroughputAt).Seconds()
		if elapsed > 0 {
			s.stats.RecordThroughput(float64(s.completedSincePeriod) / elapsed)
		}
		s.completedSincePeriod = 0
		s.lastThroughputAt = now
	}

	cutoff := now.Add(-time.Second)
	s.arrivals = evictBefore(s.arrivals, cutoff)
	s.completions = evictBefore(s.completions, cutoff)
}

// resize grows the pool with fresh idle workers, or shrinks it by
// removing idle workers only — a busy worker is never interrupted, so
// shrink requests below the current busy count take effect gradually
// as workers finish.
func (s *Simulator) resize(target int) {
	current := len(s.workers)
	if target > current {
		for i := current; i < target; i++ {
			s.workers = append(s.workers, &worker{})
		}
		return
	}
	if target < current {
		toRemove := current - target
		kept := s.workers[:0]
		for _, w := range s.workers {
			if toRemove > 0 && w.idle() {
				toRemove--
				continue
			}
			kept = append(kept, w)
		}
		s.workers = kept
	}
}

func evictBefore(marks []mark, cutoff time.Time) []mark {
	kept := marks[:0]
	for _, m := range marks {
		if !m.at.Before(cutoff) {
			kept = append(kept, m)
		}
	}
	return kept
}

// collectTelemetry computes the compute telemetry schema from current
// queue and worker state. ctx_switches_per_sec has no real scheduler
// underneath this simulator to sample, so it is estimated as a coarse
// multiple of the pool size, matching the reference collector's
// convention.
func (s *Simulator) collectTelemetry(now time.Time) telemetry.ComputeSample {
	runqLen := uint32(len(s.queue))

	arrivalRate := float32(len(s.arrivals))
	completionRate := float32(len(s.completions))

	p50, p95 := percentileUS(s.taskTimesWindowUS)

	busy := 0
	for _, w := range s.workers {
		if !w.idle() {
			busy++
		}
	}
	var workerUtil float32
	if len(s.workers) > 0 {
		workerUtil = float32(busy) / float32(len(s.workers))
	}
	idleCount := uint32(len(s.workers) - busy)

	var sizeSum, sizeCount float64
	for _, t := range s.queue {
		sizeSum += float64(t.WorkUS)
		sizeCount++
	}
	var sizeMean float32
	if sizeCount > 0 {
		sizeMean = float32(sizeSum / sizeCount)
	}
	var sizeVar float32
	if sizeCount > 0 {
		var varSum float64
		for _, t := range s.queue {
			d := float64(t.WorkUS) - float64(sizeMean)
			varSum += d * d
		}
		sizeVar = float32(varSum / sizeCount)
	}

	return telemetry.ComputeSample{
		RunQueueLen:       runqLen,
		ArrivalRate:       arrivalRate,
		CompletionRate:    completionRate,
		TaskTimeP50US:     float32(p50),
		TaskTimeP95US:     float32(p95),
		WorkerUtil:        workerUtil,
		CtxSwitchesPerSec: float32(len(s.workers) * 10),
		TaskSizeMean:      sizeMean,
		TaskSizeVar:       sizeVar,
		IdleWorkerCount:   idleCount,
	}
}

func percentileUS(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	p50 := sorted[len(sorted)/2]
	p95idx := int(float64(len(sorted)) * 0.95)
	if p95idx >= len(sorted) {
		p95idx = len(sorted) - 1
	}
	return p50, sorted[p95idx]
}

// QueueLen reports the current queued (unassigned) task count.
func (s *Simulator) QueueLen() int { return len(s.queue) }

// WorkerCount reports the current pool size.
func (s *Simulator) WorkerCount() int { return len(s.workers) }

// BusyWorkerCount reports how many workers currently hold a task.
func (s *Simulator) BusyWorkerCount() int {
	busy := 0
	for _, w := range s.workers {
		if !w.idle() {
			busy++
		}
	}
	return busy
}

// Stats exposes the collector backing this run's metrics.
func (s *Simulator) Stats() *metrics.ComputeCollectors { return s.stats }
