package metrics

import "github.com/prometheus/client_golang/prometheus"

// ComputeCollectors aggregates the run metrics the worker-pool
// simulator reports: per-task completion time, periodic throughput
// samples, and worker-count decision churn.
type ComputeCollectors struct {
	taskTimeUS        *sampleSeries
	throughputSamples *sampleSeries
	decisionChanges   Counter
	workerCount       Gauge
}

// NewComputeCollectors builds a collector set. reg may be nil to run
// without a prometheus registry (e.g. in tests).
func NewComputeCollectors(reg prometheus.Registerer) *ComputeCollectors {
	return &ComputeCollectors{
		taskTimeUS:        newSampleSeries("compute_task_time_us", "Per-task arrival-to-completion time in microseconds.", latencyBucketsUS, reg),
		throughputSamples: newSampleSeries("compute_throughput_tasks_per_sec", "Per-second task completion throughput samples.", prometheus.LinearBuckets(0, 1000, 10), reg),
		decisionChanges:   NewCounter("compute_decision_changes_total", "Number of times the pool-sizing policy's decision changed.", reg),
		workerCount:       NewGauge("compute_worker_count", "Current worker pool size.", reg),
	}
}

func (c *ComputeCollectors) RecordTaskTime(us float64) { c.taskTimeUS.observe(us) }

func (c *ComputeCollectors) RecordThroughput(tasksPerSec float64) {
	c.throughputSamples.observe(tasksPerSec)
}

func (c *ComputeCollectors) RecordDecisionChange() { c.decisionChanges.Inc() }

func (c *ComputeCollectors) SetWorkerCount(n int) { c.workerCount.Set(float64(n)) }

func (c *ComputeCollectors) TaskTimeP50US() float64 { return c.taskTimeUS.percentile(50) }
func (c *ComputeCollectors) TaskTimeP95US() float64 { return c.taskTimeUS.percentile(95) }
func (c *ComputeCollectors) TaskTimeP99US() float64 { return c.taskTimeUS.percentile(99) }

func (c *ComputeCollectors) MeanThroughput() float64 {
	c.throughputSamples.mu.RLock()
	defer c.throughputSamples.mu.RUnlock()
	if len(c.throughputSamples.values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range c.throughputSamples.values {
		sum += v
	}
	return sum / float64(len(c.throughputSamples.values))
}

func (c *ComputeCollectors) DecisionChanges() int64 { return c.decisionChanges.Read() }

func (c *ComputeCollectors) TaskCount() int { return c.taskTimeUS.len() }
