package metrics

import "github.com/prometheus/client_golang/prometheus"

// latencyBucketsUS covers 10us through roughly 330ms in 16 doubling
// buckets, where flush-policy latency in the packet simulator is
// expected to land.
var latencyBucketsUS = prometheus.ExponentialBuckets(10, 2, 16)

// TransportCollectors aggregates the run metrics the packet-transport
// simulator reports: per-packet flush latency, periodic throughput
// samples, and control-decision churn.
type TransportCollectors struct {
	latencyUS       *sampleSeries
	throughputSamples *sampleSeries
	decisionChanges Counter
	queueDepth      Gauge
}

// NewTransportCollectors builds a collector set. reg may be nil to run
// without a prometheus registry (e.g. in tests).
func NewTransportCollectors(reg prometheus.Registerer) *TransportCollectors {
	return &TransportCollectors{
		latencyUS:         newSampleSeries("transport_flush_latency_us", "Per-packet queue-to-flush latency in microseconds.", latencyBucketsUS, reg),
		throughputSamples: newSampleSeries("transport_throughput_pkts_per_sec", "Per-second packet throughput samples.", prometheus.LinearBuckets(0, 1000, 10), reg),
		decisionChanges:   NewCounter("transport_decision_changes_total", "Number of times the flush policy's decision changed.", reg),
		queueDepth:        NewGauge("transport_queue_depth", "Current resident packet count.", reg),
	}
}

func (c *TransportCollectors) RecordLatency(us float64) { c.latencyUS.observe(us) }

func (c *TransportCollectors) RecordThroughput(pktsPerSec float64) {
	c.throughputSamples.observe(pktsPerSec)
}

func (c *TransportCollectors) RecordDecisionChange() { c.decisionChanges.Inc() }

func (c *TransportCollectors) SetQueueDepth(depth int) { c.queueDepth.Set(float64(depth)) }

func (c *TransportCollectors) LatencyP50US() float64 { return c.latencyUS.percentile(50) }
func (c *TransportCollectors) LatencyP95US() float64 { return c.latencyUS.percentile(95) }
func (c *TransportCollectors) LatencyP99US() float64 { return c.latencyUS.percentile(99) }

func (c *TransportCollectors) MeanThroughput() float64 {
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

func (c *TransportCollectors) DecisionChanges() int64 { return c.decisionChanges.Read() }

func (c *TransportCollectors) PacketCount() int { return c.latencyUS.len() }
