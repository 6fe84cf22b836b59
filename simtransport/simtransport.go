// Package simtransport is a discrete-event simulator of a packet
// queue whose flush behavior is driven by a pluggable control policy.
// Each tick evaluates telemetry, asks the policy for a decision, and
// flushes whenever the queue depth has reached the decided threshold or
// its oldest resident packet's age has reached the decided delay.
package simtransport

import (
	"sort"
	"time"

	"github.com/luxfi/nematode/metrics"
	"github.com/luxfi/nematode/policy"
	"github.com/luxfi/nematode/telemetry"
)

// Packet is one simulated unit of transport.
type Packet struct {
	ID          uint64
	SizeBytes   int
	ArrivalTime time.Time
}

// Simulator drives a packet queue against a policy.TransportPolicy,
// mirroring the tick loop of the fake transport it's modeled on: check
// telemetry, ask the policy, flush if warranted, and roll throughput
// bookkeeping forward once a second.
type Simulator struct {
	queue  []Packet
	policy policy.TransportPolicy
	clock  telemetry.Clock
	stats  *metrics.TransportCollectors

	nextPacketID uint64
	lastDecision policy.TransportDecision
	hasDecision  bool

	sentSincePeriod  int
	lastThroughputAt time.Time
}

// New builds a Simulator. clock defaults to telemetry.SystemClock if
// nil; stats defaults to an unregistered TransportCollectors if nil.
func New(p policy.TransportPolicy, clock telemetry.Clock, stats *metrics.TransportCollectors) *Simulator {
	if clock == nil {
		clock = telemetry.SystemClock{}
	}
	if stats == nil {
		stats = metrics.NewTransportCollectors(nil)
	}
	return &Simulator{policy: p, clock: clock, stats: stats, lastThroughputAt: clock.Now()}
}

// Enqueue admits a new packet of sizeBytes, timestamped at the current
// clock reading.
func (s *Simulator) Enqueue(sizeBytes int) {
	s.queue = append(s.queue, Packet{ID: s.nextPacketID, SizeBytes: sizeBytes, ArrivalTime: s.clock.Now()})
	s.nextPacketID++
}

// Tick advances the simulator by one control cycle: collect telemetry,
// consult the policy, flush if the decision's conditions are met, and
// roll forward once-a-second throughput accounting.
func (s *Simulator) Tick() {
	now := s.clock.Now()
	sample := s.collectTelemetry(now)
	decision := s.policy.Decide(sample)

	if s.hasDecision && decision.Changed(s.lastDecision) {
		s.stats.RecordDecisionChange()
	}
	s.lastDecision = decision
	s.hasDecision = true

	if len(s.queue) >= int(decision.ThresholdPackets) || s.oldestPacketAgeUS(now) >= uint64(decision.MaxDelayUS) {
		s.Flush(now)
	}

	s.stats.SetQueueDepth(len(s.queue))

	if now.Sub(s.lastThroughputAt) >= time.Second {
		elapsed := now.Sub(s.lastThroughputAt).Seconds()
		if elapsed > 0 {
			s.stats.RecordThroughput(float64(s.sentSincePeriod) / elapsed)
		}
		s.sentSincePeriod = 0
		s.lastThroughputAt = now
	}
}

// Flush drains the entire queue, recording each packet's resident
// latency.
func (s *Simulator) Flush(now time.Time) {
	for _, p := range s.queue {
		latencyUS := float64(now.Sub(p.ArrivalTime).Microseconds())
		s.stats.RecordLatency(latencyUS)
		s.sentSincePeriod++
	}
	s.queue = s.queue[:0]
}

func (s *Simulator) oldestPacketAgeUS(now time.Time) uint64 {
	if len(s.queue) == 0 {
		return 0
	}
	return uint64(now.Sub(s.queue[0].ArrivalTime).Microseconds())
}

// collectTelemetry computes the transport telemetry schema from
// current queue state. The latency percentiles are the ages of the
// resident (not yet flushed) packets, not latencies of packets already
// sent. enqueue_rate, dequeue_rate, byte rates, and the RTT estimate
// are not tracked by this reference collector and are reported as zero
// placeholders, matching the convention the packaged reflexes were
// trained against.
func (s *Simulator) collectTelemetry(now time.Time) telemetry.TransportSample {
	queueDepth := uint32(len(s.queue))

	latencies := make([]float64, len(s.queue))
	for i, p := range s.queue {
		latencies[i] = float64(now.Sub(p.ArrivalTime).Microseconds())
	}
	p50, p95 := percentileLatencies(latencies)

	var sizeSum, sizeCount float64
	for _, p := range s.queue {
		sizeSum += float64(p.SizeBytes)
		sizeCount++
	}
	var sizeMean float32
	if sizeCount > 0 {
		sizeMean = float32(sizeSum / sizeCount)
	}
	var sizeVar float32
	if sizeCount > 0 {
		var varSum float64
		for _, p := range s.queue {
			d := float64(p.SizeBytes) - float64(sizeMean)
			varSum += d * d
		}
		sizeVar = float32(varSum / sizeCount)
	}

	return telemetry.TransportSample{
		QueueDepth:     queueDepth,
		EnqueueRate:    0,
		DequeueRate:    0,
		LatencyP50US:   float32(p50),
		LatencyP95US:   float32(p95),
		BytesInPerSec:  0,
		BytesOutPerSec: 0,
		PacketSizeMean: sizeMean,
		PacketSizeVar:  sizeVar,
		RTTEwmaUS:      0,
	}
}

// percentileLatencies returns (p50, p95) from an unsorted slice
// without mutating the caller's queue ordering.
func percentileLatencies(values []float64) (float64, float64) {
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

// QueueLen reports the current resident packet count.
func (s *Simulator) QueueLen() int { return len(s.queue) }

// Stats exposes the collector backing this run's metrics.
func (s *Simulator) Stats() *metrics.TransportCollectors { return s.stats }
