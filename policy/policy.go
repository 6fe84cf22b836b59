// Package policy implements the control policies that turn telemetry
// into actionable decisions: static baselines, and reflex-backed
// policies that run inference through a hold-time throttle.
package policy

import (
	"github.com/luxfi/nematode/telemetry"
)

// Clock is shared with telemetry.Clock so policies and collectors can
// be driven by the same injected time source in tests.
type Clock = telemetry.Clock

// TransportDecision is the packet-transport control output: the queue
// depth that triggers a flush, and the maximum age a resident packet
// may reach before one is forced.
type TransportDecision struct {
	ThresholdPackets uint32
	MaxDelayUS       uint32
}

// Changed reports whether d differs from other in any field.
func (d TransportDecision) Changed(other TransportDecision) bool {
	return d.ThresholdPackets != other.ThresholdPackets || d.MaxDelayUS != other.MaxDelayUS
}

// TransportPolicy is the single-operation abstraction the packet
// transport simulator drives each tick.
type TransportPolicy interface {
	Decide(telemetry.TransportSample) TransportDecision
}

// ComputeDecision is the worker-pool control output.
type ComputeDecision struct {
	NWorkers uint32
}

// Changed reports whether d differs from other.
func (d ComputeDecision) Changed(other ComputeDecision) bool {
	return d.NWorkers != other.NWorkers
}

// ComputePolicy is the single-operation abstraction the worker-pool
// simulator drives each tick.
type ComputePolicy interface {
	Decide(telemetry.ComputeSample) ComputeDecision
}

// clampWorkers enforces the [1, 64] actionable worker-count range. A
// reflex producing 0 or negative workers is a degenerate condition:
// recovered locally by clamping, not fatal.
func clampWorkers(n int64) uint32 {
	const minWorkers, maxWorkers = 1, 64
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return uint32(n)
}

// roundToUint32 rounds a reflex output to the nearest integer and
// floors negative results at 0, mirroring the original training
// pipeline's f32::round() as u32 cast.
func roundToUint32(v float32) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v + 0.5)
}
