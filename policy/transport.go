package policy

import (
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/nematode/reflex"
	"github.com/luxfi/nematode/telemetry"
)

// BaselineTransport always returns a fixed flush threshold and max
// delay; it never changes, so simulators driven by it report zero
// decision changes.
type BaselineTransport struct {
	decision TransportDecision
}

// NewBaselineTransport returns the static transport policy: threshold
// 16 packets, 500µs max hold delay.
func NewBaselineTransport() *BaselineTransport {
	return &BaselineTransport{decision: TransportDecision{ThresholdPackets: 16, MaxDelayUS: 500}}
}

func (p *BaselineTransport) Decide(telemetry.TransportSample) TransportDecision {
	return p.decision
}

// ReflexTransport loads a reflex and normalizer and uses them to pick a
// flush threshold and max delay, holding the last decision flat for
// hold_time between re-evaluations.
type ReflexTransport struct {
	reflex     *reflex.Reflex
	normalizer *telemetry.Normalizer
	holdTime   time.Duration
	clock      Clock
	logger     log.Logger

	lastDecision TransportDecision
	lastAt       time.Time
	hasDecision  bool
}

// NewReflexTransport builds a reflex-backed transport policy. holdTime
// defaults to 300ms if zero. A nil clock uses the system wall clock; a
// nil logger discards everything.
func NewReflexTransport(r *reflex.Reflex, normalizer *telemetry.Normalizer, holdTime time.Duration, clock Clock, logger log.Logger) *ReflexTransport {
	if holdTime == 0 {
		holdTime = 300 * time.Millisecond
	}
	if clock == nil {
		clock = telemetry.SystemClock{}
	}
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &ReflexTransport{reflex: r, normalizer: normalizer, holdTime: holdTime, clock: clock, logger: logger}
}

func (p *ReflexTransport) Decide(sample telemetry.TransportSample) TransportDecision {
	now := p.clock.Now()
	if p.hasDecision && now.Sub(p.lastAt) < p.holdTime {
		return p.lastDecision
	}

	normalized := p.normalizer.Normalize(sample.Features())
	outputs, err := p.reflex.Infer(normalized[:])
	if err != nil {
		p.logger.Warn("reflex inference failed, holding last decision", "error", err)
		if p.hasDecision {
			return p.lastDecision
		}
		return TransportDecision{ThresholdPackets: 16, MaxDelayUS: 500}
	}
	if len(outputs) < 2 {
		p.logger.Warn("reflex produced too few outputs for transport schema", "outputs", len(outputs))
		return p.lastDecision
	}

	decision := TransportDecision{
		ThresholdPackets: roundToUint32(outputs[0]),
		MaxDelayUS:       roundToUint32(outputs[1]),
	}

	if p.hasDecision && decision.Changed(p.lastDecision) {
		p.logger.Info("transport decision changed",
			"threshold", decision.ThresholdPackets, "max_delay_us", decision.MaxDelayUS)
	}

	p.lastDecision = decision
	p.lastAt = now
	p.hasDecision = true
	return decision
}
