package policy

import (
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/nematode/reflex"
	"github.com/luxfi/nematode/telemetry"
)

// BaselineCompute always returns the same worker count: 8 when built by
// NewBaselineCompute, or the pinned n when built by NewFixedCompute.
type BaselineCompute struct {
	decision ComputeDecision
}

// NewBaselineCompute returns the static compute policy: 8 workers.
func NewBaselineCompute() *BaselineCompute {
	return &BaselineCompute{decision: ComputeDecision{NWorkers: 8}}
}

// NewFixedCompute returns a static compute policy pinned to n workers,
// clamped to the actionable [1, 64] range. Used by the pool-size sweep
// to measure each candidate N in isolation.
func NewFixedCompute(n uint32) *BaselineCompute {
	return &BaselineCompute{decision: ComputeDecision{NWorkers: clampWorkers(int64(n))}}
}

func (p *BaselineCompute) Decide(telemetry.ComputeSample) ComputeDecision {
	return p.decision
}

// ReflexCompute loads a reflex and normalizer and uses them to pick a
// worker count, holding the last decision flat for hold_time between
// re-evaluations.
type ReflexCompute struct {
	reflex     *reflex.Reflex
	normalizer *telemetry.Normalizer
	holdTime   time.Duration
	clock      Clock
	logger     log.Logger

	lastDecision ComputeDecision
	lastAt       time.Time
	hasDecision  bool
}

// NewReflexCompute builds a reflex-backed compute policy. holdTime
// defaults to 500ms if zero.
func NewReflexCompute(r *reflex.Reflex, normalizer *telemetry.Normalizer, holdTime time.Duration, clock Clock, logger log.Logger) *ReflexCompute {
	if holdTime == 0 {
		holdTime = 500 * time.Millisecond
	}
	if clock == nil {
		clock = telemetry.SystemClock{}
	}
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &ReflexCompute{reflex: r, normalizer: normalizer, holdTime: holdTime, clock: clock, logger: logger}
}

func (p *ReflexCompute) Decide(sample telemetry.ComputeSample) ComputeDecision {
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
		return ComputeDecision{NWorkers: 8}
	}
	if len(outputs) < 1 {
		p.logger.Warn("reflex produced no outputs for compute schema")
		return p.lastDecision
	}

	nWorkers := clampWorkers(int64(roundToUint32(outputs[0])))
	if nWorkers == 1 && outputs[0] <= 0 {
		p.logger.Warn("policy degenerate: reflex requested non-positive worker count", "raw", outputs[0])
	}
	decision := ComputeDecision{NWorkers: nWorkers}

	if p.hasDecision && decision.Changed(p.lastDecision) {
		p.logger.Info("compute decision changed", "n_workers", decision.NWorkers)
	}

	p.lastDecision = decision
	p.lastAt = now
	p.hasDecision = true
	return decision
}
