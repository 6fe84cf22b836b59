package workload

import (
	"math"

	"github.com/luxfi/nematode/internal/sampler"
)

// ComputeArrival carries a generated task's wait time and work size.
type ComputeArrival struct {
	WaitSeconds float64
	WorkUS      uint64
}

// ComputeGenerator produces a bounded sequence of task arrivals. Next
// returns ok=false once the generator's configured duration has
// elapsed.
type ComputeGenerator interface {
	Next() (ComputeArrival, bool)
}

// SteadyCompute generates tasks at a single fixed Poisson rate with a
// constant work size, for the configured duration.
type SteadyCompute struct {
	rate      float64
	workUS    uint64
	duration  float64
	elapsed   float64
	src       sampler.Source
}

func NewSteadyCompute(ratePerSec float64, workUS uint64, durationSeconds float64, src sampler.Source) *SteadyCompute {
	return &SteadyCompute{rate: ratePerSec, workUS: workUS, duration: durationSeconds, src: src}
}

func (g *SteadyCompute) Next() (ComputeArrival, bool) {
	if g.elapsed >= g.duration {
		return ComputeArrival{}, false
	}
	wait := expInterArrival(g.src, g.rate)
	g.elapsed += wait
	return ComputeArrival{WaitSeconds: wait, WorkUS: g.workUS}, true
}

// BurstyCompute alternates between a high rate and a low rate every
// period.
type BurstyCompute struct {
	highRate, lowRate float64
	workUS            uint64
	period            float64
	duration          float64
	elapsed           float64
	src               sampler.Source
}

func NewBurstyCompute(highRate, lowRate float64, workUS uint64, periodSeconds, durationSeconds float64, src sampler.Source) *BurstyCompute {
	return &BurstyCompute{highRate: highRate, lowRate: lowRate, workUS: workUS, period: periodSeconds, duration: durationSeconds, src: src}
}

func (g *BurstyCompute) currentRate() float64 {
	phase := math.Mod(g.elapsed, g.period*2)
	if phase < g.period {
		return g.highRate
	}
	return g.lowRate
}

func (g *BurstyCompute) Next() (ComputeArrival, bool) {
	if g.elapsed >= g.duration {
		return ComputeArrival{}, false
	}
	wait := expInterArrival(g.src, g.currentRate())
	g.elapsed += wait
	return ComputeArrival{WaitSeconds: wait, WorkUS: g.workUS}, true
}

// AdversarialCompute jitters the arrival rate by a random multiplier
// every task and draws a random work size within a range.
type AdversarialCompute struct {
	baseRate          float64
	minWorkUS, maxWorkUS uint64
	duration, elapsed float64
	src               sampler.Source
}

func NewAdversarialCompute(baseRate float64, minWorkUS, maxWorkUS uint64, durationSeconds float64, src sampler.Source) *AdversarialCompute {
	return &AdversarialCompute{baseRate: baseRate, minWorkUS: minWorkUS, maxWorkUS: maxWorkUS, duration: durationSeconds, src: src}
}

func (g *AdversarialCompute) Next() (ComputeArrival, bool) {
	if g.elapsed >= g.duration {
		return ComputeArrival{}, false
	}
	multiplier := 0.1 + uniform01(g.src)*4.9
	wait := expInterArrival(g.src, g.baseRate*multiplier)
	g.elapsed += wait

	span := g.maxWorkUS - g.minWorkUS
	work := g.minWorkUS
	if span > 0 {
		work += uint64(uniform01(g.src) * float64(span+1))
	}
	return ComputeArrival{WaitSeconds: wait, WorkUS: work}, true
}
