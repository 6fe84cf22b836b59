package workload

import (
	"math"

	"github.com/luxfi/nematode/internal/sampler"
)

// TransportArrival carries a generated packet's wait time and size.
type TransportArrival struct {
	WaitSeconds float64
	SizeBytes   int
}

// TransportGenerator produces a bounded sequence of packet arrivals.
// Next returns ok=false once the generator's configured duration has
// elapsed.
type TransportGenerator interface {
	Next() (TransportArrival, bool)
}

// SteadyTransport generates packets at a single fixed Poisson rate
// with a constant packet size, for the configured duration.
type SteadyTransport struct {
	rate      float64
	sizeBytes int
	duration  float64
	elapsed   float64
	src       sampler.Source
}

// NewSteadyTransport builds a constant-rate packet generator.
// ratePerSec is the Poisson arrival rate; durationSeconds bounds the
// total generated time span.
func NewSteadyTransport(ratePerSec float64, sizeBytes int, durationSeconds float64, src sampler.Source) *SteadyTransport {
	return &SteadyTransport{rate: ratePerSec, sizeBytes: sizeBytes, duration: durationSeconds, src: src}
}

func (g *SteadyTransport) Next() (TransportArrival, bool) {
	if g.elapsed >= g.duration {
		return TransportArrival{}, false
	}
	wait := expInterArrival(g.src, g.rate)
	g.elapsed += wait
	return TransportArrival{WaitSeconds: wait, SizeBytes: g.sizeBytes}, true
}

// BurstyTransport alternates between a high rate and a low rate every
// period, producing alternating dense and sparse stretches of packets.
type BurstyTransport struct {
	highRate, lowRate float64
	sizeBytes         int
	period            float64
	duration          float64
	elapsed           float64
	src               sampler.Source
}

// NewBurstyTransport builds an alternating high/low rate generator.
// The rate switches every periodSeconds, starting high.
func NewBurstyTransport(highRate, lowRate float64, sizeBytes int, periodSeconds, durationSeconds float64, src sampler.Source) *BurstyTransport {
	return &BurstyTransport{highRate: highRate, lowRate: lowRate, sizeBytes: sizeBytes, period: periodSeconds, duration: durationSeconds, src: src}
}

func (g *BurstyTransport) currentRate() float64 {
	phase := math.Mod(g.elapsed, g.period*2)
	if phase < g.period {
		return g.highRate
	}
	return g.lowRate
}

func (g *BurstyTransport) Next() (TransportArrival, bool) {
	if g.elapsed >= g.duration {
		return TransportArrival{}, false
	}
	wait := expInterArrival(g.src, g.currentRate())
	g.elapsed += wait
	return TransportArrival{WaitSeconds: wait, SizeBytes: g.sizeBytes}, true
}

// AdversarialTransport jitters the arrival rate by a random multiplier
// every packet and draws a random packet size within a range, to
// stress a reflex policy outside the training distribution's modes.
type AdversarialTransport struct {
	baseRate          float64
	minSize, maxSize  int
	duration, elapsed float64
	src               sampler.Source
}

// NewAdversarialTransport builds a rate-jittering, size-jittering
// generator. Each packet's instantaneous rate is baseRate times a
// uniform multiplier in [0.1, 5.0), and its size is drawn uniformly
// from [minSizeBytes, maxSizeBytes].
func NewAdversarialTransport(baseRate float64, minSizeBytes, maxSizeBytes int, durationSeconds float64, src sampler.Source) *AdversarialTransport {
	return &AdversarialTransport{baseRate: baseRate, minSize: minSizeBytes, maxSize: maxSizeBytes, duration: durationSeconds, src: src}
}

func (g *AdversarialTransport) Next() (TransportArrival, bool) {
	if g.elapsed >= g.duration {
		return TransportArrival{}, false
	}
	multiplier := 0.1 + uniform01(g.src)*4.9
	wait := expInterArrival(g.src, g.baseRate*multiplier)
	g.elapsed += wait

	span := g.maxSize - g.minSize
	size := g.minSize
	if span > 0 {
		size += int(uniform01(g.src) * float64(span+1))
	}
	return TransportArrival{WaitSeconds: wait, SizeBytes: size}, true
}
