// Package workload generates synthetic arrival sequences for the
// packet-transport and worker-pool simulators. Every generator produces
// exponentially distributed inter-arrival times, matching a Poisson
// arrival process at whatever instantaneous rate it is configured for.
package workload

import (
	"math"

	"github.com/luxfi/nematode/internal/sampler"
)

// expInterArrival draws a single exponential inter-arrival wait time
// for a Poisson process of the given rate (events/sec), using the
// standard inverse-CDF transform: wait = -ln(U) / lambda.
func expInterArrival(src sampler.Source, rate float64) float64 {
	u := uniform01(src)
	// u is drawn from [0,1); guard the degenerate u=0 case so the log
	// never produces +Inf.
	if u <= 0 {
		u = math.SmallestNonzeroFloat64
	}
	return -math.Log(u) / rate
}

// uniform01 draws a uniform float64 in [0,1) from the top 53 of the
// source's 64 random bits, so every value is an exact multiple of 2^-53.
func uniform01(src sampler.Source) float64 {
	return float64(src.Uint64()>>11) / (1 << 53)
}
