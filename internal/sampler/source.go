// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sampler supplies the seeded randomness source the workload
// generators draw from, kept behind an interface so tests can swap in
// a deterministic fake without touching math/rand directly.
package sampler

import "math/rand"

// Source represents a source of randomness: reseedable, and able to
// produce raw 64-bit draws for the workload package's uniform/exponential
// transforms.
type Source interface {
	Seed(int64)
	Uint64() uint64
}

// source wraps a *rand.Rand to implement our Source interface
type source struct {
	*rand.Rand
}

// NewSource returns a new Source seeded deterministically. The same
// seed always produces the same arrival sequence, which is what makes
// sweep runs reproducible across invocations.
func NewSource(seed int64) Source {
	return &source{
		Rand: rand.New(rand.NewSource(seed)),
	}
}