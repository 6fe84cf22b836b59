package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizerMinMax(t *testing.T) {
	n := NewNormalizer()

	var f1, f2 [FeatureCount]float32
	f1[0], f2[0] = 10, 20
	n.Observe(f1)
	n.Observe(f2)

	assert.Equal(t, float32(0.0), n.Normalize(f1)[0])
	assert.Equal(t, float32(1.0), n.Normalize(f2)[0])

	var mid [FeatureCount]float32
	mid[0] = 15
	assert.Equal(t, float32(0.5), n.Normalize(mid)[0])
}

func TestNormalizerDegenerateRange(t *testing.T) {
	n := NewNormalizer()
	var f [FeatureCount]float32
	f[3] = 42
	n.Observe(f)
	n.Observe(f) // min == max now

	assert.Equal(t, float32(0.5), n.Normalize(f)[3])
}

func TestNormalizerDenormalizeRoundTrip(t *testing.T) {
	n := NewNormalizer()
	var lo, hi [FeatureCount]float32
	for i := range lo {
		lo[i] = float32(i)
		hi[i] = float32(i + 100)
	}
	n.Observe(lo)
	n.Observe(hi)

	var x [FeatureCount]float32
	for i := range x {
		x[i] = 0.25
	}
	denorm := n.Denormalize(x)
	renorm := n.Normalize(denorm)
	for i := range x {
		assert.InDelta(t, x[i], renorm[i], 1e-5)
	}
}
