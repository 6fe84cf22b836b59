package workload

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/luxfi/nematode/internal/sampler"
)

// kolmogorovSmirnovDistance returns the one-sample KS statistic between
// the empirical distribution of sorted samples and a reference CDF:
// the maximum absolute gap between the empirical step function and the
// reference curve.
func kolmogorovSmirnovDistance(sorted []float64, cdf func(float64) float64) float64 {
	n := float64(len(sorted))
	maxDist := 0.0
	for i, x := range sorted {
		empiricalBefore := float64(i) / n
		empiricalAfter := float64(i+1) / n
		ref := cdf(x)
		if d := math.Abs(empiricalAfter - ref); d > maxDist {
			maxDist = d
		}
		if d := math.Abs(empiricalBefore - ref); d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

func TestSteadyTransportMatchesExponentialDistribution(t *testing.T) {
	const rate = 1000.0
	const n = 200000
	src := sampler.NewSource(42)
	g := NewSteadyTransport(rate, 1024, math.MaxFloat64, src)

	waits := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		a, ok := g.Next()
		require.True(t, ok)
		waits = append(waits, a.WaitSeconds)
	}

	sum := 0.0
	for _, w := range waits {
		sum += w
	}
	mean := sum / float64(len(waits))
	assert.InDelta(t, 1.0/rate, mean, 0.01*(1.0/rate), "empirical mean inter-arrival should be within 1%% of 1/lambda")

	sort.Float64s(waits)
	dist := distuv.Exponential{Rate: rate}
	ks := kolmogorovSmirnovDistance(waits, dist.CDF)
	assert.Less(t, ks, 0.01, "KS distance from the exponential CDF should stay below 0.01")
}

func TestBurstyTransportStopsAtDuration(t *testing.T) {
	src := sampler.NewSource(7)
	g := NewBurstyTransport(5000.0, 100.0, 1024, 5.0, 10.0, src)

	count := 0
	for {
		_, ok := g.Next()
		if !ok {
			break
		}
		count++
		if count > 1_000_000 {
			t.Fatal("generator did not terminate within its configured duration")
		}
	}
	assert.Greater(t, count, 0)
}

func TestAdversarialTransportStaysWithinSizeRange(t *testing.T) {
	src := sampler.NewSource(3)
	g := NewAdversarialTransport(1000.0, 256, 2048, 1.0, src)

	for i := 0; i < 500; i++ {
		a, ok := g.Next()
		if !ok {
			break
		}
		assert.GreaterOrEqual(t, a.SizeBytes, 256)
		assert.LessOrEqual(t, a.SizeBytes, 2048)
	}
}

func TestGeneratorsStopAtDuration(t *testing.T) {
	src := sampler.NewSource(1)
	g := NewSteadyTransport(1.0, 64, 0, src)
	_, ok := g.Next()
	assert.False(t, ok, "a zero-duration generator should never produce an arrival")
}

func TestSteadyComputeMatchesExponentialDistribution(t *testing.T) {
	const rate = 500.0
	const n = 100000
	src := sampler.NewSource(99)
	g := NewSteadyCompute(rate, 2000, math.MaxFloat64, src)

	waits := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		a, ok := g.Next()
		require.True(t, ok)
		waits = append(waits, a.WaitSeconds)
	}
	sort.Float64s(waits)
	dist := distuv.Exponential{Rate: rate}
	ks := kolmogorovSmirnovDistance(waits, dist.CDF)
	assert.Less(t, ks, 0.01)
}
