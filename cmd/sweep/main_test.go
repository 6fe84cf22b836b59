package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSweepReportsAllPoolSizes(t *testing.T) {
	report := runSweep(50.0, 500, 1, 1)

	assert.Contains(t, report, "=== Pool Size Sweep ===")
	assert.Contains(t, report, "Workload: 50 tasks/sec, 500 us/task, 1 sec duration")
	for _, n := range poolSizes {
		assert.Contains(t, report, itoaForTest(n))
	}
	assert.Contains(t, report, "=== Empirical Optimum ===")
	assert.True(t, strings.Contains(report, "Best N:"))
}

func TestRunSweepIsDeterministicForTheSameSeed(t *testing.T) {
	a := runSweep(50.0, 500, 1, 7)
	b := runSweep(50.0, 500, 1, 7)
	assert.Equal(t, a, b, "the same seed must reproduce identical reported figures")
}

func TestFormatSweepReportPicksLowestP95(t *testing.T) {
	results := []sweepResult{
		{NWorkers: 1, P95US: 900},
		{NWorkers: 2, P95US: 100},
		{NWorkers: 4, P95US: 500},
	}
	report := formatSweepReport(10, 500, 1, results)
	assert.Contains(t, report, "Best N: 2 (p95 = 100 us)")
}

func itoaForTest(n uint32) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
