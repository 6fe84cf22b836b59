// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command sweep measures empirical p95 task time across a fixed set of
// worker-pool sizes under a steady workload, and reports the size that
// minimizes p95 — the ground-truth optimum a trained reflex is judged
// against.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/luxfi/nematode/internal/sampler"
	"github.com/luxfi/nematode/metrics"
	"github.com/luxfi/nematode/policy"
	"github.com/luxfi/nematode/simcompute"
	"github.com/luxfi/nematode/telemetry"
	"github.com/luxfi/nematode/workload"
)

// poolSizes is the fixed set of worker counts swept for every run.
var poolSizes = []uint32{1, 2, 4, 8, 16, 32, 64}

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Usage: sweep <arrival_rate> <task_us> <duration_secs>")
		fmt.Fprintln(os.Stderr, "Example: sweep 100 500 5")
		os.Exit(1)
	}

	arrivalRate, err := strconv.ParseFloat(os.Args[1], 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "arrival_rate must be a float")
		os.Exit(1)
	}
	taskUS, err := strconv.ParseUint(os.Args[2], 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "task_us must be a uint64")
		os.Exit(1)
	}
	durationSecs, err := strconv.ParseUint(os.Args[3], 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duration_secs must be a uint64")
		os.Exit(1)
	}

	fmt.Print(runSweep(arrivalRate, taskUS, durationSecs, 1))
}

// sweepResult holds one pool size's measured run.
type sweepResult struct {
	NWorkers       uint32
	P50US          float64
	P95US          float64
	P99US          float64
	MeanThroughput float64
}

// runSweep runs the fixed-N pool-size sweep and returns the formatted
// report exactly as printed to stdout by main.
func runSweep(arrivalRate float64, taskUS, durationSecs uint64, seed int64) string {
	results := make([]sweepResult, 0, len(poolSizes))
	for _, n := range poolSizes {
		src := sampler.NewSource(seed)
		stats := runFixedPoolSize(n, arrivalRate, taskUS, durationSecs, src)
		results = append(results, sweepResult{
			NWorkers:       n,
			P50US:          stats.TaskTimeP50US(),
			P95US:          stats.TaskTimeP95US(),
			P99US:          stats.TaskTimeP99US(),
			MeanThroughput: stats.MeanThroughput(),
		})
	}
	return formatSweepReport(arrivalRate, taskUS, durationSecs, results)
}

// runFixedPoolSize runs one full simulation at a fixed worker count and
// returns its collected metrics.
func runFixedPoolSize(n uint32, arrivalRate float64, taskUS, durationSecs uint64, src sampler.Source) *metrics.ComputeCollectors {
	stats := metrics.NewComputeCollectors(nil)
	p := policy.NewFixedCompute(n)
	sim := simcompute.New(p, int(n), telemetry.SystemClock{}, stats)

	gen := workload.NewSteadyCompute(arrivalRate, taskUS, float64(durationSecs), src)
	for {
		arrival, ok := gen.Next()
		if !ok {
			break
		}
		time.Sleep(time.Duration(arrival.WaitSeconds * float64(time.Second)))
		sim.Enqueue(arrival.WorkUS)
		sim.Tick()
	}
	sim.Tick()
	return stats
}

// formatSweepReport renders results as the table and best-N summary,
// tracking the N with the lowest p95.
func formatSweepReport(arrivalRate float64, taskUS, durationSecs uint64, results []sweepResult) string {
	out := "=== Pool Size Sweep ===\n"
	out += fmt.Sprintf("Workload: %v tasks/sec, %d us/task, %d sec duration\n\n", arrivalRate, taskUS, durationSecs)
	out += fmt.Sprintf("%-10s %12s %12s %12s %15s\n", "N Workers", "p50 (us)", "p95 (us)", "p99 (us)", "Throughput")
	out += dashes(65) + "\n"

	bestN := results[0].NWorkers
	bestP95 := results[0].P95US
	for _, r := range results {
		out += fmt.Sprintf("%-10d %12.0f %12.0f %12.0f %15.2f\n", r.NWorkers, r.P50US, r.P95US, r.P99US, r.MeanThroughput)
		if r.P95US < bestP95 {
			bestP95 = r.P95US
			bestN = r.NWorkers
		}
	}

	out += "\n=== Empirical Optimum ===\n"
	out += fmt.Sprintf("Best N: %d (p95 = %.0f us)\n", bestN, bestP95)
	return out
}

func dashes(n int) string {
	d := make([]byte, n)
	for i := range d {
		d[i] = '-'
	}
	return string(d)
}
