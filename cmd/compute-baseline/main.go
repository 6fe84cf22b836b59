// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command compute-baseline runs the worker-pool simulator under the
// static pool-sizing policy against a chosen workload generator.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	apimetrics "github.com/luxfi/nematode/api/metrics"
	"github.com/luxfi/nematode/config"
	"github.com/luxfi/nematode/internal/metricsserver"
	"github.com/luxfi/nematode/internal/sampler"
	"github.com/luxfi/nematode/metrics"
	"github.com/luxfi/nematode/policy"
	"github.com/luxfi/nematode/simcompute"
	"github.com/luxfi/nematode/telemetry"
	"github.com/luxfi/nematode/workload"
)

var logger = slog.Default().With("module", "compute-baseline")

func main() {
	workloadType := flag.String("workload", "steady", "Workload type: steady | bursty | adversarial")
	durationSec := flag.Float64("duration", 10, "Simulated duration in seconds")
	seed := flag.Int64("seed", 1, "Random seed")
	metricsAddr := flag.String("metrics-addr", "", "If set, serve prometheus metrics at this address (e.g. :9100)")
	flag.Parse()

	cfg := config.ComputeDefaults()
	if err := cfg.Valid(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	src := sampler.NewSource(*seed)
	gen, err := buildComputeWorkload(*workloadType, *durationSec, src)
	if err != nil {
		logger.Error("unknown workload type", "workload", *workloadType)
		os.Exit(1)
	}

	reg := apimetrics.NewRegistry()
	if *metricsAddr != "" {
		metricsserver.Serve(*metricsAddr, reg, logger)
	}

	stats := metrics.NewComputeCollectors(reg)
	sim := simcompute.New(policy.NewBaselineCompute(), int(cfg.InitialWorkers), telemetry.SystemClock{}, stats)

	runCompute(sim, gen)
	printComputeReport(stats)
}

func buildComputeWorkload(kind string, durationSec float64, src sampler.Source) (workload.ComputeGenerator, error) {
	switch kind {
	case "steady":
		return workload.NewSteadyCompute(100.0, 500, durationSec, src), nil
	case "bursty":
		return workload.NewBurstyCompute(2000.0, 100.0, 2000, 5.0, durationSec, src), nil
	case "adversarial":
		return workload.NewAdversarialCompute(500.0, 500, 5000, durationSec, src), nil
	default:
		return nil, fmt.Errorf("unknown workload type %q", kind)
	}
}

func runCompute(sim *simcompute.Simulator, gen workload.ComputeGenerator) {
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
}

func printComputeReport(stats *metrics.ComputeCollectors) {
	fmt.Printf("\n=== Compute Metrics (baseline) ===\n")
	fmt.Printf("Total tasks:      %d\n", stats.TaskCount())
	fmt.Printf("p50 task time:    %.2f us\n", stats.TaskTimeP50US())
	fmt.Printf("p95 task time:    %.2f us\n", stats.TaskTimeP95US())
	fmt.Printf("p99 task time:    %.2f us\n", stats.TaskTimeP99US())
	fmt.Printf("Mean throughput:  %.2f tasks/s\n", stats.MeanThroughput())
	fmt.Printf("Decision changes: %d\n", stats.DecisionChanges())
}
