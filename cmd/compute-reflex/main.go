// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command compute-reflex runs the worker-pool simulator under the
// trained reflex and normalizer at their fixed data/models/ paths,
// against a steady 100 tasks/sec, 500us/task, 10s workload.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/luxfi/log"

	apimetrics "github.com/luxfi/nematode/api/metrics"
	"github.com/luxfi/nematode/config"
	"github.com/luxfi/nematode/internal/metricsserver"
	"github.com/luxfi/nematode/internal/sampler"
	"github.com/luxfi/nematode/metrics"
	"github.com/luxfi/nematode/policy"
	"github.com/luxfi/nematode/reflex"
	"github.com/luxfi/nematode/simcompute"
	"github.com/luxfi/nematode/telemetry"
	"github.com/luxfi/nematode/workload"
)

const (
	reflexPath     = "data/models/thread-pool.reflex"
	normalizerPath = "data/models/normalizer-compute.json"
)

var logger = slog.Default().With("module", "compute-reflex")

func main() {
	seed := flag.Int64("seed", 1, "Random seed")
	verbose := flag.Bool("verbose", false, "Log every decision change")
	metricsAddr := flag.String("metrics-addr", "", "If set, serve prometheus metrics at this address (e.g. :9100)")
	flag.Parse()

	data, err := os.ReadFile(reflexPath)
	if err != nil {
		logger.Error("failed to read reflex file", "path", reflexPath, "error", err)
		os.Exit(1)
	}
	r, err := reflex.Decode(data)
	if err != nil {
		logger.Error("failed to decode reflex container", "error", err)
		os.Exit(1)
	}

	normalizer, err := telemetry.LoadNormalizerJSON(normalizerPath)
	if err != nil {
		logger.Error("failed to load normalizer", "path", normalizerPath, "error", err)
		os.Exit(1)
	}

	cfg := config.ComputeDefaults()
	if err := cfg.Valid(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var policyLogger log.Logger = log.NewNoOpLogger()
	if *verbose {
		policyLogger = log.NewLogger("compute-reflex")
	}

	src := sampler.NewSource(*seed)
	gen := workload.NewSteadyCompute(100.0, 500, 10, src)

	reg := apimetrics.NewRegistry()
	if *metricsAddr != "" {
		metricsserver.Serve(*metricsAddr, reg, logger)
	}

	stats := metrics.NewComputeCollectors(reg)
	reflexPolicy := policy.NewReflexCompute(r, normalizer, cfg.HoldTime, telemetry.SystemClock{}, policyLogger)
	sim := simcompute.New(reflexPolicy, int(cfg.InitialWorkers), telemetry.SystemClock{}, stats)

	fmt.Printf("Policy: Reflex from %s\n", reflexPath)
	fmt.Printf("Workload: Steady 100 tasks/sec, 500us/task, 10s duration\n\n")

	runCompute(sim, gen)
	printComputeReport(stats)
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
	fmt.Printf("\n=== Compute Metrics (reflex) ===\n")
	fmt.Printf("Total tasks:      %d\n", stats.TaskCount())
	fmt.Printf("p50 task time:    %.2f us\n", stats.TaskTimeP50US())
	fmt.Printf("p95 task time:    %.2f us\n", stats.TaskTimeP95US())
	fmt.Printf("p99 task time:    %.2f us\n", stats.TaskTimeP99US())
	fmt.Printf("Mean throughput:  %.2f tasks/s\n", stats.MeanThroughput())
	fmt.Printf("Decision changes: %d\n", stats.DecisionChanges())
}
