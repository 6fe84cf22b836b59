// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command transport-baseline runs the packet-transport simulator under
// the static flush policy against a chosen workload generator.
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
	"github.com/luxfi/nematode/simtransport"
	"github.com/luxfi/nematode/telemetry"
	"github.com/luxfi/nematode/workload"
)

var logger = slog.Default().With("module", "transport-baseline")

func main() {
	workloadType := flag.String("workload", "steady", "Workload type: steady | bursty | adversarial")
	durationSec := flag.Float64("duration", 30, "Simulated duration in seconds")
	seed := flag.Int64("seed", 1, "Random seed")
	metricsAddr := flag.String("metrics-addr", "", "If set, serve prometheus metrics at this address (e.g. :9100)")
	flag.Parse()
	if flag.NArg() > 0 {
		*workloadType = flag.Arg(0)
	}

	cfg := config.TransportDefaults()
	if err := cfg.Valid(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	src := sampler.NewSource(*seed)
	gen, err := buildTransportWorkload(*workloadType, *durationSec, src)
	if err != nil {
		logger.Error("unknown workload type", "workload", *workloadType)
		os.Exit(1)
	}

	reg := apimetrics.NewRegistry()
	if *metricsAddr != "" {
		metricsserver.Serve(*metricsAddr, reg, logger)
	}

	stats := metrics.NewTransportCollectors(reg)
	sim := simtransport.New(policy.NewBaselineTransport(), telemetry.SystemClock{}, stats)

	runTransport(sim, gen)
	printTransportReport(stats)
}

func buildTransportWorkload(kind string, durationSec float64, src sampler.Source) (workload.TransportGenerator, error) {
	switch kind {
	case "steady":
		return workload.NewSteadyTransport(1000.0, 1024, durationSec, src), nil
	case "bursty":
		return workload.NewBurstyTransport(5000.0, 100.0, 1024, 5.0, durationSec, src), nil
	case "adversarial":
		return workload.NewAdversarialTransport(1000.0, 256, 2048, durationSec, src), nil
	default:
		return nil, fmt.Errorf("unknown workload type %q", kind)
	}
}

func runTransport(sim *simtransport.Simulator, gen workload.TransportGenerator) {
	for {
		arrival, ok := gen.Next()
		if !ok {
			break
		}
		time.Sleep(time.Duration(arrival.WaitSeconds * float64(time.Second)))
		sim.Enqueue(arrival.SizeBytes)
		sim.Tick()
	}
	sim.Tick()
}

func printTransportReport(stats *metrics.TransportCollectors) {
	fmt.Printf("\n=== Transport Metrics (baseline) ===\n")
	fmt.Printf("Total packets:    %d\n", stats.PacketCount())
	fmt.Printf("p50 latency:      %.2f us\n", stats.LatencyP50US())
	fmt.Printf("p95 latency:      %.2f us\n", stats.LatencyP95US())
	fmt.Printf("p99 latency:      %.2f us\n", stats.LatencyP99US())
	fmt.Printf("Mean throughput:  %.2f pkts/s\n", stats.MeanThroughput())
	fmt.Printf("Decision changes: %d\n", stats.DecisionChanges())
}
