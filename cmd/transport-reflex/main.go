// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command transport-reflex runs the packet-transport simulator under a
// reflex loaded from a container file against a chosen workload
// generator.
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
	"github.com/luxfi/nematode/simtransport"
	"github.com/luxfi/nematode/telemetry"
	"github.com/luxfi/nematode/workload"
)

var logger = slog.Default().With("module", "transport-reflex")

func main() {
	reflexPath := flag.String("reflex", "", "Path to a .reflex container file")
	normalizerPath := flag.String("normalizer", "", "Path to the trained normalizer JSON file")
	workloadType := flag.String("workload", "steady", "Workload type: steady | bursty | adversarial")
	durationSec := flag.Float64("duration", 30, "Simulated duration in seconds")
	seed := flag.Int64("seed", 1, "Random seed")
	verbose := flag.Bool("verbose", false, "Log every decision change")
	metricsAddr := flag.String("metrics-addr", "", "If set, serve prometheus metrics at this address (e.g. :9100)")
	flag.Parse()
	if flag.NArg() > 0 {
		*reflexPath = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		*workloadType = flag.Arg(1)
	}

	if *reflexPath == "" || *normalizerPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: transport-reflex -normalizer <path> (-reflex <path> | <reflex_path>) [steady|bursty|adversarial]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*reflexPath)
	if err != nil {
		logger.Error("failed to read reflex file", "path", *reflexPath, "error", err)
		os.Exit(1)
	}
	r, err := reflex.Decode(data)
	if err != nil {
		logger.Error("failed to decode reflex container", "error", err)
		os.Exit(1)
	}

	normalizer, err := telemetry.LoadNormalizerJSON(*normalizerPath)
	if err != nil {
		logger.Error("failed to load normalizer", "path", *normalizerPath, "error", err)
		os.Exit(1)
	}

	cfg := config.TransportDefaults()
	if err := cfg.Valid(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var policyLogger log.Logger = log.NewNoOpLogger()
	if *verbose {
		policyLogger = log.NewLogger("transport-reflex")
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
	reflexPolicy := policy.NewReflexTransport(r, normalizer, cfg.HoldTime, telemetry.SystemClock{}, policyLogger)
	sim := simtransport.New(reflexPolicy, telemetry.SystemClock{}, stats)

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
	fmt.Printf("\n=== Transport Metrics (reflex) ===\n")
	fmt.Printf("Total packets:    %d\n", stats.PacketCount())
	fmt.Printf("p50 latency:      %.2f us\n", stats.LatencyP50US())
	fmt.Printf("p95 latency:      %.2f us\n", stats.LatencyP95US())
	fmt.Printf("p99 latency:      %.2f us\n", stats.LatencyP99US())
	fmt.Printf("Mean throughput:  %.2f pkts/s\n", stats.MeanThroughput())
	fmt.Printf("Decision changes: %d\n", stats.DecisionChanges())
}
