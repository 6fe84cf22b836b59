// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command inspect prints a human-readable summary of a reflex
// container file: header fields, per-output bounds, metadata, and a
// sample inference run against a fixed test feature vector.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/luxfi/nematode/reflex"
)

var logger = slog.Default().With("module", "inspect")

// sampleFeatures is a fixed test vector covering the ten-feature
// telemetry schema (transport order: queue depth through RTT EWMA),
// dummy-normalized by a flat /10000 scale rather than a trained
// normalizer, purely to exercise Infer end to end.
var sampleFeatures = []float32{20.0, 1000.0, 1000.0, 300.0, 600.0, 1e6, 1e6, 1024.0, 100.0, 50.0}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspect <reflex_file>")
		os.Exit(1)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read reflex file", "path", path, "error", err)
		os.Exit(1)
	}

	r, err := reflex.Decode(data)
	if err != nil {
		logger.Error("failed to decode reflex container", "error", err)
		os.Exit(1)
	}

	fmt.Print(formatInspectReport(path, r))
}

// formatInspectReport renders the full inspect report for r as printed
// to stdout by main.
func formatInspectReport(path string, r *reflex.Reflex) string {
	out := fmt.Sprintf("=== Reflex Container: %s ===\n", path)

	out += "\n=== Header ===\n"
	out += fmt.Sprintf("Magic:           %s\n", string(reflex.Magic[:]))
	out += fmt.Sprintf("Version:         %d\n", reflex.Version)
	out += fmt.Sprintf("Model type:      %d\n", r.ModelType)
	out += fmt.Sprintf("Feature count:   %d\n", r.FeatureCount)
	out += fmt.Sprintf("Output count:    %d\n", r.OutputCount)
	out += fmt.Sprintf("Created at:      %s\n", r.CreatedAt.UTC())

	out += "\n=== Trees ===\n"
	out += fmt.Sprintf("Tree count:      %d\n", len(r.Trees))
	for i, tree := range r.Trees {
		out += fmt.Sprintf("  tree[%d]: %d nodes\n", i, len(tree))
	}

	out += "\n=== Bounds ===\n"
	for i := range r.Bounds.Min {
		out += fmt.Sprintf("  output[%d]: [%.4f, %.4f]\n", i, r.Bounds.Min[i], r.Bounds.Max[i])
	}

	out += "\n=== Metadata ===\n"
	out += fmt.Sprintf("  trainer_commit:  %s\n", r.Metadata.TrainerCommit)
	out += fmt.Sprintf("  feature_schema:  %s\n", r.Metadata.FeatureSchema)
	out += fmt.Sprintf("  telemetry_hash:  %s\n", r.Metadata.TelemetryHash)
	out += fmt.Sprintf("  lambda:          %v\n", r.Metadata.Lambda)
	out += fmt.Sprintf("  notes:           %s\n", r.Metadata.Notes)

	out += "\n=== Test Inference ===\n"
	out += formatSampleInference(r)
	return out
}

// formatSampleInference runs a dummy-normalized sample vector through
// r.Infer and renders the input/output pair, or a skip notice if r's
// feature count doesn't match the sample vector's length.
func formatSampleInference(r *reflex.Reflex) string {
	if int(r.FeatureCount) != len(sampleFeatures) {
		return fmt.Sprintf("skipped: reflex expects %d features, sample vector has %d\n", r.FeatureCount, len(sampleFeatures))
	}

	normalized := make([]float32, len(sampleFeatures))
	for i, v := range sampleFeatures {
		normalized[i] = v / 10000.0
	}

	outputs, err := r.Infer(normalized)
	if err != nil {
		return fmt.Sprintf("inference failed: %v\n", err)
	}

	out := fmt.Sprintf("Input (normalized): %v\n", normalized[:3])
	out += fmt.Sprintf("Output: %v\n", outputs)
	return out
}
