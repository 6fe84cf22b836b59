// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the tunable run parameters for both simulator
// domains: tick cadence, telemetry windowing, hold times, and each
// domain's baseline decision. Values may be loaded from YAML/JSON
// files or constructed from the package defaults.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/luxfi/nematode/codec"
)

// TransportParams configures a packet-transport simulator run.
type TransportParams struct {
	TickInterval     time.Duration `json:"tick_interval" yaml:"tick_interval"`
	Window           time.Duration `json:"window" yaml:"window"`
	Step             time.Duration `json:"step" yaml:"step"`
	HoldTime         time.Duration `json:"hold_time" yaml:"hold_time"`
	BaselineThreshold uint32       `json:"baseline_threshold" yaml:"baseline_threshold"`
	BaselineMaxDelayUS uint32      `json:"baseline_max_delay_us" yaml:"baseline_max_delay_us"`
}

// Valid reports whether p's fields satisfy the invariants the
// transport simulator and telemetry collector depend on.
func (p TransportParams) Valid() error {
	switch {
	case p.Window < p.Step:
		return ErrInvalidWindow
	case p.Step < time.Millisecond:
		return ErrInvalidStep
	case p.HoldTime < time.Millisecond:
		return ErrInvalidHoldTime
	case p.TickInterval < time.Microsecond:
		return ErrInvalidTickRate
	case p.BaselineThreshold == 0:
		return ErrInvalidThreshold
	default:
		return nil
	}
}

// TransportDefaults returns the packaged defaults: a 10kHz tick rate,
// 200ms/100ms telemetry window/step, 300ms reflex hold time, and the
// static baseline flush policy (threshold 16 packets, 500us delay).
func TransportDefaults() TransportParams {
	return TransportParams{
		TickInterval:       100 * time.Microsecond,
		Window:             200 * time.Millisecond,
		Step:               100 * time.Millisecond,
		HoldTime:           300 * time.Millisecond,
		BaselineThreshold:  16,
		BaselineMaxDelayUS: 500,
	}
}

// ComputeParams configures a worker-pool simulator run.
type ComputeParams struct {
	TickInterval    time.Duration `json:"tick_interval" yaml:"tick_interval"`
	Window          time.Duration `json:"window" yaml:"window"`
	Step            time.Duration `json:"step" yaml:"step"`
	HoldTime        time.Duration `json:"hold_time" yaml:"hold_time"`
	InitialWorkers  uint32        `json:"initial_workers" yaml:"initial_workers"`
}

// Valid reports whether p's fields satisfy the invariants the compute
// simulator and telemetry collector depend on.
func (p ComputeParams) Valid() error {
	switch {
	case p.Window < p.Step:
		return ErrInvalidWindow
	case p.Step < time.Millisecond:
		return ErrInvalidStep
	case p.HoldTime < time.Millisecond:
		return ErrInvalidHoldTime
	case p.TickInterval < time.Microsecond:
		return ErrInvalidTickRate
	case p.InitialWorkers < 1 || p.InitialWorkers > 64:
		return ErrInvalidWorkerBounds
	default:
		return nil
	}
}

// ComputeDefaults returns the packaged defaults: a 100Hz tick rate,
// 200ms/100ms telemetry window/step, 500ms reflex hold time, and the
// static baseline pool size of 8 workers.
func ComputeDefaults() ComputeParams {
	return ComputeParams{
		TickInterval:   10 * time.Millisecond,
		Window:         200 * time.Millisecond,
		Step:           100 * time.Millisecond,
		HoldTime:       500 * time.Millisecond,
		InitialWorkers: 8,
	}
}

// LoadTransportYAML reads and parses a TransportParams from a YAML
// file, applying TransportDefaults for any field the file does not set.
func LoadTransportYAML(path string) (TransportParams, error) {
	p := TransportDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return TransportParams{}, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return TransportParams{}, err
	}
	if err := p.Valid(); err != nil {
		return TransportParams{}, err
	}
	return p, nil
}

// LoadComputeYAML reads and parses a ComputeParams from a YAML file,
// applying ComputeDefaults for any field the file does not set.
func LoadComputeYAML(path string) (ComputeParams, error) {
	p := ComputeDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return ComputeParams{}, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return ComputeParams{}, err
	}
	if err := p.Valid(); err != nil {
		return ComputeParams{}, err
	}
	return p, nil
}

// LoadTransportJSON reads and parses a TransportParams from a JSON
// file written by codec.Codec, applying TransportDefaults for any
// field the file does not set.
func LoadTransportJSON(path string) (TransportParams, error) {
	p := TransportDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return TransportParams{}, err
	}
	if _, err := codec.Codec.Unmarshal(data, &p); err != nil {
		return TransportParams{}, err
	}
	if err := p.Valid(); err != nil {
		return TransportParams{}, err
	}
	return p, nil
}

// LoadComputeJSON reads and parses a ComputeParams from a JSON file
// written by codec.Codec, applying ComputeDefaults for any field the
// file does not set.
func LoadComputeJSON(path string) (ComputeParams, error) {
	p := ComputeDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return ComputeParams{}, err
	}
	if _, err := codec.Codec.Unmarshal(data, &p); err != nil {
		return ComputeParams{}, err
	}
	if err := p.Valid(); err != nil {
		return ComputeParams{}, err
	}
	return p, nil
}
