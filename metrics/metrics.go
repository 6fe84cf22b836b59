// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics provides the per-domain sample collectors the
// simulators use to report latency/task-time percentiles, throughput,
// and decision-change counts, optionally mirrored into a prometheus
// registry.
package metrics

import (
	"sync"

	"github.com/montanaflynn/stats"
	"github.com/prometheus/client_golang/prometheus"
)

// Counter tracks a monotonically increasing count.
type Counter interface {
	Inc()
	Read() int64
}

type counter struct {
	mu    sync.RWMutex
	value int64
	prom  prometheus.Counter
}

// NewCounter returns a new Counter, optionally mirrored to reg under
// name/help. reg may be nil, in which case no prometheus metric is
// registered.
func NewCounter(name, help string, reg prometheus.Registerer) Counter {
	c := &counter{}
	if reg != nil {
		c.prom = prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		_ = reg.Register(c.prom)
	}
	return c
}

func (c *counter) Inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value++
	if c.prom != nil {
		c.prom.Inc()
	}
}

func (c *counter) Read() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Gauge tracks a value that can move up or down.
type Gauge interface {
	Set(value float64)
	Read() float64
}

type gauge struct {
	mu    sync.RWMutex
	value float64
	prom  prometheus.Gauge
}

// NewGauge returns a new Gauge, optionally mirrored to reg.
func NewGauge(name, help string, reg prometheus.Registerer) Gauge {
	g := &gauge{}
	if reg != nil {
		g.prom = prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
		_ = reg.Register(g.prom)
	}
	return g
}

func (g *gauge) Set(value float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = value
	if g.prom != nil {
		g.prom.Set(value)
	}
}

func (g *gauge) Read() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.value
}

// sampleSeries retains raw observations for percentile computation via
// montanaflynn/stats, and optionally reports every observation into a
// prometheus histogram for live scraping.
type sampleSeries struct {
	mu     sync.RWMutex
	values []float64
	hist   prometheus.Histogram
}

func newSampleSeries(name, help string, buckets []float64, reg prometheus.Registerer) *sampleSeries {
	s := &sampleSeries{}
	if reg != nil {
		s.hist = prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets})
		_ = reg.Register(s.hist)
	}
	return s
}

func (s *sampleSeries) observe(v float64) {
	s.mu.Lock()
	s.values = append(s.values, v)
	s.mu.Unlock()
	if s.hist != nil {
		s.hist.Observe(v)
	}
}

// percentile returns the p-th percentile (0-100) of the retained
// samples, or 0 if none have been observed.
func (s *sampleSeries) percentile(p float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.values) == 0 {
		return 0
	}
	v, err := stats.Percentile(s.values, p)
	if err != nil {
		return 0
	}
	return v
}

func (s *sampleSeries) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
