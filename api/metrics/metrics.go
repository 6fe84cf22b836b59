// Copyright (C) 2020-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics provides the prometheus registry plumbing shared by every
// simulator binary. Domain-specific collectors live in the top-level
// metrics package; this package only wraps registry/gatherer concerns.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registerer is an interface for registering prometheus metrics
type Registerer interface {
	prometheus.Registerer
}

// Registry is an interface for prometheus registry
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// NewRegistry creates a new prometheus registry
func NewRegistry() Registry {
	return prometheus.NewRegistry()
}
