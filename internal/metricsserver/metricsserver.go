// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metricsserver exposes a prometheus gatherer over HTTP for the
// simulator binaries, so a run can be scraped while it's in flight
// instead of only read back from the final stdout report.
package metricsserver

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serve starts an HTTP server on addr exposing gatherer at /metrics. It
// runs in a background goroutine and logs a fatal-looking error through
// logger if the listener fails, without killing the caller's process.
func Serve(addr string, gatherer prometheus.Gatherer, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()
}
