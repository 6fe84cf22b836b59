package config

import "errors"

var (
	ErrInvalidWindow     = errors.New("telemetry window must be >= step")
	ErrInvalidStep       = errors.New("telemetry step must be >= 1ms")
	ErrInvalidHoldTime   = errors.New("hold time must be >= 1ms")
	ErrInvalidTickRate   = errors.New("tick interval must be >= 1us")
	ErrInvalidWorkerBounds = errors.New("initial worker count must be between 1 and 64")
	ErrInvalidThreshold  = errors.New("baseline threshold must be >= 1 packet")
)
