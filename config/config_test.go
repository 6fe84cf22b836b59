package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportDefaultsAreValid(t *testing.T) {
	require.NoError(t, TransportDefaults().Valid())
}

func TestComputeDefaultsAreValid(t *testing.T) {
	require.NoError(t, ComputeDefaults().Valid())
}

func TestTransportParamsRejectsWindowShorterThanStep(t *testing.T) {
	p := TransportDefaults()
	p.Window = p.Step / 2
	assert.ErrorIs(t, p.Valid(), ErrInvalidWindow)
}

func TestComputeParamsRejectsOutOfRangeWorkers(t *testing.T) {
	p := ComputeDefaults()
	p.InitialWorkers = 0
	assert.ErrorIs(t, p.Valid(), ErrInvalidWorkerBounds)

	p.InitialWorkers = 65
	assert.ErrorIs(t, p.Valid(), ErrInvalidWorkerBounds)
}

func TestLoadTransportYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baseline_threshold: 32\n"), 0o644))

	p, err := LoadTransportYAML(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(32), p.BaselineThreshold)
	assert.Equal(t, TransportDefaults().HoldTime, p.HoldTime, "fields absent from the file keep their default")
}

func TestLoadComputeYAMLRejectsInvalidOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compute.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initial_workers: 0\n"), 0o644))

	_, err := LoadComputeYAML(path)
	assert.ErrorIs(t, err, ErrInvalidWorkerBounds)
}
