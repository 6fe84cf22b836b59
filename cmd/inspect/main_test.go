package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nematode/reflex"
)

func sampleReflex(t *testing.T) *reflex.Reflex {
	t.Helper()
	tree := reflex.Tree{reflex.LeafNode(4.0)}
	r, err := reflex.New([]reflex.Tree{tree}, reflex.Bounds{Min: []float32{0}, Max: []float32{64}}, reflex.Metadata{Notes: "test"}, time.Unix(0, 0))
	require.NoError(t, err)
	return r
}

func TestFormatInspectReportShowsHeaderFields(t *testing.T) {
	r := sampleReflex(t)
	report := formatInspectReport("model.reflex", r)

	assert.Contains(t, report, "=== Reflex Container: model.reflex ===")
	assert.Contains(t, report, "Magic:           NEM1")
	assert.Contains(t, report, "Version:         1")
	assert.Contains(t, report, "Output count:    1")
}

func TestFormatInspectReportIncludesBoundsAndMetadata(t *testing.T) {
	r := sampleReflex(t)
	report := formatInspectReport("model.reflex", r)

	assert.Contains(t, report, "output[0]: [0.0000, 64.0000]")
	assert.Contains(t, report, "notes:           test")
}

func TestFormatSampleInferenceRunsAgainstTenFeatures(t *testing.T) {
	r := sampleReflex(t)
	out := formatSampleInference(r)

	require.NotContains(t, out, "skipped")
	require.NotContains(t, out, "failed")
	assert.True(t, strings.HasPrefix(out, "Input (normalized):"))
	assert.Contains(t, out, "Output: [4]")
}

func TestFormatSampleInferenceSkipsOnFeatureCountMismatch(t *testing.T) {
	r := sampleReflex(t)
	r.FeatureCount = 3

	out := formatSampleInference(r)
	assert.Contains(t, out, "skipped")
}
