package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Normalizer holds per-feature running min/max learned during training
// and persisted alongside a reflex. A degenerate range (max == min)
// normalizes any value to 0.5 rather than dividing by zero.
type Normalizer struct {
	Min [FeatureCount]float32 `json:"min"`
	Max [FeatureCount]float32 `json:"max"`
}

// NewNormalizer returns a Normalizer with min/max initialized so that
// the first Observe call always widens the range.
func NewNormalizer() *Normalizer {
	n := &Normalizer{}
	for i := range n.Min {
		n.Min[i] = float32(math.Inf(1))
		n.Max[i] = float32(math.Inf(-1))
	}
	return n
}

// Observe widens Min/Max to include features.
func (n *Normalizer) Observe(features [FeatureCount]float32) {
	for i, v := range features {
		if v < n.Min[i] {
			n.Min[i] = v
		}
		if v > n.Max[i] {
			n.Max[i] = v
		}
	}
}

// Normalize maps features into [0, 1] per the learned range. Values
// are not clipped: a feature outside the observed training range
// produces a value outside [0, 1]. If Min[i] == Max[i] the feature is
// constant and normalizes to 0.5.
func (n *Normalizer) Normalize(features [FeatureCount]float32) [FeatureCount]float32 {
	var out [FeatureCount]float32
	for i, v := range features {
		span := n.Max[i] - n.Min[i]
		if span == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = (v - n.Min[i]) / span
	}
	return out
}

// LoadNormalizerJSON reads a trained Normalizer from a JSON file — the
// min/max bounds a reflex was trained against, distinct from the
// reflex container's own per-output Bounds. Every reflex-driven policy
// must load one of these alongside its .reflex file rather than
// improvising bounds from the reflex itself.
func LoadNormalizerJSON(path string) (*Normalizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: read normalizer: %w", err)
	}
	var n Normalizer
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("telemetry: parse normalizer: %w", err)
	}
	return &n, nil
}

// Denormalize is the inverse of Normalize, used by round-trip tests:
// min + x*(max-min).
func (n *Normalizer) Denormalize(x [FeatureCount]float32) [FeatureCount]float32 {
	var out [FeatureCount]float32
	for i, v := range x {
		out[i] = n.Min[i] + v*(n.Max[i]-n.Min[i])
	}
	return out
}
