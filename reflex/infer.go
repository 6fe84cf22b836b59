package reflex

import "math"

// Infer runs one forward pass per tree over features and returns a
// clamped output vector of length OutputCount. Deterministic: no RNG,
// no reductions beyond comparisons, so equal inputs always produce
// bitwise-equal outputs.
func (r *Reflex) Infer(features []float32) ([]float32, error) {
	if len(features) != int(r.FeatureCount) {
		return nil, ErrFeatureCountMismatch
	}

	outputs := make([]float32, len(r.Trees))
	for i, tree := range r.Trees {
		v, err := evalTree(tree, features)
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}

	for i := range outputs {
		outputs[i] = clamp(outputs[i], r.Bounds.Min[i], r.Bounds.Max[i])
	}
	return outputs, nil
}

// evalTree walks tree from the root (position 0), comparing
// feature[node.FeatureIdx] against node.Threshold at each internal node:
// less-than-or-equal descends left, else right. It terminates at the
// first leaf it reaches.
func evalTree(tree Tree, features []float32) (float32, error) {
	idx := uint16(0)
	for {
		if int(idx) >= len(tree) {
			return 0, ErrChildOutOfRange
		}
		node := tree[idx]
		if node.IsLeaf() {
			return node.Threshold, nil
		}
		if int(node.FeatureIdx) >= len(features) {
			return 0, ErrFeatureIdxOutOfRange
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// clamp restricts v to [lo, hi]. A NaN input produces lo, matching the
// IEEE total-order convention this container chooses for safety: a
// corrupt or degenerate tree output never silently escapes its bounds.
func clamp(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
