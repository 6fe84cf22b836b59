package reflex

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() Tree {
	return Tree{
		SplitNode(0, 0.5, 1, 2),
		LeafNode(10.0),
		LeafNode(20.0),
	}
}

func TestInferBoundaryGoesLeft(t *testing.T) {
	r, err := New([]Tree{sampleTree()}, Bounds{Min: []float32{0}, Max: []float32{100}}, Metadata{}, time.Unix(0, 0))
	require.NoError(t, err)
	r.FeatureCount = 1

	out, err := r.Infer([]float32{0.3})
	require.NoError(t, err)
	assert.Equal(t, []float32{10.0}, out)

	out, err = r.Infer([]float32{0.5})
	require.NoError(t, err)
	assert.Equal(t, []float32{10.0}, out, "threshold boundary must descend left")

	out, err = r.Infer([]float32{0.7})
	require.NoError(t, err)
	assert.Equal(t, []float32{20.0}, out)
}

func TestInferClamps(t *testing.T) {
	r, err := New([]Tree{sampleTree()}, Bounds{Min: []float32{12}, Max: []float32{15}}, Metadata{}, time.Unix(0, 0))
	require.NoError(t, err)
	r.FeatureCount = 1

	out, err := r.Infer([]float32{0.3})
	require.NoError(t, err)
	assert.Equal(t, []float32{12.0}, out, "clamp up to min")

	out, err = r.Infer([]float32{0.7})
	require.NoError(t, err)
	assert.Equal(t, []float32{15.0}, out, "clamp down to max")
}

func TestInferFeatureCountMismatch(t *testing.T) {
	r, err := New([]Tree{sampleTree()}, Bounds{Min: []float32{0}, Max: []float32{100}}, Metadata{}, time.Unix(0, 0))
	require.NoError(t, err)
	r.FeatureCount = 3

	_, err = r.Infer([]float32{0.3})
	assert.ErrorIs(t, err, ErrFeatureCountMismatch)
}

func TestInferFeatureIdxOutOfRange(t *testing.T) {
	tree := Tree{SplitNode(5, 0.5, 1, 2), LeafNode(1), LeafNode(2)}
	r, err := New([]Tree{tree}, Bounds{Min: []float32{0}, Max: []float32{100}}, Metadata{}, time.Unix(0, 0))
	require.NoError(t, err)
	r.FeatureCount = 1

	_, err = r.Infer([]float32{0.1})
	assert.ErrorIs(t, err, ErrFeatureIdxOutOfRange)
}

func TestInferChildOutOfRange(t *testing.T) {
	tree := Tree{SplitNode(0, 0.5, 1, 99)}
	r, err := New([]Tree{tree}, Bounds{Min: []float32{0}, Max: []float32{100}}, Metadata{}, time.Unix(0, 0))
	require.NoError(t, err)
	r.FeatureCount = 1

	_, err = r.Infer([]float32{0.9})
	assert.ErrorIs(t, err, ErrChildOutOfRange)
}

func TestClampNaNProducesLowerBound(t *testing.T) {
	nan := float32(math.NaN())
	assert.Equal(t, float32(1.5), clamp(nan, 1.5, 9.0))
}
