// Package reflex implements the on-disk container format and inference
// engine for a trained decision-tree reflex: a small, immutable ensemble
// of axis-aligned trees, one per output channel, plus clamp bounds and
// provenance metadata.
package reflex

import "time"

// ModelType discriminates the payload encoding of the model section.
// Only DecisionTreeEnsemble is implemented; the others are reserved so a
// future writer can bump the byte without colliding with this one.
type ModelType uint8

const (
	DecisionTreeEnsemble ModelType = 0
	modelTypeLinear      ModelType = 1 // reserved, rejected at decode
	modelTypeMLP         ModelType = 2 // reserved, rejected at decode
)

// FeatureCount is the fixed width of every telemetry schema this module
// supports (see telemetry.Sample).
const FeatureCount = 10

// Node is one position in a tree. Internal nodes carry a feature index
// and threshold; leaves carry an output value. featureIdxLeaf
// distinguishes the two, matching the wire format's sentinel.
type Node struct {
	FeatureIdx uint8  `json:"feature_idx"`
	Threshold  float32 `json:"threshold"`
	Left       uint16 `json:"left"`
	Right      uint16 `json:"right"`
}

// featureIdxLeaf is the sentinel FeatureIdx value marking a leaf node.
// When set, Threshold is reinterpreted as the leaf's output value.
const featureIdxLeaf uint8 = 255

// IsLeaf reports whether n is a leaf node.
func (n Node) IsLeaf() bool { return n.FeatureIdx == featureIdxLeaf }

// LeafNode constructs a leaf carrying value.
func LeafNode(value float32) Node {
	return Node{FeatureIdx: featureIdxLeaf, Threshold: value}
}

// SplitNode constructs an internal node.
func SplitNode(featureIdx uint8, threshold float32, left, right uint16) Node {
	return Node{FeatureIdx: featureIdx, Threshold: threshold, Left: left, Right: right}
}

// Tree is an ordered sequence of nodes addressed by position; node 0 is
// the root. Trees are acyclic by construction — nothing in this package
// enforces that at decode time beyond the bounds checks Infer performs
// on every descent.
type Tree []Node

// Bounds holds the per-output clamp range. Min and Max must have equal
// length matching the ensemble's output count.
type Bounds struct {
	Min []float32 `json:"min"`
	Max []float32 `json:"max"`
}

// Metadata is free-form provenance recorded alongside a reflex. Field
// names match the original training pipeline's wire keys so artifacts
// produced by any conforming writer round-trip through this decoder.
type Metadata struct {
	CreatedAt     string  `json:"created_at"`
	TrainerCommit string  `json:"trainer_commit"`
	FeatureSchema string  `json:"feature_schema"`
	TelemetryHash string  `json:"telemetry_hash"`
	Lambda        float32 `json:"lambda"`
	Notes         string  `json:"notes"`
}

// Reflex is a fully decoded, immutable artifact: one tree per output
// channel, clamp bounds, and provenance metadata. It is safe for
// concurrent read-only use once constructed — nothing in this package
// mutates a Reflex after Decode or New returns it.
type Reflex struct {
	ModelType    ModelType
	FeatureCount uint8
	OutputCount  uint8
	CreatedAt    time.Time
	Trees        []Tree
	Bounds       Bounds
	Metadata     Metadata
}

// New builds a Reflex from its constituent parts, validating shape
// invariants the same way Decode does. It does not itself encode
// anything; call Encode on the result to produce the on-disk bytes.
func New(trees []Tree, bounds Bounds, metadata Metadata, createdAt time.Time) (*Reflex, error) {
	if len(bounds.Min) != len(bounds.Max) {
		return nil, errBoundsLengthMismatch
	}
	if len(bounds.Min) != len(trees) {
		return nil, errBoundsOutputMismatch
	}
	if len(trees) == 0 || len(trees) > 255 {
		return nil, errInvalidOutputCount
	}
	r := &Reflex{
		ModelType:    DecisionTreeEnsemble,
		FeatureCount: FeatureCount,
		OutputCount:  uint8(len(trees)),
		CreatedAt:    createdAt,
		Trees:        trees,
		Bounds:       bounds,
		Metadata:     metadata,
	}
	return r, nil
}
