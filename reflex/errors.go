package reflex

import "errors"

// Error taxonomy for the reflex container. All of these are BadArtifact
// conditions: fatal at load, never leaving a partially constructed
// Reflex behind.
var (
	ErrTruncated            = errors.New("reflex: buffer shorter than header+checksum")
	ErrBadMagic             = errors.New("reflex: bad magic")
	ErrBadVersion           = errors.New("reflex: unsupported version")
	ErrUnsupportedModelType = errors.New("reflex: unsupported model type")
	ErrCRCMismatch          = errors.New("reflex: crc32 mismatch")
	ErrPayloadOverrun       = errors.New("reflex: declared payload size overruns buffer")
	ErrPayloadDecode        = errors.New("reflex: payload failed to decode")

	errBoundsLengthMismatch = errors.New("reflex: bounds min/max length mismatch")
	errBoundsOutputMismatch = errors.New("reflex: bounds length does not match output count")
	errInvalidOutputCount   = errors.New("reflex: output count must be in [1, 255]")
)

// ShapeMismatch conditions are raised by the evaluator, not the codec:
// a contract violation between a Reflex and the feature vector or node
// graph it is asked to evaluate. Decode does not validate node feature
// indices or child positions; Infer checks them on every descent.
var (
	ErrFeatureCountMismatch = errors.New("reflex: feature vector length mismatch")
	ErrFeatureIdxOutOfRange = errors.New("reflex: node feature index out of range")
	ErrChildOutOfRange      = errors.New("reflex: node child position out of range")
)
