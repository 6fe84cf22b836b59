package reflex

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"
)

// Magic identifies a reflex container. Version is bumped whenever the
// payload encoding changes in a way that would make old and new
// artifacts ambiguous to a reader.
var Magic = [4]byte{'N', 'E', 'M', '1'}

const Version uint16 = 1

// headerSize is the fixed width of the header preceding the three
// variable-length payloads (model, bounds, metadata).
const headerSize = 29

// Encode serializes r to the on-disk container format: header, model
// payload, bounds payload, metadata payload, trailing CRC-32 (IEEE) of
// everything preceding it.
func Encode(r *Reflex) ([]byte, error) {
	modelBytes, err := json.Marshal(r.Trees)
	if err != nil {
		return nil, fmt.Errorf("reflex: encode model: %w", err)
	}
	boundsBytes, err := json.Marshal(r.Bounds)
	if err != nil {
		return nil, fmt.Errorf("reflex: encode bounds: %w", err)
	}
	metaBytes, err := json.Marshal(r.Metadata)
	if err != nil {
		return nil, fmt.Errorf("reflex: encode metadata: %w", err)
	}

	buf := make([]byte, 0, headerSize+len(modelBytes)+len(boundsBytes)+len(metaBytes)+4)
	buf = append(buf, Magic[:]...)
	buf = binary.LittleEndian.AppendUint16(buf, Version)
	buf = append(buf, byte(r.ModelType), r.FeatureCount, r.OutputCount)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(r.CreatedAt.Unix()))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(modelBytes)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(boundsBytes)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(metaBytes)))
	buf = append(buf, modelBytes...)
	buf = append(buf, boundsBytes...)
	buf = append(buf, metaBytes...)

	crc := crc32.ChecksumIEEE(buf)
	buf = binary.LittleEndian.AppendUint32(buf, crc)
	return buf, nil
}

// Decode parses and validates the on-disk container format. It is
// strict: any structural problem returns an error without yielding a
// partially built Reflex.
func Decode(data []byte) (*Reflex, error) {
	if len(data) < headerSize+4 {
		return nil, ErrTruncated
	}

	payloadLen := len(data) - 4
	payload := data[:payloadLen]

	var magic [4]byte
	copy(magic[:], payload[0:4])
	if magic != Magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	expectedCRC := binary.LittleEndian.Uint32(data[payloadLen:])
	actualCRC := crc32.ChecksumIEEE(payload)
	if actualCRC != expectedCRC {
		return nil, fmt.Errorf("%w: expected %08x, got %08x", ErrCRCMismatch, expectedCRC, actualCRC)
	}

	version := binary.LittleEndian.Uint16(payload[4:6])
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
	modelType := ModelType(payload[6])
	if modelType != DecisionTreeEnsemble {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedModelType, modelType)
	}
	featureCount := payload[7]
	outputCount := payload[8]
	createdAtUnix := binary.LittleEndian.Uint64(payload[9:17])
	modelSize := binary.LittleEndian.Uint32(payload[17:21])
	boundsSize := binary.LittleEndian.Uint32(payload[21:25])
	metaSize := binary.LittleEndian.Uint32(payload[25:29])

	offset := headerSize
	modelEnd := offset + int(modelSize)
	boundsEnd := modelEnd + int(boundsSize)
	metaEnd := boundsEnd + int(metaSize)
	if modelEnd < offset || boundsEnd < modelEnd || metaEnd < boundsEnd || metaEnd > payloadLen {
		return nil, ErrPayloadOverrun
	}

	var trees []Tree
	if err := json.Unmarshal(payload[offset:modelEnd], &trees); err != nil {
		return nil, fmt.Errorf("%w: model: %v", ErrPayloadDecode, err)
	}
	var bounds Bounds
	if err := json.Unmarshal(payload[modelEnd:boundsEnd], &bounds); err != nil {
		return nil, fmt.Errorf("%w: bounds: %v", ErrPayloadDecode, err)
	}
	var metadata Metadata
	if err := json.Unmarshal(payload[boundsEnd:metaEnd], &metadata); err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", ErrPayloadDecode, err)
	}

	if len(bounds.Min) != len(bounds.Max) {
		return nil, errBoundsLengthMismatch
	}
	if len(bounds.Min) != int(outputCount) || len(trees) != int(outputCount) {
		return nil, errBoundsOutputMismatch
	}

	return &Reflex{
		ModelType:    modelType,
		FeatureCount: featureCount,
		OutputCount:  outputCount,
		CreatedAt:    time.Unix(int64(createdAtUnix), 0).UTC(),
		Trees:        trees,
		Bounds:       bounds,
		Metadata:     metadata,
	}, nil
}
