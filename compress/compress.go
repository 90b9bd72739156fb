package compress

import (
	"fmt"

	"github.com/ScottSoren/ixdat/errs"
)

// CompressionType identifies the algorithm applied to a snapshot payload.
// The value is stored in the snapshot header so decodes are self-describing.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Codec compresses and decompresses snapshot payloads.
//
// Implementations are stateless values, safe for concurrent use; internal
// encoder state lives in pools. Compress and Decompress return newly
// allocated slices (the no-op codec, which passes data through, documents
// its exception) and never modify their input.
type Codec interface {
	// Type returns the algorithm this codec implements.
	Type() CompressionType
	// Compress compresses data.
	Compress(data []byte) ([]byte, error)
	// Decompress reverses Compress. It returns an error when data is
	// corrupted or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[CompressionType]Codec{
	CompressionNone: NewNoopCodec(),
	CompressionZstd: NewZstdCodec(),
	CompressionS2:   NewS2Codec(),
	CompressionLZ4:  NewLZ4Codec(),
}

// CreateCodec returns the codec for the given compression type.
//
// Returns errs.ErrInvalidCompressionType for types without a built-in
// codec.
func CreateCodec(compressionType CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, compressionType)
}
