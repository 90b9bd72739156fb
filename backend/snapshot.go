package backend

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ScottSoren/ixdat/compress"
	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/internal/hash"
	"github.com/ScottSoren/ixdat/internal/options"
)

const (
	// snapshotMagic spells "IXDT" in the first four payload bytes.
	snapshotMagic uint32 = 0x54445849

	// snapshotVersion is the current payload format version.
	snapshotVersion byte = 1

	// snapshotHeaderSize is the fixed header length in bytes.
	snapshotHeaderSize = 24
)

// snapshotHeader is the fixed-size header that starts every encoded
// snapshot. All integer fields are little-endian.
type snapshotHeader struct {
	Magic       uint32                   // byte offset 0-3
	Version     byte                     // byte offset 4
	Compression compress.CompressionType // byte offset 5, bytes 6-7 reserved
	Count       uint64                   // byte offset 8-15, number of samples
	Checksum    uint64                   // byte offset 16-23, xxHash64 of the raw samples
}

// bytes serializes the header into a freshly allocated 24-byte slice.
func (h snapshotHeader) bytes() []byte {
	b := make([]byte, snapshotHeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Magic)
	b[4] = h.Version
	b[5] = byte(h.Compression)
	binary.LittleEndian.PutUint64(b[8:16], h.Count)
	binary.LittleEndian.PutUint64(b[16:24], h.Checksum)

	return b
}

// parseSnapshotHeader reads and validates the fixed header at the start
// of blob.
func parseSnapshotHeader(blob []byte) (snapshotHeader, error) {
	if len(blob) < snapshotHeaderSize {
		return snapshotHeader{}, fmt.Errorf("%w: %d bytes, want at least %d",
			errs.ErrCorruptSnapshot, len(blob), snapshotHeaderSize)
	}

	h := snapshotHeader{
		Magic:       binary.LittleEndian.Uint32(blob[0:4]),
		Version:     blob[4],
		Compression: compress.CompressionType(blob[5]),
		Count:       binary.LittleEndian.Uint64(blob[8:16]),
		Checksum:    binary.LittleEndian.Uint64(blob[16:24]),
	}
	if h.Magic != snapshotMagic {
		return snapshotHeader{}, fmt.Errorf("%w: bad magic 0x%08X", errs.ErrCorruptSnapshot, h.Magic)
	}
	if h.Version != snapshotVersion {
		return snapshotHeader{}, fmt.Errorf("%w: unsupported version %d", errs.ErrCorruptSnapshot, h.Version)
	}

	return h, nil
}

// snapshotConfig holds the snapshot encoding options.
type snapshotConfig struct {
	compression compress.CompressionType
}

// SnapshotOption represents a functional option for configuring snapshot
// encoding.
type SnapshotOption = options.Option[*snapshotConfig]

// WithCompression selects the compression codec applied to snapshot
// payloads. The default is zstd.
//
// Returns errs.ErrInvalidCompressionType when no codec exists for the
// given type.
func WithCompression(typ compress.CompressionType) SnapshotOption {
	return options.New(func(cfg *snapshotConfig) error {
		if _, err := compress.CreateCodec(typ); err != nil {
			return err
		}
		cfg.compression = typ

		return nil
	})
}

func newSnapshotConfig(opts ...SnapshotOption) (*snapshotConfig, error) {
	cfg := &snapshotConfig{compression: compress.CompressionZstd}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EncodeSnapshot packs samples into a self-describing blob: the fixed
// snapshot header followed by the compressed little-endian float64
// payload. The header records the codec, the sample count and an
// xxHash64 checksum of the raw payload, so blobs decode without any
// out-of-band configuration.
func EncodeSnapshot(samples []float64, opts ...SnapshotOption) ([]byte, error) {
	cfg, err := newSnapshotConfig(opts...)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 8*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}

	codec, err := compress.CreateCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	hdr := snapshotHeader{
		Magic:       snapshotMagic,
		Version:     snapshotVersion,
		Compression: cfg.compression,
		Count:       uint64(len(samples)),
		Checksum:    hash.Checksum(raw),
	}

	return append(hdr.bytes(), payload...), nil
}

// DecodeSnapshot unpacks a blob produced by EncodeSnapshot, restoring
// the samples with their exact bit patterns, NaN holes included.
//
// Returns errs.ErrCorruptSnapshot when the blob is truncated, carries a
// wrong magic, version or compression type, fails to decompress, or
// fails count or checksum verification.
func DecodeSnapshot(blob []byte) ([]float64, error) {
	hdr, err := parseSnapshotHeader(blob)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(hdr.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: compression type 0x%02X", errs.ErrCorruptSnapshot, byte(hdr.Compression))
	}

	raw, err := codec.Decompress(blob[snapshotHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", errs.ErrCorruptSnapshot, err)
	}

	if uint64(len(raw)) != 8*hdr.Count {
		return nil, fmt.Errorf("%w: %d payload bytes for %d samples",
			errs.ErrCorruptSnapshot, len(raw), hdr.Count)
	}
	if sum := hash.Checksum(raw); sum != hdr.Checksum {
		return nil, fmt.Errorf("%w: checksum 0x%016X, want 0x%016X",
			errs.ErrCorruptSnapshot, sum, hdr.Checksum)
	}

	samples := make([]float64, hdr.Count)
	for i := range samples {
		samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}

	return samples, nil
}
