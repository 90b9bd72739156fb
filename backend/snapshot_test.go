package backend

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSoren/ixdat/compress"
	"github.com/ScottSoren/ixdat/errs"
)

func encodeSnapshot(t *testing.T, samples []float64, opts ...SnapshotOption) []byte {
	t.Helper()

	blob, err := EncodeSnapshot(samples, opts...)
	require.NoError(t, err)

	return blob
}

func TestEncodeSnapshot(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		samples := []float64{0, 1.5, -2.25, 1e9, 1650000000.125}

		blob := encodeSnapshot(t, samples)
		require.Greater(t, len(blob), snapshotHeaderSize)

		decoded, err := DecodeSnapshot(blob)
		require.NoError(t, err)
		require.Equal(t, samples, decoded)
	})

	t.Run("EveryCodec", func(t *testing.T) {
		samples := make([]float64, 256)
		for i := range samples {
			samples[i] = float64(i) * 0.25
		}

		for _, ct := range []compress.CompressionType{
			compress.CompressionNone,
			compress.CompressionZstd,
			compress.CompressionS2,
			compress.CompressionLZ4,
		} {
			t.Run(ct.String(), func(t *testing.T) {
				blob := encodeSnapshot(t, samples, WithCompression(ct))
				require.Equal(t, byte(ct), blob[5])

				decoded, err := DecodeSnapshot(blob)
				require.NoError(t, err)
				require.Equal(t, samples, decoded)
			})
		}
	})

	t.Run("Empty", func(t *testing.T) {
		blob := encodeSnapshot(t, nil)
		require.Len(t, blob, snapshotHeaderSize)

		decoded, err := DecodeSnapshot(blob)
		require.NoError(t, err)
		require.Empty(t, decoded)
	})

	t.Run("NaNHoles", func(t *testing.T) {
		blob := encodeSnapshot(t, []float64{1, math.NaN(), 3})

		decoded, err := DecodeSnapshot(blob)
		require.NoError(t, err)
		require.Len(t, decoded, 3)
		require.Equal(t, 1.0, decoded[0])
		require.True(t, math.IsNaN(decoded[1]))
		require.Equal(t, 3.0, decoded[2])
	})

	t.Run("RejectsUnknownCompression", func(t *testing.T) {
		_, err := EncodeSnapshot([]float64{1}, WithCompression(compress.CompressionType(0xEE)))
		require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
	})
}

func TestDecodeSnapshot(t *testing.T) {
	t.Run("EmptyBlob", func(t *testing.T) {
		_, err := DecodeSnapshot(nil)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("Truncated", func(t *testing.T) {
		blob := encodeSnapshot(t, []float64{1, 2, 3})

		_, err := DecodeSnapshot(blob[:snapshotHeaderSize-1])
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("BadMagic", func(t *testing.T) {
		blob := encodeSnapshot(t, []float64{1})
		blob[0] ^= 0xFF

		_, err := DecodeSnapshot(blob)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("BadVersion", func(t *testing.T) {
		blob := encodeSnapshot(t, []float64{1})
		blob[4] = 0x7F

		_, err := DecodeSnapshot(blob)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("UnknownCompressionByte", func(t *testing.T) {
		blob := encodeSnapshot(t, []float64{1})
		blob[5] = 0xEE

		_, err := DecodeSnapshot(blob)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("ChecksumMismatch", func(t *testing.T) {
		blob := encodeSnapshot(t, []float64{1, 2}, WithCompression(compress.CompressionNone))
		blob[snapshotHeaderSize] ^= 0x01

		_, err := DecodeSnapshot(blob)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("CountMismatch", func(t *testing.T) {
		blob := encodeSnapshot(t, []float64{1, 2}, WithCompression(compress.CompressionNone))
		binary.LittleEndian.PutUint64(blob[8:16], 3)

		_, err := DecodeSnapshot(blob)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})

	t.Run("CorruptPayload", func(t *testing.T) {
		blob := encodeSnapshot(t, make([]float64, 512))
		for i := snapshotHeaderSize; i < len(blob); i++ {
			blob[i] = 0xA5
		}

		_, err := DecodeSnapshot(blob)
		require.ErrorIs(t, err, errs.ErrCorruptSnapshot)
	})
}
