package compress

import "github.com/klauspost/compress/s2"

// S2Codec provides S2 compression, the middle ground between the zstd and
// lz4 codecs: faster than zstd, tighter than lz4. A reasonable choice for
// backends that save after every acquisition sweep.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates an S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns CompressionS2.
func (c S2Codec) Type() CompressionType {
	return CompressionS2
}

// Compress compresses data in S2 block form.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 block data.
func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
