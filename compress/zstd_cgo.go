//go:build gozstd

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses data with the gozstd cgo binding at level 3.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd data with the gozstd cgo binding.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
