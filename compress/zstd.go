package compress

// ZstdCodec provides Zstandard compression for snapshot payloads.
//
// Zstd gives the best compression ratio of the built-in codecs and is the
// default for persisted series data, where payloads are written once and
// read rarely. Two implementations exist behind build tags: the default
// pure-Go klauspost encoder, and a cgo binding selected with -tags gozstd
// for deployments that want the reference library's throughput.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns CompressionZstd.
func (c ZstdCodec) Type() CompressionType {
	return CompressionZstd
}
