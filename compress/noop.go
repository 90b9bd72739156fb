package compress

// NoopCodec passes payloads through unchanged. Useful for in-memory
// backends, debugging, and measuring codec overhead.
type NoopCodec struct{}

var _ Codec = (*NoopCodec)(nil)

// NewNoopCodec creates a pass-through codec.
func NewNoopCodec() NoopCodec {
	return NoopCodec{}
}

// Type returns CompressionNone.
func (c NoopCodec) Type() CompressionType {
	return CompressionNone
}

// Compress returns the input slice as-is, without copying. The result
// shares memory with the input.
func (c NoopCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying. The result
// shares memory with the input.
func (c NoopCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
