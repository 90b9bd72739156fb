// Package compress provides the compression codecs applied to persisted
// snapshot payloads.
//
// A snapshot payload is a flat little-endian float64 vector, the raw data
// of one series or field. Measurement data compresses well: elapsed-time
// columns are near-arithmetic sequences and many instrument channels sit
// flat for long stretches, so even general-purpose codecs reclaim most of
// the space.
//
// # Supported Algorithms
//
//   - None: pass-through, for in-memory backends and debugging
//   - Zstd: best ratio, the default for persisted data
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression, for lazily re-loaded payloads
//
// Codecs are stateless values obtained from CreateCodec; the algorithm of
// a stored payload is recorded in its snapshot header, so decoding never
// guesses.
//
// # Choosing an Algorithm
//
// | Workload                     | Recommended | Reason                  |
// |------------------------------|-------------|-------------------------|
// | Archival of finished runs    | Zstd        | Best compression ratio  |
// | Save-per-sweep acquisition   | S2          | Cheap repeated saves    |
// | Lazily resolved spectra      | LZ4         | Fastest decompression   |
// | In-memory test backends      | None        | No overhead             |
//
// # Zstd Implementations
//
// The default Zstd codec is the pure-Go klauspost implementation with
// pooled encoders and decoders. Building with -tags gozstd swaps in the
// valyala/gozstd cgo binding for deployments that want the reference
// library's throughput at the cost of cgo.
package compress
