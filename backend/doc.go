// Package backend persists series, fields and measurements and restores
// them by identity.
//
// Two implementations are provided. Memory keeps saved objects live in
// maps and suits tests and interactive sessions. SQLite writes them to
// a single database file through the pure Go modernc.org/sqlite driver.
//
// # Identity
//
// Series and fields receive monotonically increasing uint64 ids on
// first save, recorded on the object through its Bind hook, and saving
// is idempotent from then on. Loads go through a per-backend identity
// cache, so a time series serving several value series is restored
// exactly once and the sharing survives the round trip. Measurements
// are keyed by the UUID assigned at construction.
//
// # Snapshots
//
// Sample payloads are stored as snapshot blobs: a fixed 24-byte header
// carrying a magic, format version, compression type, sample count and
// xxHash64 checksum, followed by the compressed little-endian float64
// samples. Blobs are self-describing, so a database written with one
// compression setting reads back under any other. Corrupt blobs are
// reported as errs.ErrCorruptSnapshot.
package backend
