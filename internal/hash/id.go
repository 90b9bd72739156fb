package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given series or measurement name.
// Equal names always produce equal IDs, so the result is a stable key for
// registries and caches.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a raw payload. Snapshot encoding stores
// it alongside the data and decoding verifies it.
func Checksum(payload []byte) uint64 {
	return xxhash.Sum64(payload)
}
