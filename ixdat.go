// Package ixdat reads raw electrochemistry and mass-spectrometry data
// files into a uniform measurement model and persists them through
// pluggable backends.
//
// The model is built from float64 sample series: TimeSeries anchors
// sample offsets at an absolute unix time, ValueSeries aligns values
// with a shared TimeSeries, and Measurement bundles the series of one
// experiment together with aliases and instrument metadata. See the
// series and measurement packages for the model, the zilien package for
// the file formats.
//
// # Core Features
//
//   - Zilien TSV ingestion: multi-block stitched files, embedded
//     Biologic sub-datasets, mass-scan spectra, raw acquisition stream
//     folders
//   - Technique filtering (EC-MS, EC, MS) at read time
//   - Transparent .gz / .zst input decompression
//   - Alias-based series lookup ("t", "raw_potential", "M18", ...)
//   - Cycle segmentation for cyclic techniques (cyclic package)
//   - Persistence with lazy reloads through memory or SQLite backends,
//     sample payloads stored as compressed, checksummed snapshots
//
// # Basic Usage
//
// Reading a stitched data file and pulling an aligned (time, value)
// pair through the alias table:
//
//	m, err := ixdat.Read("2022-04-15 11_44_12 overnight.tsv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tcol, o2, err := m.Grab("M32")
//
// Persisting and restoring through SQLite:
//
//	db, _ := ixdat.NewSQLiteBackend("experiments.db")
//	defer db.Close()
//
//	id, _ := db.SaveMeasurement(m)
//	restored, _ := db.LoadMeasurement(id)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the zilien
// and backend packages, covering the common cases. For fine-grained
// control (technique selection, naming overrides, snapshot compression)
// use those packages directly.
package ixdat

import (
	"os"

	"github.com/ScottSoren/ixdat/backend"
	"github.com/ScottSoren/ixdat/internal/hash"
	"github.com/ScottSoren/ixdat/measurement"
	"github.com/ScottSoren/ixdat/series"
	"github.com/ScottSoren/ixdat/zilien"
)

// Read reads a measurement from path, dispatching on shape: a regular
// file is parsed as a stitched Zilien data file, a directory as a folder
// of raw acquisition streams.
//
// Compressed files (.gz, .zst) are decompressed transparently.
//
// Parameters:
//   - path: data file or stream folder
//   - opts: optional configuration (see zilien.ReadOption)
//
// Returns:
//   - *measurement.Measurement: the stitched measurement.
//   - error: an error if the input cannot be read or parsed.
//
// Available options:
//   - zilien.WithTechnique(measurement.TechniqueECMS|TechniqueEC|TechniqueMS)
//   - zilien.WithName("custom name")
//
// Example:
//
//	m, err := ixdat.Read("2022-04-15 11_44_12 overnight.tsv",
//	    zilien.WithTechnique(measurement.TechniqueMS),
//	)
func Read(path string, opts ...zilien.ReadOption) (*measurement.Measurement, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return zilien.ReadTmpDir(path, opts...)
	}

	return zilien.Read(path, opts...)
}

// ReadSpectrum reads a mass-scan spectrum file.
//
// Parameters:
//   - path: spectrum data file, optionally .gz or .zst compressed
//   - opts: optional configuration (see zilien.ReadOption)
//
// Returns:
//   - *series.Spectrum: the (x, y, tstamp) spectrum view.
//   - error: an error if the input cannot be read or parsed.
//
// Example:
//
//	sp, err := ixdat.ReadSpectrum("2022-04-15 11_50_01 mass scan.tsv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	masses, _ := sp.X()
//	currents, _ := sp.Y()
func ReadSpectrum(path string, opts ...zilien.ReadOption) (*series.Spectrum, error) {
	return zilien.ReadSpectrum(path, opts...)
}

// NewMemoryBackend creates a map-backed backend that keeps saved objects
// live. Suits tests and interactive sessions where persistence across
// processes is not needed.
func NewMemoryBackend() *backend.Memory {
	return backend.NewMemory()
}

// NewSQLiteBackend opens, creating when absent, a backend database at
// path using the pure Go SQLite driver.
//
// Parameters:
//   - path: database file path
//   - opts: optional configuration (see backend.SnapshotOption)
//
// Returns:
//   - *backend.SQLite: the opened backend.
//   - error: an error if the database cannot be opened or migrated.
//
// Available options:
//   - backend.WithCompression(compress.CompressionNone|Zstd|S2|LZ4)
//
// Example:
//
//	db, err := ixdat.NewSQLiteBackend("experiments.db",
//	    backend.WithCompression(compress.CompressionLZ4),
//	)
func NewSQLiteBackend(path string, opts ...backend.SnapshotOption) (*backend.SQLite, error) {
	return backend.NewSQLite(path, opts...)
}

// SeriesKey converts a series name to its stable 64-bit hash key.
//
// The key is deterministic across processes and platforms (xxHash64), so
// consumer-side registries can index series without coordinating id
// assignment with a backend. Keys derived from names are unrelated to
// the ids backends assign on save.
//
// Example:
//
//	key := ixdat.SeriesKey("M32 [A]")
func SeriesKey(name string) uint64 {
	return hash.ID(name)
}
