// Package errs defines the sentinel error values used across the ixdat
// library.
//
// Errors fall into three groups: file-format errors raised while parsing
// instrument output, data-model errors raised when constructing series
// objects, and persistence errors raised by backends. Callers match them
// with errors.Is; library code adds context by wrapping, e.g.
//
//	fmt.Errorf("%w: %s line %d", errs.ErrMetadataFieldCount, path, lineNum)
//
// Every file-format sentinel wraps ErrFormat, so a single
// errors.Is(err, errs.ErrFormat) check catches the whole family while the
// specific sentinel remains matchable.
package errs

import (
	"errors"
	"fmt"
)

// ErrFormat is the root of the file-format error family. Any error raised
// because an input file violates its format contract matches this sentinel.
var ErrFormat = errors.New("invalid file format")

// File-format errors. All wrap ErrFormat.
var (
	// ErrMetadataFieldCount indicates a preamble metadata line did not split
	// into exactly five tab-separated fields.
	ErrMetadataFieldCount = fmt.Errorf("%w: wrong metadata field count", ErrFormat)

	// ErrUnknownMetadataType indicates a metadata line declared a value type
	// other than string, int, double or bool.
	ErrUnknownMetadataType = fmt.Errorf("%w: unknown metadata type", ErrFormat)

	// ErrHeaderRowMissing indicates the file ended before both header rows
	// could be read.
	ErrHeaderRowMissing = fmt.Errorf("%w: missing header row", ErrFormat)

	// ErrValueBeforeTime indicates a column block contained a value column
	// before its elapsed-time column.
	ErrValueBeforeTime = fmt.Errorf("%w: value column before time column", ErrFormat)

	// ErrMassColumnMissing indicates a spectrum file contained no recognized
	// mass-axis column.
	ErrMassColumnMissing = fmt.Errorf("%w: no mass column", ErrFormat)

	// ErrAmbiguousRunKey indicates an embedded sub-dataset carried a
	// technique number too large to combine with its experiment number into
	// an unambiguous run key.
	ErrAmbiguousRunKey = fmt.Errorf("%w: ambiguous run key", ErrFormat)
)

// Data-model errors.
var (
	// ErrSeriesLengthMismatch indicates a value series and its time series
	// have different lengths.
	ErrSeriesLengthMismatch = errors.New("series length mismatch")

	// ErrMissingTimeReference indicates a value series was constructed
	// without a time series.
	ErrMissingTimeReference = errors.New("value series requires a time reference")

	// ErrFieldShapeMismatch indicates a field's shape does not match its
	// axes, or the flat data length does not match the shape product.
	ErrFieldShapeMismatch = errors.New("field shape mismatch")

	// ErrSpectrumAxisCount indicates a spectrum was constructed from a field
	// without exactly one x axis and one single-sample time axis.
	ErrSpectrumAxisCount = errors.New("spectrum requires a two-axis field")

	// ErrInvalidTechnique indicates an unsupported technique selector.
	ErrInvalidTechnique = errors.New("invalid technique")

	// ErrUnresolvedReference indicates a lazily backed object has no loader
	// to resolve it with.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// Persistence errors.
var (
	// ErrNotFound indicates the backend has no object with the requested id.
	ErrNotFound = errors.New("object not found")

	// ErrCorruptSnapshot indicates a stored payload failed magic, version or
	// checksum verification.
	ErrCorruptSnapshot = errors.New("corrupt snapshot payload")

	// ErrBackendClosed indicates an operation on a closed backend.
	ErrBackendClosed = errors.New("backend is closed")

	// ErrInvalidCompressionType indicates an unsupported compression type.
	ErrInvalidCompressionType = errors.New("invalid compression type")
)
