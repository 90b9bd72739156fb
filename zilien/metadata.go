package zilien

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/measurement"
)

const (
	// metadataFieldCount is the number of tab-separated fields on every
	// preamble line: name, comment, series attachment, type, value.
	metadataFieldCount = 5

	// fixedPreambleLines is the number of preamble lines every file opens
	// with before the total line count is known: file version, header line
	// count, data header line count and data start line.
	fixedPreambleLines = 4

	headerLineCountKey   = "num_header_lines"
	formatVersionKey     = "file_format_version"
	startTimeMetadataKey = "start_time_unix"
)

// fileHeader is everything preceding the numeric matrix: the parsed
// preamble metadata and the two data header rows.
type fileHeader struct {
	meta          measurement.Metadata
	seriesHeaders []string
	columnHeaders []string
}

// readHeader consumes the preamble and the two header rows, leaving r
// positioned at the first matrix row.
//
// The first fixedPreambleLines lines are read unconditionally; the line
// count entry among them declares how many preamble lines follow. A
// missing format version entry is backfilled with version 1.
func readHeader(r *bufio.Reader, path string) (*fileHeader, error) {
	meta := make(measurement.Metadata)

	for lineNum := 1; lineNum <= fixedPreambleLines; lineNum++ {
		if err := readMetadataInto(r, path, lineNum, meta); err != nil {
			return nil, err
		}
	}

	total, ok := meta.Int(headerLineCountKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s declares no integer %q entry", errs.ErrFormat, path, headerLineCountKey)
	}
	for lineNum := fixedPreambleLines + 1; lineNum <= total; lineNum++ {
		if err := readMetadataInto(r, path, lineNum, meta); err != nil {
			return nil, err
		}
	}

	// Version 1 files sometimes omit the version entry.
	if _, ok := meta[formatVersionKey]; !ok {
		meta[formatVersionKey] = 1
	}

	seriesHeaders, err := readHeaderRow(r, path, "series header")
	if err != nil {
		return nil, err
	}
	columnHeaders, err := readHeaderRow(r, path, "column header")
	if err != nil {
		return nil, err
	}

	return &fileHeader{
		meta:          meta,
		seriesHeaders: seriesHeaders,
		columnHeaders: columnHeaders,
	}, nil
}

// readMetadataInto reads and parses one preamble line into meta.
func readMetadataInto(r *bufio.Reader, path string, lineNum int, meta measurement.Metadata) error {
	line, err := r.ReadString('\n')
	if line == "" && err != nil {
		return fmt.Errorf("%w: %s preamble truncated at line %d", errs.ErrFormat, path, lineNum)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	key, value, err := parseMetadataLine(line, path, lineNum)
	if err != nil {
		return err
	}
	meta[key] = value

	return nil
}

// parseMetadataLine parses one five-field preamble line into its
// metadata key and typed value.
//
// The key is the field name, prefixed with "{attachment}_" when the line
// attaches to a series block. The declared type coerces the value:
// "string" keeps it verbatim, "int" and "double" parse it numerically,
// and "bool" compares it against "true". Any other type is a format
// error naming the field.
func parseMetadataLine(line, path string, lineNum int) (string, any, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != metadataFieldCount {
		return "", nil, fmt.Errorf("%w: %s line %d has %d fields, want %d",
			errs.ErrMetadataFieldCount, path, lineNum, len(fields), metadataFieldCount)
	}

	// fields[1] is a free-form comment and is ignored.
	name, attach, typ, value := fields[0], fields[2], fields[3], fields[4]

	key := name
	if attach != "" {
		key = attach + "_" + name
	}

	switch typ {
	case "string":
		return key, value, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s line %d: invalid int %q for field %q",
				errs.ErrFormat, path, lineNum, value, name)
		}

		return key, n, nil
	case "double":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s line %d: invalid double %q for field %q",
				errs.ErrFormat, path, lineNum, value, name)
		}

		return key, f, nil
	case "bool":
		return key, value == "true", nil
	default:
		return "", nil, fmt.Errorf("%w: %q for field %q", errs.ErrUnknownMetadataType, typ, name)
	}
}

// readHeaderRow reads one data header row as its tab-separated cells,
// trailing empty cells included.
func readHeaderRow(r *bufio.Reader, path, which string) ([]string, error) {
	line, err := r.ReadString('\n')
	if line == "" && err != nil {
		return nil, fmt.Errorf("%w: %s has no %s row", errs.ErrHeaderRowMissing, path, which)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return strings.Split(strings.TrimRight(line, "\r\n"), "\t"), nil
}

// metaFloat reads a metadata entry as a float64, accepting double, int
// and numeric string values.
func metaFloat(meta measurement.Metadata, key string) (float64, bool) {
	switch v := meta[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// blockCount returns the number of valid rows for a block, declared by
// its "{label}_{label}_count" metadata entry and clamped to [0, max].
// Blocks without a count entry use every row.
func blockCount(meta measurement.Metadata, label string, max int) int {
	count, ok := metaFloat(meta, label+"_"+label+"_count")
	if !ok {
		return max
	}

	n := int(count)
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}

	return n
}
