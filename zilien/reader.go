package zilien

import (
	"bufio"
	"fmt"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/internal/options"
	"github.com/ScottSoren/ixdat/measurement"
	"github.com/ScottSoren/ixdat/series"
)

// readConfig collects the reader options.
type readConfig struct {
	technique measurement.Technique
	name      string
}

// ReadOption represents a functional option for configuring a read.
// This is a type alias for the generic Option interface specialized for
// the reader configuration.
type ReadOption = options.Option[*readConfig]

// WithTechnique selects which instrument families to read. An EC-only
// technique drops the MS channel blocks, an MS-only technique drops the
// electrochemistry blocks. The default is TechniqueECMS, which keeps
// both.
func WithTechnique(tech measurement.Technique) ReadOption {
	return options.New(func(c *readConfig) error {
		if !tech.IsEC() && !tech.IsMS() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidTechnique, tech)
		}
		c.technique = tech

		return nil
	})
}

// WithName sets the measurement name. The default is the file name
// without its extension.
func WithName(name string) ReadOption {
	return options.NoError(func(c *readConfig) {
		c.name = name
	})
}

func newReadConfig(opts ...ReadOption) (*readConfig, error) {
	cfg := &readConfig{technique: measurement.TechniqueECMS}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ecAliases are the standard logical names every electrochemistry-capable
// read resolves. They merge in after any reader-derived entries.
var ecAliases = measurement.Aliases{
	"t":             {"Potential time [s]"},
	"raw_potential": {"Voltage [V]"},
	"raw_current":   {"Current [mA]"},
	"cycle":         {"Cycle [n]"},
}

func defaultAliases(tech measurement.Technique) measurement.Aliases {
	if tech.IsEC() {
		return ecAliases
	}

	return nil
}

// Read ingests one stitched Zilien file into a measurement.
//
// The file's preamble metadata, column blocks and numeric matrix are
// parsed per the layout in the package documentation. Blocks not covered
// by the configured technique are dropped; an embedded Biologic block is
// split back into its experiment/technique runs. The measurement anchor
// comes from the preamble's start time entry, falling back to the file
// name's timestamp prefix, falling back to zero.
//
// Format violations surface as errors matching errs.ErrFormat.
func Read(path string, opts ...ReadOption) (*measurement.Measurement, error) {
	cfg, err := newReadConfig(opts...)
	if err != nil {
		return nil, err
	}

	data, err := openData(path)
	if err != nil {
		return nil, err
	}
	defer data.Close()

	r := bufio.NewReader(data)
	hdr, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}

	rows, err := readMatrix(r, len(hdr.columnHeaders))
	if err != nil {
		return nil, err
	}

	stem := fileStem(path)
	tstamp := resolveTStamp(hdr.meta, stem)

	list, aliases, err := formSeries(cfg.technique, hdr, rows, tstamp)
	if err != nil {
		return nil, err
	}
	aliases.Merge(defaultAliases(cfg.technique))

	name := cfg.name
	if name == "" {
		name = stem
	}

	return measurement.New(name, cfg.technique, tstamp, list, aliases, hdr.meta), nil
}

// resolveTStamp picks the measurement anchor: the preamble's start time
// entry when present, else the file name's timestamp prefix, else zero.
func resolveTStamp(meta measurement.Metadata, stem string) float64 {
	if v, ok := metaFloat(meta, startTimeMetadataKey); ok {
		return v
	}
	if v, ok := stemTimestamp(stem); ok {
		return v
	}

	return 0
}

// formSeries walks the column blocks and builds the series list and the
// reader-derived alias table.
func formSeries(tech measurement.Technique, hdr *fileHeader, rows [][]float64, tstamp float64) ([]series.Series, measurement.Aliases, error) {
	aliases := measurement.NewAliases()
	var list []series.Series

	for _, block := range splitBlocks(hdr.seriesHeaders, len(hdr.columnHeaders)) {
		if !tech.IsEC() && (block.label == potentiostatLabel || block.label == biologicLabel) {
			continue
		}
		if !tech.IsMS() && toMass(block.label) != "" {
			continue
		}

		var part []series.Series
		var err error
		if block.label == biologicLabel {
			part, err = biologicPart(hdr, block, rows, tstamp)
		} else {
			part, err = nativePart(hdr, block, rows, tstamp, aliases)
		}
		if err != nil {
			return nil, nil, err
		}

		list = append(list, part...)
	}

	return list, aliases, nil
}

// nativePart builds the series of a native block: its valid rows in one
// group, with MS channel standard names collected into aliases.
func nativePart(hdr *fileHeader, block blockSpan, rows [][]float64, tstamp float64, aliases measurement.Aliases) ([]series.Series, error) {
	columns := hdr.columnHeaders[block.begin:block.end]
	names := blockNames(block.label, columns)
	count := blockCount(hdr.meta, block.label, len(rows))

	for _, n := range names {
		if n.stdName != "" {
			aliases.Add(n.stdName, n.name)
		}
	}

	return buildSeries(columns, names, rows, block.begin, rowRange{begin: 0, end: count}, tstamp)
}

// columnName is the derived naming of one column: the series name, its
// unit, and the standard alias name of MS channel columns.
type columnName struct {
	name    string
	unit    string
	stdName string
}

// blockNames derives the naming of every column in a block.
func blockNames(label string, columns []string) []columnName {
	names := make([]columnName, len(columns))

	for i, column := range columns {
		if isTimeColumn(column) {
			names[i] = columnName{name: timeName(label, column), unit: "s"}
			continue
		}

		name, unit, stdName := formName(label, column)
		names[i] = columnName{name: name, unit: unit, stdName: stdName}
	}

	return names
}

// buildSeries turns one row range of a block into series objects, in
// column order.
//
// Structural run-splitting columns are skipped, as are columns whose
// rows hold no samples at all. The block's elapsed-time column becomes a
// TimeSeries anchored at tstamp; every later column becomes a
// ValueSeries aligned with it. A value column with no time column before
// it is a format error.
func buildSeries(columns []string, names []columnName, rows [][]float64, colBegin int, run rowRange, tstamp float64) ([]series.Series, error) {
	var out []series.Series
	var tref *series.TimeSeries

	for i, column := range columns {
		if column == experimentNumberHeader || column == techniqueNumberHeader {
			continue
		}

		data := columnData(rows, colBegin+i, run.begin, run.end)
		if allNaN(data) {
			continue
		}

		n := names[i]
		if isTimeColumn(column) {
			ts := series.NewTimeSeries(n.name, n.unit, data, tstamp)
			tref = ts
			out = append(out, ts)
			continue
		}

		if tref == nil {
			return nil, fmt.Errorf("%w: column %q", errs.ErrValueBeforeTime, column)
		}

		vs, err := series.NewValueSeries(n.name, n.unit, data, tref)
		if err != nil {
			return nil, err
		}
		out = append(out, vs)
	}

	return out, nil
}
