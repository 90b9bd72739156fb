package zilien

import (
	"fmt"
	"slices"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/series"
)

// runKeyBase combines an experiment number and a technique number into
// one run key: key = experiment*runKeyBase + technique. A technique
// number at or above the base would collide with keys of later
// experiments, so such files are rejected.
const runKeyBase = 1000

// rowRange is a half-open matrix row range [begin, end).
type rowRange struct {
	begin int
	end   int
}

// biologicPart builds the series of an embedded Biologic block.
//
// The block's rows concatenate several experiment/technique runs. The
// two structural columns identify the run of every row; maximal
// contiguous row ranges with equal run key become separate series
// groups, each anchored by its own elapsed-time series. The structural
// columns themselves never produce series.
func biologicPart(hdr *fileHeader, block blockSpan, rows [][]float64, tstamp float64) ([]series.Series, error) {
	columns := hdr.columnHeaders[block.begin:block.end]
	names := blockNames(block.label, columns)
	count := blockCount(hdr.meta, block.label, len(rows))

	expCol := slices.Index(columns, experimentNumberHeader)
	techCol := slices.Index(columns, techniqueNumberHeader)
	if expCol < 0 || techCol < 0 {
		return nil, fmt.Errorf("%w: block %q lacks a %q or %q column",
			errs.ErrFormat, block.label, experimentNumberHeader, techniqueNumberHeader)
	}

	keys := make([]float64, count)
	for row := 0; row < count; row++ {
		tech := rows[row][block.begin+techCol]
		if tech >= runKeyBase {
			return nil, fmt.Errorf("%w: technique number %g at row %d", errs.ErrAmbiguousRunKey, tech, row)
		}
		keys[row] = rows[row][block.begin+expCol]*runKeyBase + tech
	}

	var out []series.Series
	for _, run := range contiguousRuns(keys) {
		part, err := buildSeries(columns, names, rows, block.begin, run, tstamp)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}

	return out, nil
}

// contiguousRuns partitions keys into maximal runs of equal adjacent
// values, preserving order. A key recurring non-adjacently starts a new
// run.
func contiguousRuns(keys []float64) []rowRange {
	var runs []rowRange

	begin := 0
	for i := 1; i <= len(keys); i++ {
		if i < len(keys) && keys[i] == keys[begin] {
			continue
		}

		runs = append(runs, rowRange{begin: begin, end: i})
		begin = i
	}

	return runs
}
