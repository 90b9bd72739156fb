package zilien

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// readMatrix reads the numeric region into uniform rows of width cells.
// Cells that are empty, missing or unparseable read as NaN; blank lines
// are skipped.
func readMatrix(r *bufio.Reader, width int) ([][]float64, error) {
	var rows [][]float64

	for {
		line, err := r.ReadString('\n')
		if cells := strings.TrimRight(line, "\r\n"); cells != "" {
			rows = append(rows, parseRow(cells, width))
		}

		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseRow parses one tab-separated matrix line into exactly width
// cells, NaN-filling both bad cells and short rows and dropping cells
// beyond width.
func parseRow(line string, width int) []float64 {
	cells := strings.Split(line, "\t")
	row := make([]float64, width)

	for i := range row {
		row[i] = math.NaN()
		if i >= len(cells) {
			continue
		}

		cell := strings.TrimSpace(cells[i])
		if cell == "" {
			continue
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			row[i] = v
		}
	}

	return row
}

// columnData copies one column of the row range [begin, end) out of the
// matrix.
func columnData(rows [][]float64, col, begin, end int) []float64 {
	data := make([]float64, 0, end-begin)
	for _, row := range rows[begin:end] {
		data = append(data, row[col])
	}

	return data
}

// allNaN reports whether every sample is NaN. An empty column counts as
// all NaN, matching the hole-skipping rule for zero-length row ranges.
func allNaN(data []float64) bool {
	for _, v := range data {
		if !math.IsNaN(v) {
			return false
		}
	}

	return true
}
