package zilien

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/series"
)

const (
	// spectrumPreambleLines is the number of free-form lines preceding a
	// spectrum file's column header row.
	spectrumPreambleLines = 9

	// massScanMarker tags the preamble line carrying the scan start offset
	// in seconds.
	massScanMarker = "Mass scan started at [s]"

	spectrumAmplitudeHeader = "Current [A]"
)

// spectrumMassHeaders are the recognized mass-axis column spellings. The
// double-space variant occurs in files from some installations.
var spectrumMassHeaders = []string{"Mass  [AMU]", "Mass [AMU]"}

// floatRE matches the first floating point literal in a line.
var floatRE = regexp.MustCompile(`-?[0-9]+\.?[0-9]*(?:[eE][-+]?[0-9]+)?`)

// ReadSpectrum ingests one Zilien mass-scan spectrum file.
//
// The file name's timestamp prefix plus the scan start offset from the
// preamble's "Mass scan started at [s]" line give the acquisition time.
// The mass axis comes from the "Mass [AMU]" column (either spelling),
// the amplitudes from the "Current [A]" column. The spectrum name
// defaults to the file name and can be overridden with WithName.
//
// Returns errs.ErrMassColumnMissing when no mass column is present;
// other format violations surface as errors matching errs.ErrFormat.
func ReadSpectrum(path string, opts ...ReadOption) (*series.Spectrum, error) {
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

	offset := math.NaN()
	for lineNum := 1; lineNum <= spectrumPreambleLines; lineNum++ {
		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			return nil, fmt.Errorf("%w: %s preamble truncated at line %d", errs.ErrFormat, path, lineNum)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if !strings.Contains(line, massScanMarker) {
			continue
		}
		if m := floatRE.FindString(line); m != "" {
			if v, perr := strconv.ParseFloat(m, 64); perr == nil {
				offset = v
			}
		}
	}
	if math.IsNaN(offset) {
		return nil, fmt.Errorf("%w: %s has no %q line", errs.ErrFormat, path, massScanMarker)
	}

	columns, err := readHeaderRow(r, path, "column header")
	if err != nil {
		return nil, err
	}

	massCol := -1
	var massHeader string
	for _, header := range spectrumMassHeaders {
		if i := slices.Index(columns, header); i >= 0 {
			massCol, massHeader = i, header
			break
		}
	}
	if massCol < 0 {
		return nil, fmt.Errorf("%w: %s has none of %v", errs.ErrMassColumnMissing, path, spectrumMassHeaders)
	}

	ampCol := slices.Index(columns, spectrumAmplitudeHeader)
	if ampCol < 0 {
		return nil, fmt.Errorf("%w: %s has no %q column", errs.ErrFormat, path, spectrumAmplitudeHeader)
	}

	rows, err := readMatrix(r, len(columns))
	if err != nil {
		return nil, err
	}

	x := series.New(massHeader, "m/z", columnData(rows, massCol, 0, len(rows)))
	y := columnData(rows, ampCol, 0, len(rows))

	anchor, _ := stemTimestamp(fileStem(path))

	name := cfg.name
	if name == "" {
		name = filepath.Base(path)
	}

	return series.NewSpectrum(name, x, y, "A", anchor+offset)
}
