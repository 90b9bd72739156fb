package zilien

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/measurement"
	"github.com/ScottSoren/ixdat/series"
)

var (
	// streamColumnRE extracts the column name from a stream file name,
	// "C0M18" from "2021-04-20 11_16_18 name.C0M18.data.tsv".
	streamColumnRE = regexp.MustCompile(`\.([^.]+)\.data`)
	// streamMassRE finds an MS channel mass tag inside a column name.
	streamMassRE = regexp.MustCompile(`M[0-9]+`)
)

// stream is one unstitched value stream: a (time, value) column pair
// with its own acquisition anchor.
type stream struct {
	tstamp float64
	tName  string
	vName  string
	vUnit  string
	t      []float64
	v      []float64
}

// ReadTmpDir recovers a measurement from an unstitched acquisition
// directory.
//
// The acquisition software writes one ".tsv" file per value stream while
// running and stitches them on exit; after a crash only the directory
// remains. Every stream file holds a header line and (time, value) rows,
// with its own anchor as the file name's timestamp prefix. The streams
// are rebased onto the earliest anchor among them so that one shared
// anchor holds for the whole measurement. Files without a timestamp
// prefix or a ".{column}.data" name tag are ignored.
//
// The measurement name defaults to the name of the directory's parent,
// which is the measurement directory the temporary directory lives in.
func ReadTmpDir(dir string, opts ...ReadOption) (*measurement.Measurement, error) {
	cfg, err := newReadConfig(opts...)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var streams []stream
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".tsv") {
			continue
		}

		s, ok, err := readStream(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if ok {
			streams = append(streams, s)
		}
	}
	if len(streams) == 0 {
		return nil, fmt.Errorf("%w: no stream files in %s", errs.ErrFormat, dir)
	}

	anchor := streams[0].tstamp
	for _, s := range streams[1:] {
		if s.tstamp < anchor {
			anchor = s.tstamp
		}
	}

	list := make([]series.Series, 0, 2*len(streams))
	for _, s := range streams {
		if shift := s.tstamp - anchor; shift != 0 {
			for i := range s.t {
				s.t[i] += shift
			}
		}

		ts := series.NewTimeSeries(s.tName, "s", s.t, anchor)
		vs, err := series.NewValueSeries(s.vName, s.vUnit, s.v, ts)
		if err != nil {
			return nil, err
		}
		list = append(list, ts, vs)
	}

	name := cfg.name
	if name == "" {
		name = filepath.Base(filepath.Dir(filepath.Clean(dir)))
		if name == "." || name == string(os.PathSeparator) {
			name = filepath.Base(filepath.Clean(dir))
		}
	}

	aliases := measurement.NewAliases()
	aliases.Merge(defaultAliases(cfg.technique))

	return measurement.New(name, cfg.technique, anchor, list, aliases, nil), nil
}

// readStream parses one stream file. ok is false for files that do not
// look like stream files.
func readStream(path string) (stream, bool, error) {
	base := filepath.Base(path)

	match := streamColumnRE.FindStringSubmatch(base)
	if match == nil {
		return stream{}, false, nil
	}
	tstamp, ok := stemTimestamp(base)
	if !ok {
		return stream{}, false, nil
	}

	vName := match[1]
	unit := ""
	if mass := streamMassRE.FindString(vName); mass != "" {
		vName = mass
		unit = "A"
	}

	f, err := os.Open(path)
	if err != nil {
		return stream{}, false, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	// The first line names the two columns and is discarded.
	if _, err := r.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return stream{}, false, err
	}

	rows, err := readMatrix(r, 2)
	if err != nil {
		return stream{}, false, err
	}

	return stream{
		tstamp: tstamp,
		tName:  vName + "-x",
		vName:  vName,
		vUnit:  unit,
		t:      columnData(rows, 0, 0, len(rows)),
		v:      columnData(rows, 1, 0, len(rows)),
	}, true, nil
}
