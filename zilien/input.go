package zilien

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// timestampLayout is the timestamp prefix of Zilien file and directory
// names, like "2021-03-15 18_50_10".
const timestampLayout = "2006-01-02 15_04_05"

// openData opens path for reading, transparently decompressing ".gz" and
// ".zst" inputs.
func openData(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()

			return nil, err
		}

		return &layeredReader{Reader: zr, close: func() error {
			if err := zr.Close(); err != nil {
				f.Close()

				return err
			}

			return f.Close()
		}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			f.Close()

			return nil, err
		}

		return &layeredReader{Reader: zr, close: func() error {
			zr.Close()

			return f.Close()
		}}, nil
	default:
		return f, nil
	}
}

// layeredReader couples a decompression layer with the file beneath it so
// one Close releases both.
type layeredReader struct {
	io.Reader
	close func() error
}

func (r *layeredReader) Close() error {
	return r.close()
}

// fileStem returns the base name of path without its extension, peeling a
// compression extension first so "x.tsv.gz" stems to "x".
func fileStem(path string) string {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".gz", ".zst":
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// stemTimestamp parses the timestamp prefix of a file name, the first two
// space-separated tokens of "2021-04-20 11_16_18 measurement name",
// as a local-time Unix timestamp.
func stemTimestamp(stem string) (float64, bool) {
	parts := strings.SplitN(stem, " ", 3)
	if len(parts) < 2 {
		return 0, false
	}

	t, err := time.ParseInLocation(timestampLayout, parts[0]+" "+parts[1], time.Local)
	if err != nil {
		return 0, false
	}

	return float64(t.Unix()), true
}
