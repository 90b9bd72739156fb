package zilien

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/measurement"
)

func TestParseMetadataLine(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		key, value, err := parseMetadataLine(metaLine("operator", "", "string", "js")+"\n", "test.tsv", 5)
		require.NoError(t, err)
		require.Equal(t, "operator", key)
		require.Equal(t, "js", value)
	})

	t.Run("Int", func(t *testing.T) {
		key, value, err := parseMetadataLine(metaLine("num_header_lines", "", "int", "42")+"\n", "test.tsv", 2)
		require.NoError(t, err)
		require.Equal(t, "num_header_lines", key)
		require.Equal(t, 42, value)
	})

	t.Run("Double", func(t *testing.T) {
		key, value, err := parseMetadataLine(metaLine("flow_rate", "", "double", "12.5")+"\n", "test.tsv", 6)
		require.NoError(t, err)
		require.Equal(t, "flow_rate", key)
		require.Equal(t, 12.5, value)
	})

	t.Run("AttachedBool", func(t *testing.T) {
		key, value, err := parseMetadataLine(metaLine("active", "MS", "bool", "true")+"\n", "test.tsv", 7)
		require.NoError(t, err)
		require.Equal(t, "MS_active", key)
		require.Equal(t, true, value)
	})

	t.Run("BoolIsExactMatch", func(t *testing.T) {
		_, value, err := parseMetadataLine(metaLine("active", "", "bool", "True")+"\n", "test.tsv", 7)
		require.NoError(t, err)
		require.Equal(t, false, value)
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, _, err := parseMetadataLine(metaLine("trace_color", "", "color", "#ff0000")+"\n", "test.tsv", 9)
		require.ErrorIs(t, err, errs.ErrUnknownMetadataType)
		require.ErrorIs(t, err, errs.ErrFormat)
		require.Contains(t, err.Error(), "trace_color")
	})

	t.Run("WrongFieldCount", func(t *testing.T) {
		_, _, err := parseMetadataLine("a\tb\tc\n", "test.tsv", 3)
		require.ErrorIs(t, err, errs.ErrMetadataFieldCount)
		require.Contains(t, err.Error(), "test.tsv")
		require.Contains(t, err.Error(), "line 3")
	})

	t.Run("InvalidInt", func(t *testing.T) {
		_, _, err := parseMetadataLine(metaLine("count", "", "int", "lots")+"\n", "test.tsv", 4)
		require.ErrorIs(t, err, errs.ErrFormat)
		require.Contains(t, err.Error(), "count")
	})
}

func TestReadHeader(t *testing.T) {
	t.Run("ParsesPreambleAndHeaderRows", func(t *testing.T) {
		content := buildFile(
			[]string{metaLine("experiment_note", "", "string", "clean sweep")},
			[]string{"a", ""},
			[]string{"Time [s]", "Pressure [mbar]"},
		)

		hdr, err := readHeader(bufio.NewReader(strings.NewReader(content)), "test.tsv")
		require.NoError(t, err)

		require.Equal(t, []string{"a", ""}, hdr.seriesHeaders)
		require.Equal(t, []string{"Time [s]", "Pressure [mbar]"}, hdr.columnHeaders)

		note, ok := hdr.meta.Str("experiment_note")
		require.True(t, ok)
		require.Equal(t, "clean sweep", note)

		total, ok := hdr.meta.Int(headerLineCountKey)
		require.True(t, ok)
		require.Equal(t, 5, total)
	})

	t.Run("DefaultsFormatVersion", func(t *testing.T) {
		lines := []string{
			metaLine("num_header_lines", "", "int", "4"),
			metaLine("num_data_header_lines", "", "int", "2"),
			metaLine("data_start_line", "", "int", "7"),
			metaLine("padding", "", "string", "x"),
			"s1\t",
			"Time [s]\tPressure [mbar]",
		}
		content := strings.Join(lines, "\n") + "\n"

		hdr, err := readHeader(bufio.NewReader(strings.NewReader(content)), "test.tsv")
		require.NoError(t, err)

		version, ok := hdr.meta.Int(formatVersionKey)
		require.True(t, ok)
		require.Equal(t, 1, version)
	})

	t.Run("MissingLineCount", func(t *testing.T) {
		lines := []string{
			metaLine("file_format_version", "", "int", "1"),
			metaLine("some", "", "string", "x"),
			metaLine("other", "", "string", "y"),
			metaLine("third", "", "string", "z"),
		}
		content := strings.Join(lines, "\n") + "\n"

		_, err := readHeader(bufio.NewReader(strings.NewReader(content)), "test.tsv")
		require.ErrorIs(t, err, errs.ErrFormat)
		require.Contains(t, err.Error(), headerLineCountKey)
	})

	t.Run("TruncatedPreamble", func(t *testing.T) {
		content := metaLine("file_format_version", "", "int", "1") + "\n"

		_, err := readHeader(bufio.NewReader(strings.NewReader(content)), "test.tsv")
		require.ErrorIs(t, err, errs.ErrFormat)
		require.Contains(t, err.Error(), "truncated")
	})

	t.Run("MissingHeaderRows", func(t *testing.T) {
		lines := []string{
			metaLine("file_format_version", "", "int", "1"),
			metaLine("num_header_lines", "", "int", "4"),
			metaLine("num_data_header_lines", "", "int", "2"),
			metaLine("data_start_line", "", "int", "7"),
		}
		content := strings.Join(lines, "\n") + "\n"

		_, err := readHeader(bufio.NewReader(strings.NewReader(content)), "test.tsv")
		require.ErrorIs(t, err, errs.ErrHeaderRowMissing)
	})
}

func TestBlockCount(t *testing.T) {
	t.Run("FromMetadata", func(t *testing.T) {
		meta := measurement.Metadata{"b_b_count": 3}
		require.Equal(t, 3, blockCount(meta, "b", 10))
	})

	t.Run("MissingUsesAllRows", func(t *testing.T) {
		require.Equal(t, 5, blockCount(measurement.Metadata{}, "b", 5))
	})

	t.Run("ClampedToRowCount", func(t *testing.T) {
		meta := measurement.Metadata{"b_b_count": 9}
		require.Equal(t, 4, blockCount(meta, "b", 4))
	})

	t.Run("NegativeIsEmpty", func(t *testing.T) {
		meta := measurement.Metadata{"b_b_count": -1}
		require.Equal(t, 0, blockCount(meta, "b", 4))
	})
}
