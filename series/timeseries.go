package series

// TimeSeries is a DataSeries anchored at an absolute point in time. Its
// data are elapsed-time offsets in seconds relative to TStamp.
//
// Canonical reader output guarantees offsets that are non-negative and
// monotonically non-decreasing; the type itself does not enforce this, as
// intermediate construction may reorder or rebase offsets.
type TimeSeries struct {
	DataSeries
	tstamp float64
}

// NewTimeSeries creates a TimeSeries anchored at tstamp, a Unix epoch time
// in seconds (UTC). Ownership of data transfers to the series.
func NewTimeSeries(name, unit string, data []float64, tstamp float64) *TimeSeries {
	return &TimeSeries{
		DataSeries: DataSeries{name: name, unit: unit, data: data},
		tstamp:     tstamp,
	}
}

// RestoreTimeSeries recreates a previously persisted TimeSeries under its
// stored identity. Intended for backend load paths.
func RestoreTimeSeries(id uint64, name, unit string, data []float64, tstamp float64) *TimeSeries {
	ts := NewTimeSeries(name, unit, data, tstamp)
	ts.id = id

	return ts
}

// TStamp returns the absolute epoch anchor in seconds.
func (t *TimeSeries) TStamp() float64 {
	return t.tstamp
}

// AbsoluteTime returns tstamp + offset for every sample. The result is
// computed on demand and never stored; the returned slice is owned by the
// caller.
func (t *TimeSeries) AbsoluteTime() []float64 {
	abs := make([]float64, len(t.data))
	for i, offset := range t.data {
		abs[i] = t.tstamp + offset
	}

	return abs
}
