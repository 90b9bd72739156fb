package series

import (
	"fmt"

	"github.com/ScottSoren/ixdat/errs"
)

// ValueSeries is a DataSeries whose samples are aligned with a TimeSeries.
// The reference is non-owning: many ValueSeries routinely share one
// TimeSeries, and backends must preserve that sharing across round trips.
type ValueSeries struct {
	DataSeries
	tref *TimeSeries
}

// NewValueSeries creates a ValueSeries aligned with tref.
//
// Ownership of data transfers to the series. The alignment invariant is
// enforced at construction: len(data) must equal tref.Len().
//
// Returns errs.ErrMissingTimeReference when tref is nil and
// errs.ErrSeriesLengthMismatch when the lengths differ.
func NewValueSeries(name, unit string, data []float64, tref *TimeSeries) (*ValueSeries, error) {
	if tref == nil {
		return nil, fmt.Errorf("%w: series %q", errs.ErrMissingTimeReference, name)
	}
	if len(data) != tref.Len() {
		return nil, fmt.Errorf("%w: series %q has %d values, time series %q has %d",
			errs.ErrSeriesLengthMismatch, name, len(data), tref.Name(), tref.Len())
	}

	return &ValueSeries{
		DataSeries: DataSeries{name: name, unit: unit, data: data},
		tref:       tref,
	}, nil
}

// RestoreValueSeries recreates a previously persisted ValueSeries under its
// stored identity. Intended for backend load paths.
func RestoreValueSeries(id uint64, name, unit string, data []float64, tref *TimeSeries) (*ValueSeries, error) {
	vs, err := NewValueSeries(name, unit, data, tref)
	if err != nil {
		return nil, err
	}
	vs.id = id

	return vs, nil
}

// TimeRef returns the TimeSeries this series is aligned with.
func (v *ValueSeries) TimeRef() *TimeSeries {
	return v.tref
}

// TStamp returns the absolute epoch anchor of the referenced TimeSeries.
func (v *ValueSeries) TStamp() float64 {
	return v.tref.TStamp()
}

// Time returns the elapsed-time offsets of the referenced TimeSeries.
// Callers must not modify the returned slice.
func (v *ValueSeries) Time() []float64 {
	return v.tref.Data()
}
