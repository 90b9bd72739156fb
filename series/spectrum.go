package series

import (
	"fmt"

	"github.com/ScottSoren/ixdat/errs"
)

// Spectrum views a two-axis Field as (x, y, tstamp): axis 0 is the
// x domain (for example mass), axis 1 is a single-sample TimeSeries whose
// one offset plus anchor gives the acquisition time. The y view is the
// field data collapsed at that single time sample.
//
// A Spectrum is constructed either directly from a Field, from raw
// (x, y, tstamp) data, or as a lazy reference that loads its field from a
// backend on first view access. The direct paths are equivalent: raw
// construction synthesizes exactly the field that the field path expects.
type Spectrum struct {
	name  string
	field *Field
	ref   *Ref[*Field]
}

// SpectrumTimeName is the name of the synthesized single-sample time axis.
const SpectrumTimeName = "spectrum time"

// NewSpectrumFromField creates a Spectrum around an existing two-axis
// field.
//
// Returns errs.ErrSpectrumAxisCount unless the field has exactly two axes
// with axis 1 a single-sample TimeSeries.
func NewSpectrumFromField(name string, f *Field) (*Spectrum, error) {
	if err := validateSpectrumField(f); err != nil {
		return nil, err
	}

	return &Spectrum{name: name, field: f}, nil
}

// NewSpectrum creates a Spectrum from raw data: an x-domain series, the
// amplitudes sampled over it, the amplitude unit, and the absolute
// acquisition time.
//
// The canonical field is synthesized with axes [x, time] where the time
// axis is a single-sample TimeSeries named SpectrumTimeName anchored at
// tstamp with offset 0.
//
// Returns errs.ErrFieldShapeMismatch when len(y) != x.Len().
func NewSpectrum(name string, x *DataSeries, y []float64, unit string, tstamp float64) (*Spectrum, error) {
	tseries := NewTimeSeries(SpectrumTimeName, "s", []float64{0}, tstamp)

	field, err := NewField(name, unit, y, []int{x.Len(), 1}, []Series{x, tseries})
	if err != nil {
		return nil, err
	}

	return &Spectrum{name: name, field: field}, nil
}

// NewSpectrumRef creates a Spectrum whose field is loaded from loader on
// first view access.
func NewSpectrumRef(name string, fieldID uint64, loader FieldLoader) *Spectrum {
	return &Spectrum{
		name: name,
		ref:  NewRef(fieldID, loader.LoadField),
	}
}

// Name returns the spectrum name.
func (s *Spectrum) Name() string {
	return s.name
}

// Field returns the underlying field, resolving the lazy reference on
// first call. A loaded field is validated the same way as in
// NewSpectrumFromField.
func (s *Spectrum) Field() (*Field, error) {
	if s.field != nil {
		return s.field, nil
	}
	if s.ref == nil {
		return nil, fmt.Errorf("%w: spectrum %q has no field", errs.ErrUnresolvedReference, s.name)
	}

	f, err := s.ref.Get()
	if err != nil {
		return nil, err
	}
	if err := validateSpectrumField(f); err != nil {
		return nil, err
	}
	s.field = f

	return f, nil
}

// XSeries returns the x-domain axis series.
func (s *Spectrum) XSeries() (Series, error) {
	f, err := s.Field()
	if err != nil {
		return nil, err
	}

	return f.Axis(0), nil
}

// X returns the x-domain samples. Callers must not modify the returned
// slice.
func (s *Spectrum) X() ([]float64, error) {
	xs, err := s.XSeries()
	if err != nil {
		return nil, err
	}

	return xs.Data(), nil
}

// TSeries returns the single-sample time axis.
func (s *Spectrum) TSeries() (*TimeSeries, error) {
	f, err := s.Field()
	if err != nil {
		return nil, err
	}

	// validateSpectrumField guarantees the assertion.
	return f.Axis(1).(*TimeSeries), nil
}

// Y returns the amplitude samples, aligned with X. Callers must not
// modify the returned slice.
func (s *Spectrum) Y() ([]float64, error) {
	f, err := s.Field()
	if err != nil {
		return nil, err
	}

	// With a single time sample the flat row-major data is exactly the
	// amplitude vector.
	return f.Data(), nil
}

// TStamp returns the absolute acquisition time: the time axis anchor plus
// its single offset.
func (s *Spectrum) TStamp() (float64, error) {
	ts, err := s.TSeries()
	if err != nil {
		return 0, err
	}

	return ts.TStamp() + ts.Data()[0], nil
}

func validateSpectrumField(f *Field) error {
	if len(f.Axes()) != 2 {
		return fmt.Errorf("%w: field %q has %d axes", errs.ErrSpectrumAxisCount, f.Name(), len(f.Axes()))
	}

	ts, ok := f.Axis(1).(*TimeSeries)
	if !ok {
		return fmt.Errorf("%w: field %q axis 1 is not a time series", errs.ErrSpectrumAxisCount, f.Name())
	}
	if ts.Len() != 1 {
		return fmt.Errorf("%w: field %q time axis has %d samples", errs.ErrSpectrumAxisCount, f.Name(), ts.Len())
	}

	return nil
}
