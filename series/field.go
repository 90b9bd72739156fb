package series

import (
	"fmt"

	"github.com/ScottSoren/ixdat/errs"
)

// Field is data spanning one or more axes, each axis itself a series. A
// two-axis field is a matrix, such as spectrum amplitude over (mass, time).
//
// Data are stored flat in row-major order with an explicit shape. The
// shape invariant ties the field to its axes: shape[i] == axes[i].Len()
// for every axis, and the flat length equals the product of the shape.
type Field struct {
	id    uint64
	name  string
	unit  string
	data  []float64
	shape []int
	axes  []Series
}

// NewField creates a Field and validates the shape invariant.
//
// Ownership of data, shape and axes transfers to the field.
//
// Returns errs.ErrFieldShapeMismatch when the shape disagrees with the
// axes or with the flat data length.
func NewField(name, unit string, data []float64, shape []int, axes []Series) (*Field, error) {
	if len(shape) != len(axes) {
		return nil, fmt.Errorf("%w: field %q has %d shape entries for %d axes",
			errs.ErrFieldShapeMismatch, name, len(shape), len(axes))
	}

	total := 1
	for i, n := range shape {
		if n != axes[i].Len() {
			return nil, fmt.Errorf("%w: field %q shape[%d]=%d but axis %q has %d samples",
				errs.ErrFieldShapeMismatch, name, i, n, axes[i].Name(), axes[i].Len())
		}
		total *= n
	}
	if total != len(data) {
		return nil, fmt.Errorf("%w: field %q has %d samples for shape %v",
			errs.ErrFieldShapeMismatch, name, len(data), shape)
	}

	return &Field{
		name:  name,
		unit:  unit,
		data:  data,
		shape: shape,
		axes:  axes,
	}, nil
}

// RestoreField recreates a previously persisted Field under its stored
// identity. Intended for backend load paths.
func RestoreField(id uint64, name, unit string, data []float64, shape []int, axes []Series) (*Field, error) {
	f, err := NewField(name, unit, data, shape, axes)
	if err != nil {
		return nil, err
	}
	f.id = id

	return f, nil
}

// ID returns the persistent identity, or 0 when the field has not been
// saved to a backend.
func (f *Field) ID() uint64 {
	return f.id
}

// Bind records the persistent identity assigned by a backend. Assign-once,
// like DataSeries.Bind.
func (f *Field) Bind(id uint64) {
	if f.id == 0 {
		f.id = id
	}
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// Unit returns the unit name of the field data, possibly empty.
func (f *Field) Unit() string {
	return f.unit
}

// Data returns the flat row-major samples. Callers must not modify the
// returned slice.
func (f *Field) Data() []float64 {
	return f.data
}

// Shape returns the per-axis sample counts. Callers must not modify the
// returned slice.
func (f *Field) Shape() []int {
	return f.shape
}

// Axes returns the axis series. Callers must not modify the returned
// slice.
func (f *Field) Axes() []Series {
	return f.axes
}

// Axis returns the axis at index i.
func (f *Field) Axis(i int) Series {
	return f.axes[i]
}

// At returns the sample at the given per-axis indices, interpreting the
// flat data in row-major order. The number of indices must equal the
// number of axes, and each must be in range; At panics otherwise, like a
// slice index out of range.
func (f *Field) At(indices ...int) float64 {
	if len(indices) != len(f.shape) {
		panic(fmt.Sprintf("field %q: %d indices for %d axes", f.name, len(indices), len(f.shape)))
	}

	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= f.shape[i] {
			panic(fmt.Sprintf("field %q: index %d out of range for axis %d (size %d)",
				f.name, idx, i, f.shape[i]))
		}
		flat = flat*f.shape[i] + idx
	}

	return f.data[flat]
}
