package series

// Series is the read-only view shared by every concrete series kind.
// Measurement series lists and field axes hold this interface so that
// DataSeries, TimeSeries and ValueSeries can appear interchangeably.
type Series interface {
	// ID returns the persistent identity, or 0 when not yet persisted.
	ID() uint64
	// Name returns the series name.
	Name() string
	// Unit returns the unit name, possibly empty.
	Unit() string
	// Data returns the underlying samples. Callers must not modify the
	// returned slice.
	Data() []float64
	// Len returns the number of samples.
	Len() int
}

var (
	_ Series = (*DataSeries)(nil)
	_ Series = (*TimeSeries)(nil)
	_ Series = (*ValueSeries)(nil)
)

// DataSeries is a named, unit-annotated, immutable numeric vector. It is
// the base of the series family; TimeSeries and ValueSeries embed it.
//
// A DataSeries carries no setters. Its persistent identity starts at 0 and
// is bound exactly once when a backend saves it.
type DataSeries struct {
	id   uint64
	name string
	unit string
	data []float64
}

// New creates a DataSeries.
//
// Ownership of data transfers to the series; the caller must not modify
// the slice afterwards. A nil data slice yields an empty series.
func New(name, unit string, data []float64) *DataSeries {
	return &DataSeries{
		name: name,
		unit: unit,
		data: data,
	}
}

// Restore recreates a previously persisted DataSeries under its stored
// identity. Intended for backend load paths.
func Restore(id uint64, name, unit string, data []float64) *DataSeries {
	return &DataSeries{
		id:   id,
		name: name,
		unit: unit,
		data: data,
	}
}

// ID returns the persistent identity, or 0 when the series has not been
// saved to a backend.
func (s *DataSeries) ID() uint64 {
	return s.id
}

// Bind records the persistent identity assigned by a backend. Binding is
// assign-once: calls after the first are no-ops. User code normally never
// calls this.
func (s *DataSeries) Bind(id uint64) {
	if s.id == 0 {
		s.id = id
	}
}

// Name returns the series name.
func (s *DataSeries) Name() string {
	return s.name
}

// Unit returns the unit name, possibly empty.
func (s *DataSeries) Unit() string {
	return s.unit
}

// Data returns the underlying samples. Callers must not modify the
// returned slice.
func (s *DataSeries) Data() []float64 {
	return s.data
}

// Len returns the number of samples.
func (s *DataSeries) Len() int {
	return len(s.data)
}
