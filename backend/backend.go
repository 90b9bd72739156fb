package backend

import (
	"fmt"

	"github.com/ScottSoren/ixdat/measurement"
	"github.com/ScottSoren/ixdat/series"
)

// Backend persists series, fields and measurements and restores them by
// identity.
//
// Save methods are idempotent: an object already carrying an id keeps
// it, and re-saving is a cheap no-op. Fresh objects receive
// monotonically increasing uint64 ids through their Bind hook. Ids are
// scoped to the assigning backend; measurements keep their
// construction-time UUID as the persistent key.
//
// Load methods resolve ids through a per-backend identity cache, so a
// time series shared by several value series comes back as a single
// instance no matter how many rows reference it. Every Backend
// satisfies series.SeriesLoader and series.FieldLoader and can serve as
// the resolver behind lazy references such as spectra created with
// series.NewSpectrumRef.
type Backend interface {
	series.SeriesLoader
	series.FieldLoader

	// SaveSeries persists a series of any concrete kind and returns its id.
	// Saving a value series persists its time series first.
	SaveSeries(s series.Series) (uint64, error)

	// SaveField persists a field and its axes and returns the field id.
	SaveField(f *series.Field) (uint64, error)

	// SaveMeasurement persists a measurement and its series list and
	// returns the measurement UUID.
	SaveMeasurement(m *measurement.Measurement) (string, error)

	// LoadMeasurement restores a measurement by UUID.
	//
	// Returns errs.ErrNotFound when no such measurement exists.
	LoadMeasurement(id string) (*measurement.Measurement, error)

	// Close releases the backend. Operations on a closed backend return
	// errs.ErrBackendClosed.
	Close() error
}

// idAllocator hands out monotonically increasing object ids. An id
// assigned elsewhere is honored as-is, and the counter skips past it so
// later allocations never collide.
type idAllocator struct {
	next uint64
}

func (a *idAllocator) alloc(existing uint64) uint64 {
	if existing != 0 {
		if existing > a.next {
			a.next = existing
		}

		return existing
	}

	a.next++

	return a.next
}

// bindSeries records an assigned id on the concrete series types that
// support binding.
func bindSeries(s series.Series, id uint64) {
	switch v := s.(type) {
	case *series.DataSeries:
		v.Bind(id)
	case *series.TimeSeries:
		v.Bind(id)
	case *series.ValueSeries:
		v.Bind(id)
	}
}

// seriesKind names the concrete series type for storage dispatch.
func seriesKind(s series.Series) (string, error) {
	switch s.(type) {
	case *series.TimeSeries:
		return "time", nil
	case *series.ValueSeries:
		return "value", nil
	case *series.DataSeries:
		return "data", nil
	default:
		return "", fmt.Errorf("unsupported series type %T", s)
	}
}
