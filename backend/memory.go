package backend

import (
	"fmt"
	"sync"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/measurement"
	"github.com/ScottSoren/ixdat/series"
)

// Memory is a map-backed Backend. Saved objects stay live, so loads
// return the very instances that were saved. Useful for tests, demos
// and as the working store of an interactive session.
//
// All methods are safe for concurrent use.
type Memory struct {
	mu           sync.Mutex
	closed       bool
	alloc        idAllocator
	series       map[uint64]series.Series
	fields       map[uint64]*series.Field
	measurements map[string]*measurement.Measurement
}

var _ Backend = (*Memory)(nil)

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		series:       make(map[uint64]series.Series),
		fields:       make(map[uint64]*series.Field),
		measurements: make(map[string]*measurement.Measurement),
	}
}

// SaveSeries stores s, assigning an id if it has none. A value series
// has its time series stored first.
func (b *Memory) SaveSeries(s series.Series) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errs.ErrBackendClosed
	}

	return b.saveSeriesLocked(s)
}

func (b *Memory) saveSeriesLocked(s series.Series) (uint64, error) {
	if id := s.ID(); id != 0 {
		if _, ok := b.series[id]; ok {
			return id, nil
		}
	}

	if vs, ok := s.(*series.ValueSeries); ok {
		if _, err := b.saveSeriesLocked(vs.TimeRef()); err != nil {
			return 0, err
		}
	}

	id := b.alloc.alloc(s.ID())
	bindSeries(s, id)
	b.series[id] = s

	return id, nil
}

// LoadSeries returns the stored series with the given id.
//
// Returns errs.ErrNotFound when no such series exists.
func (b *Memory) LoadSeries(id uint64) (series.Series, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errs.ErrBackendClosed
	}

	s, ok := b.series[id]
	if !ok {
		return nil, fmt.Errorf("%w: series id %d", errs.ErrNotFound, id)
	}

	return s, nil
}

// SaveField stores f and its axes, assigning ids where missing.
func (b *Memory) SaveField(f *series.Field) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errs.ErrBackendClosed
	}

	if id := f.ID(); id != 0 {
		if _, ok := b.fields[id]; ok {
			return id, nil
		}
	}

	for _, axis := range f.Axes() {
		if _, err := b.saveSeriesLocked(axis); err != nil {
			return 0, err
		}
	}

	id := b.alloc.alloc(f.ID())
	f.Bind(id)
	b.fields[id] = f

	return id, nil
}

// LoadField returns the stored field with the given id.
//
// Returns errs.ErrNotFound when no such field exists.
func (b *Memory) LoadField(id uint64) (*series.Field, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errs.ErrBackendClosed
	}

	f, ok := b.fields[id]
	if !ok {
		return nil, fmt.Errorf("%w: field id %d", errs.ErrNotFound, id)
	}

	return f, nil
}

// SaveMeasurement stores m and every series it carries, keyed by the
// measurement UUID.
func (b *Memory) SaveMeasurement(m *measurement.Measurement) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", errs.ErrBackendClosed
	}

	for _, s := range m.SeriesList() {
		if _, err := b.saveSeriesLocked(s); err != nil {
			return "", err
		}
	}
	b.measurements[m.ID()] = m

	return m.ID(), nil
}

// LoadMeasurement returns the stored measurement with the given UUID.
//
// Returns errs.ErrNotFound when no such measurement exists.
func (b *Memory) LoadMeasurement(id string) (*measurement.Measurement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errs.ErrBackendClosed
	}

	m, ok := b.measurements[id]
	if !ok {
		return nil, fmt.Errorf("%w: measurement %q", errs.ErrNotFound, id)
	}

	return m, nil
}

// Close marks the backend closed. Further operations return
// errs.ErrBackendClosed. Closing twice is harmless.
func (b *Memory) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	return nil
}
