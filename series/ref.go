package series

import (
	"fmt"

	"github.com/ScottSoren/ixdat/errs"
)

// SeriesLoader loads a persisted series by id. Backends implement it.
type SeriesLoader interface {
	LoadSeries(id uint64) (Series, error)
}

// FieldLoader loads a persisted field by id. Backends implement it.
type FieldLoader interface {
	LoadField(id uint64) (*Field, error)
}

// Ref is an explicit two-state lazy reference to a persisted object:
// unresolved, it holds only an id and a load function; resolved, it holds
// the loaded value. Get transitions from unresolved to resolved at most
// once and caches the result knowing the referenced object is immutable.
//
// A failed load leaves the reference unresolved, so a later Get retries.
// Refs are not safe for concurrent first access; ingestion and resolution
// are single-threaded.
type Ref[T any] struct {
	id       uint64
	load     func(id uint64) (T, error)
	resolved bool
	value    T
}

// NewRef creates an unresolved reference to the object with the given id.
func NewRef[T any](id uint64, load func(id uint64) (T, error)) *Ref[T] {
	return &Ref[T]{id: id, load: load}
}

// ID returns the referenced object's persistent identity.
func (r *Ref[T]) ID() uint64 {
	return r.id
}

// Resolved reports whether the reference has been materialized.
func (r *Ref[T]) Resolved() bool {
	return r.resolved
}

// Get returns the referenced object, loading it on first call.
// Not safe for concurrent first access; resolve before sharing across
// goroutines.
//
// Returns errs.ErrUnresolvedReference when the reference has no load
// function, or the load function's error when resolution fails.
func (r *Ref[T]) Get() (T, error) {
	if r.resolved {
		return r.value, nil
	}

	var zero T
	if r.load == nil {
		return zero, fmt.Errorf("%w: id %d", errs.ErrUnresolvedReference, r.id)
	}

	value, err := r.load(r.id)
	if err != nil {
		return zero, fmt.Errorf("resolving reference id %d: %w", r.id, err)
	}

	r.value = value
	r.resolved = true

	return value, nil
}
