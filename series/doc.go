// Package series implements the data model for measurement data: named,
// unit-annotated numeric vectors and the structures built from them.
//
// # Core Types
//
//   - DataSeries: the base type, an immutable (name, unit, data) vector
//   - TimeSeries: a DataSeries anchored at an absolute epoch timestamp,
//     whose data are elapsed-time offsets in seconds
//   - ValueSeries: a DataSeries carrying a non-owning reference to the
//     TimeSeries its samples are aligned with
//   - Field: data spanning one or more axes, each axis itself a series
//   - Spectrum: a two-axis Field viewed as (x, y, tstamp)
//
// All series kinds satisfy the Series interface, the read-only view used
// wherever any concrete kind is acceptable (measurement series lists,
// field axes).
//
// # Immutability and Sharing
//
// Constructors take ownership of the slices passed to them; neither the
// constructor nor any accessor copies data, and callers must not modify a
// slice after handing it over. Series never change after construction.
// Derived data, such as absolute timestamps, are computed on demand rather
// than stored.
//
// Many ValueSeries typically share a single TimeSeries. The reference is
// held by pointer, so sharing survives in memory; persistence backends are
// expected to preserve it across save/load round trips.
//
// # Lazy References
//
// A persisted object can be handled without loading it: Ref holds an id
// and a load function, and Get resolves it at most once, caching the
// result. Spectrum uses this internally so that spectra listed in a
// measurement do not pull their fields from the backend until a view is
// first accessed.
package series
