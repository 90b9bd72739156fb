// Package measurement defines the payload a reader produces: a flat list
// of series plus the aliases, metadata and timing context needed to work
// with them.
package measurement

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/series"
)

// Measurement is the uniform in-memory representation of one ingested
// data set.
//
// The series list is flat and order-preserving; duplicate concrete names
// are legal (an embedded sub-dataset split into runs repeats its column
// names per run) and list order disambiguates them on lookup. The alias
// table maps logical names to concrete names; the metadata map carries the
// parsed preamble; tstamp anchors the measurement in absolute time.
//
// Every Measurement is assigned a UUID at construction, used by backends
// as its persistent key.
type Measurement struct {
	id        string
	name      string
	technique Technique
	tstamp    float64
	list      []series.Series
	aliases   Aliases
	metadata  Metadata
}

// New creates a Measurement with a fresh UUID.
//
// Ownership of list, aliases and metadata transfers to the measurement.
// Nil aliases or metadata are replaced with empty tables.
func New(name string, technique Technique, tstamp float64, list []series.Series, aliases Aliases, metadata Metadata) *Measurement {
	return restore(uuid.NewString(), name, technique, tstamp, list, aliases, metadata)
}

// Restore recreates a previously persisted Measurement under its stored
// UUID. Intended for backend load paths.
func Restore(id, name string, technique Technique, tstamp float64, list []series.Series, aliases Aliases, metadata Metadata) *Measurement {
	return restore(id, name, technique, tstamp, list, aliases, metadata)
}

func restore(id, name string, technique Technique, tstamp float64, list []series.Series, aliases Aliases, metadata Metadata) *Measurement {
	if aliases == nil {
		aliases = NewAliases()
	}
	if metadata == nil {
		metadata = make(Metadata)
	}

	return &Measurement{
		id:        id,
		name:      name,
		technique: technique,
		tstamp:    tstamp,
		list:      list,
		aliases:   aliases,
		metadata:  metadata,
	}
}

// ID returns the measurement UUID.
func (m *Measurement) ID() string {
	return m.id
}

// Name returns the measurement name.
func (m *Measurement) Name() string {
	return m.name
}

// Technique returns the technique selector the measurement was read with.
func (m *Measurement) Technique() Technique {
	return m.technique
}

// TStamp returns the absolute epoch anchor in seconds.
func (m *Measurement) TStamp() float64 {
	return m.tstamp
}

// SeriesList returns the flat series list in file order. Callers must not
// modify the returned slice.
func (m *Measurement) SeriesList() []series.Series {
	return m.list
}

// Aliases returns the alias table.
func (m *Measurement) Aliases() Aliases {
	return m.aliases
}

// Metadata returns the parsed preamble metadata.
func (m *Measurement) Metadata() Metadata {
	return m.metadata
}

// Series resolves a name to a series.
//
// A direct concrete-name match wins first, taking the earliest series in
// list order. Otherwise the name is treated as a logical alias and its
// concrete names are tried front to back, each resolved recursively, so
// the first alias that reaches a series wins.
func (m *Measurement) Series(name string) (series.Series, bool) {
	return m.lookup(name, make(map[string]bool))
}

func (m *Measurement) lookup(name string, visited map[string]bool) (series.Series, bool) {
	if visited[name] {
		return nil, false
	}
	visited[name] = true

	for _, s := range m.list {
		if s.Name() == name {
			return s, true
		}
	}

	for _, concrete := range m.aliases[name] {
		if s, ok := m.lookup(concrete, visited); ok {
			return s, true
		}
	}

	return nil, false
}

// Grab resolves a name to a value series and returns its aligned
// (time, value) vectors. Callers must not modify the returned slices.
//
// Returns errs.ErrNotFound when the name resolves to nothing and
// errs.ErrMissingTimeReference when it resolves to a series that carries
// no time axis.
func (m *Measurement) Grab(name string) ([]float64, []float64, error) {
	s, ok := m.Series(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: series %q in measurement %q", errs.ErrNotFound, name, m.name)
	}

	vs, ok := s.(*series.ValueSeries)
	if !ok {
		return nil, nil, fmt.Errorf("%w: series %q is not a value series", errs.ErrMissingTimeReference, name)
	}

	return vs.Time(), vs.Data(), nil
}
