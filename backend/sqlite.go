package backend

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/ScottSoren/ixdat/compress"
	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/measurement"
	"github.com/ScottSoren/ixdat/series"
)

// SQLite is a Backend on a single SQLite database file, using the pure
// Go modernc.org/sqlite driver. Series and field samples are stored as
// snapshot blobs (EncodeSnapshot); structural metadata lives in plain
// columns and JSON.
//
// Loaded objects are cached by id for the lifetime of the backend, so
// repeated loads and shared time axes resolve to the same instances.
// All methods are safe for concurrent use.
type SQLite struct {
	mu          sync.Mutex
	db          *sql.DB
	closed      bool
	alloc       idAllocator
	compression compress.CompressionType
	series      map[uint64]series.Series
	fields      map[uint64]*series.Field
}

var _ Backend = (*SQLite)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS series (
	id      INTEGER PRIMARY KEY,
	kind    TEXT NOT NULL,
	name    TEXT NOT NULL,
	unit    TEXT NOT NULL,
	tstamp  REAL NOT NULL DEFAULT 0,
	tref_id INTEGER NOT NULL DEFAULT 0,
	payload BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS fields (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	unit     TEXT NOT NULL,
	shape    TEXT NOT NULL,
	axis_ids TEXT NOT NULL,
	payload  BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS measurements (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	technique  INTEGER NOT NULL,
	tstamp     REAL NOT NULL,
	series_ids TEXT NOT NULL,
	aliases    TEXT NOT NULL,
	metadata   TEXT NOT NULL
);
`

// NewSQLite opens, creating when absent, a backend database at path.
// Snapshot options select the compression applied to payloads written
// through this backend; stored blobs are self-describing and decode
// regardless of the options the writer used.
func NewSQLite(path string, opts ...SnapshotOption) (*SQLite, error) {
	cfg, err := newSnapshotConfig(opts...)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	b := &SQLite{
		db:          db,
		compression: cfg.compression,
		series:      make(map[uint64]series.Series),
		fields:      make(map[uint64]*series.Field),
	}
	if err := b.migrate(); err != nil {
		db.Close()

		return nil, fmt.Errorf("migrate database %q: %w", path, err)
	}
	if err := b.loadNextID(); err != nil {
		db.Close()

		return nil, fmt.Errorf("read id counter from %q: %w", path, err)
	}

	return b, nil
}

func (b *SQLite) migrate() error {
	_, err := b.db.Exec(sqliteSchema)

	return err
}

// loadNextID seeds the allocator past every id already in the database,
// keeping ids monotone across sessions.
func (b *SQLite) loadNextID() error {
	var maxSeries, maxFields uint64
	if err := b.db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM series`).Scan(&maxSeries); err != nil {
		return err
	}
	if err := b.db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM fields`).Scan(&maxFields); err != nil {
		return err
	}
	b.alloc.next = max(maxSeries, maxFields)

	return nil
}

// SaveSeries writes s to the database, assigning an id if it has none.
// A value series has its time series written first.
func (b *SQLite) SaveSeries(s series.Series) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errs.ErrBackendClosed
	}

	return b.saveSeriesLocked(s)
}

func (b *SQLite) saveSeriesLocked(s series.Series) (uint64, error) {
	if id := s.ID(); id != 0 {
		if _, ok := b.series[id]; ok {
			return id, nil
		}
	}

	var trefID uint64
	if vs, ok := s.(*series.ValueSeries); ok {
		var err error
		trefID, err = b.saveSeriesLocked(vs.TimeRef())
		if err != nil {
			return 0, err
		}
	}

	kind, err := seriesKind(s)
	if err != nil {
		return 0, err
	}

	var tstamp float64
	if ts, ok := s.(*series.TimeSeries); ok {
		tstamp = ts.TStamp()
	}

	payload, err := EncodeSnapshot(s.Data(), WithCompression(b.compression))
	if err != nil {
		return 0, err
	}

	id := b.alloc.alloc(s.ID())
	_, err = b.db.Exec(
		`INSERT OR REPLACE INTO series (id, kind, name, unit, tstamp, tref_id, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, kind, s.Name(), s.Unit(), tstamp, trefID, payload,
	)
	if err != nil {
		return 0, fmt.Errorf("write series %q: %w", s.Name(), err)
	}

	bindSeries(s, id)
	b.series[id] = s

	return id, nil
}

// LoadSeries restores the series with the given id, resolving shared
// time axes through the identity cache.
//
// Returns errs.ErrNotFound when no such series exists.
func (b *SQLite) LoadSeries(id uint64) (series.Series, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errs.ErrBackendClosed
	}

	return b.loadSeriesLocked(id)
}

func (b *SQLite) loadSeriesLocked(id uint64) (series.Series, error) {
	if s, ok := b.series[id]; ok {
		return s, nil
	}

	var (
		kind, name, unit string
		tstamp           float64
		trefID           uint64
		payload          []byte
	)
	err := b.db.QueryRow(
		`SELECT kind, name, unit, tstamp, tref_id, payload FROM series WHERE id = ?`, id,
	).Scan(&kind, &name, &unit, &tstamp, &trefID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: series id %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read series id %d: %w", id, err)
	}

	data, err := DecodeSnapshot(payload)
	if err != nil {
		return nil, fmt.Errorf("series id %d: %w", id, err)
	}

	var s series.Series
	switch kind {
	case "time":
		s = series.RestoreTimeSeries(id, name, unit, data, tstamp)
	case "value":
		tref, err := b.loadSeriesLocked(trefID)
		if err != nil {
			return nil, err
		}
		ts, ok := tref.(*series.TimeSeries)
		if !ok {
			return nil, fmt.Errorf("series id %d: time reference %d is %T, not a time series",
				id, trefID, tref)
		}
		vs, err := series.RestoreValueSeries(id, name, unit, data, ts)
		if err != nil {
			return nil, err
		}
		s = vs
	case "data":
		s = series.Restore(id, name, unit, data)
	default:
		return nil, fmt.Errorf("series id %d has unknown kind %q", id, kind)
	}

	b.series[id] = s

	return s, nil
}

// SaveField writes f and its axes to the database, assigning ids where
// missing.
func (b *SQLite) SaveField(f *series.Field) (uint64, error) {
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

	axisIDs := make([]uint64, len(f.Axes()))
	for i, axis := range f.Axes() {
		id, err := b.saveSeriesLocked(axis)
		if err != nil {
			return 0, err
		}
		axisIDs[i] = id
	}

	shapeJSON, err := json.Marshal(f.Shape())
	if err != nil {
		return 0, err
	}
	axesJSON, err := json.Marshal(axisIDs)
	if err != nil {
		return 0, err
	}
	payload, err := EncodeSnapshot(f.Data(), WithCompression(b.compression))
	if err != nil {
		return 0, err
	}

	id := b.alloc.alloc(f.ID())
	_, err = b.db.Exec(
		`INSERT OR REPLACE INTO fields (id, name, unit, shape, axis_ids, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, f.Name(), f.Unit(), string(shapeJSON), string(axesJSON), payload,
	)
	if err != nil {
		return 0, fmt.Errorf("write field %q: %w", f.Name(), err)
	}

	f.Bind(id)
	b.fields[id] = f

	return id, nil
}

// LoadField restores the field with the given id along with its axes.
//
// Returns errs.ErrNotFound when no such field exists.
func (b *SQLite) LoadField(id uint64) (*series.Field, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errs.ErrBackendClosed
	}

	if f, ok := b.fields[id]; ok {
		return f, nil
	}

	var (
		name, unit          string
		shapeJSON, axesJSON string
		payload             []byte
	)
	err := b.db.QueryRow(
		`SELECT name, unit, shape, axis_ids, payload FROM fields WHERE id = ?`, id,
	).Scan(&name, &unit, &shapeJSON, &axesJSON, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: field id %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read field id %d: %w", id, err)
	}

	var shape []int
	if err := json.Unmarshal([]byte(shapeJSON), &shape); err != nil {
		return nil, fmt.Errorf("field id %d shape: %w", id, err)
	}
	var axisIDs []uint64
	if err := json.Unmarshal([]byte(axesJSON), &axisIDs); err != nil {
		return nil, fmt.Errorf("field id %d axes: %w", id, err)
	}

	axes := make([]series.Series, len(axisIDs))
	for i, axisID := range axisIDs {
		axis, err := b.loadSeriesLocked(axisID)
		if err != nil {
			return nil, err
		}
		axes[i] = axis
	}

	data, err := DecodeSnapshot(payload)
	if err != nil {
		return nil, fmt.Errorf("field id %d: %w", id, err)
	}

	f, err := series.RestoreField(id, name, unit, data, shape, axes)
	if err != nil {
		return nil, err
	}
	b.fields[id] = f

	return f, nil
}

// SaveMeasurement writes m, its series list included, keyed by the
// measurement UUID. Saving again under the same UUID replaces the
// stored row.
func (b *SQLite) SaveMeasurement(m *measurement.Measurement) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", errs.ErrBackendClosed
	}

	ids := make([]uint64, len(m.SeriesList()))
	for i, s := range m.SeriesList() {
		id, err := b.saveSeriesLocked(s)
		if err != nil {
			return "", err
		}
		ids[i] = id
	}

	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	aliasesJSON, err := json.Marshal(m.Aliases())
	if err != nil {
		return "", err
	}
	metadataJSON, err := encodeMetadata(m.Metadata())
	if err != nil {
		return "", err
	}

	_, err = b.db.Exec(
		`INSERT OR REPLACE INTO measurements (id, name, technique, tstamp, series_ids, aliases, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID(), m.Name(), int(m.Technique()), m.TStamp(),
		string(idsJSON), string(aliasesJSON), string(metadataJSON),
	)
	if err != nil {
		return "", fmt.Errorf("write measurement %q: %w", m.Name(), err)
	}

	return m.ID(), nil
}

// LoadMeasurement restores the measurement with the given UUID, its
// series list resolved through the identity cache so shared time axes
// come back shared.
//
// Returns errs.ErrNotFound when no such measurement exists.
func (b *SQLite) LoadMeasurement(id string) (*measurement.Measurement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errs.ErrBackendClosed
	}

	var (
		name         string
		technique    int
		tstamp       float64
		idsJSON      string
		aliasesJSON  string
		metadataJSON string
	)
	err := b.db.QueryRow(
		`SELECT name, technique, tstamp, series_ids, aliases, metadata FROM measurements WHERE id = ?`, id,
	).Scan(&name, &technique, &tstamp, &idsJSON, &aliasesJSON, &metadataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: measurement %q", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read measurement %q: %w", id, err)
	}

	var seriesIDs []uint64
	if err := json.Unmarshal([]byte(idsJSON), &seriesIDs); err != nil {
		return nil, fmt.Errorf("measurement %q series ids: %w", id, err)
	}

	list := make([]series.Series, len(seriesIDs))
	for i, seriesID := range seriesIDs {
		s, err := b.loadSeriesLocked(seriesID)
		if err != nil {
			return nil, err
		}
		list[i] = s
	}

	aliases := measurement.NewAliases()
	if err := json.Unmarshal([]byte(aliasesJSON), &aliases); err != nil {
		return nil, fmt.Errorf("measurement %q aliases: %w", id, err)
	}
	meta, err := decodeMetadata([]byte(metadataJSON))
	if err != nil {
		return nil, fmt.Errorf("measurement %q metadata: %w", id, err)
	}

	return measurement.Restore(id, name, measurement.Technique(technique), tstamp, list, aliases, meta), nil
}

// Close closes the underlying database. Further operations return
// errs.ErrBackendClosed. Closing twice is harmless.
func (b *SQLite) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	return b.db.Close()
}
