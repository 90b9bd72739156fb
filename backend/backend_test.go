package backend

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSoren/ixdat/errs"
	"github.com/ScottSoren/ixdat/measurement"
	"github.com/ScottSoren/ixdat/series"
)

// newBackendFuncs returns a constructor per implementation so every
// Backend runs the same suite.
func newBackendFuncs() map[string]func(t *testing.T) Backend {
	return map[string]func(t *testing.T) Backend{
		"Memory": func(t *testing.T) Backend {
			t.Helper()
			b := NewMemory()
			t.Cleanup(func() { b.Close() })

			return b
		},
		"SQLite": func(t *testing.T) Backend {
			t.Helper()
			b, err := NewSQLite(filepath.Join(t.TempDir(), "backend.db"))
			require.NoError(t, err)
			t.Cleanup(func() { b.Close() })

			return b
		},
	}
}

func buildMeasurement(t *testing.T) *measurement.Measurement {
	t.Helper()

	tref := series.NewTimeSeries("Potential time [s]", "s", []float64{0, 0.5, 1}, 1650000000)
	potential, err := series.NewValueSeries("Voltage [V]", "V", []float64{0.1, 0.2, 0.3}, tref)
	require.NoError(t, err)
	current, err := series.NewValueSeries("Current [mA]", "mA", []float64{-1, 0, 1}, tref)
	require.NoError(t, err)

	aliases := measurement.NewAliases()
	aliases.Add("t", "Potential time [s]")
	aliases.Add("raw_potential", "Voltage [V]")
	aliases.Add("raw_current", "Current [mA]")

	meta := measurement.Metadata{
		"experiment_name":     "sample run",
		"file_format_version": 2,
		"start_time_unix":     1650000000.0,
		"MS_active":           true,
	}

	return measurement.New("sample run", measurement.TechniqueECMS, 1650000000,
		[]series.Series{tref, potential, current}, aliases, meta)
}

func TestBackend(t *testing.T) {
	for name, newBackend := range newBackendFuncs() {
		t.Run(name, func(t *testing.T) {
			t.Run("SaveSeriesAssignsID", func(t *testing.T) {
				b := newBackend(t)
				ts := series.NewTimeSeries("time/s", "s", []float64{0, 1, 2}, 1650000000)

				id, err := b.SaveSeries(ts)
				require.NoError(t, err)
				require.NotZero(t, id)
				require.Equal(t, id, ts.ID())

				again, err := b.SaveSeries(ts)
				require.NoError(t, err)
				require.Equal(t, id, again)
			})

			t.Run("LoadTimeSeries", func(t *testing.T) {
				b := newBackend(t)
				ts := series.NewTimeSeries("time/s", "s", []float64{0, 1, 2}, 1650000000)
				id, err := b.SaveSeries(ts)
				require.NoError(t, err)

				loaded, err := b.LoadSeries(id)
				require.NoError(t, err)

				lts, ok := loaded.(*series.TimeSeries)
				require.True(t, ok)
				require.Equal(t, id, lts.ID())
				require.Equal(t, "time/s", lts.Name())
				require.Equal(t, "s", lts.Unit())
				require.Equal(t, []float64{0, 1, 2}, lts.Data())
				require.Equal(t, 1650000000.0, lts.TStamp())
			})

			t.Run("LoadTwiceReturnsSameInstance", func(t *testing.T) {
				b := newBackend(t)
				ts := series.NewTimeSeries("time/s", "s", []float64{0, 1}, 0)
				id, err := b.SaveSeries(ts)
				require.NoError(t, err)

				first, err := b.LoadSeries(id)
				require.NoError(t, err)
				second, err := b.LoadSeries(id)
				require.NoError(t, err)
				require.Same(t, first, second)
			})

			t.Run("SaveValueSeriesSavesTimeAxis", func(t *testing.T) {
				b := newBackend(t)
				tref := series.NewTimeSeries("time/s", "s", []float64{0, 1}, 1650000000)
				vs, err := series.NewValueSeries("Ewe/V", "V", []float64{0.4, 0.5}, tref)
				require.NoError(t, err)

				id, err := b.SaveSeries(vs)
				require.NoError(t, err)
				require.NotZero(t, tref.ID())
				require.NotEqual(t, id, tref.ID())

				loaded, err := b.LoadSeries(tref.ID())
				require.NoError(t, err)
				require.Equal(t, "time/s", loaded.Name())
			})

			t.Run("SharedTimeAxisStaysShared", func(t *testing.T) {
				b := newBackend(t)
				tref := series.NewTimeSeries("time/s", "s", []float64{0, 1}, 1650000000)
				potential, err := series.NewValueSeries("Ewe/V", "V", []float64{0.4, 0.5}, tref)
				require.NoError(t, err)
				current, err := series.NewValueSeries("I/mA", "mA", []float64{-1, 1}, tref)
				require.NoError(t, err)

				pid, err := b.SaveSeries(potential)
				require.NoError(t, err)
				cid, err := b.SaveSeries(current)
				require.NoError(t, err)

				lp, err := b.LoadSeries(pid)
				require.NoError(t, err)
				lc, err := b.LoadSeries(cid)
				require.NoError(t, err)

				require.Same(t,
					lp.(*series.ValueSeries).TimeRef(),
					lc.(*series.ValueSeries).TimeRef())
			})

			t.Run("SaveLoadField", func(t *testing.T) {
				b := newBackend(t)
				x := series.New("Mass  [AMU]", "m/z", []float64{10, 20, 30})
				tax := series.NewTimeSeries(series.SpectrumTimeName, "s", []float64{0}, 1650000000)
				f, err := series.NewField("mass scan", "A",
					[]float64{1e-12, 2e-12, 3e-12}, []int{3, 1}, []series.Series{x, tax})
				require.NoError(t, err)

				id, err := b.SaveField(f)
				require.NoError(t, err)
				require.NotZero(t, id)
				require.Equal(t, id, f.ID())

				loaded, err := b.LoadField(id)
				require.NoError(t, err)
				require.Equal(t, "mass scan", loaded.Name())
				require.Equal(t, "A", loaded.Unit())
				require.Equal(t, []int{3, 1}, loaded.Shape())
				require.Equal(t, []float64{1e-12, 2e-12, 3e-12}, loaded.Data())

				axis, err := b.LoadSeries(x.ID())
				require.NoError(t, err)
				require.Same(t, axis, loaded.Axis(0))
			})

			t.Run("SaveLoadMeasurement", func(t *testing.T) {
				b := newBackend(t)
				m := buildMeasurement(t)

				id, err := b.SaveMeasurement(m)
				require.NoError(t, err)
				require.Equal(t, m.ID(), id)

				loaded, err := b.LoadMeasurement(id)
				require.NoError(t, err)
				require.Equal(t, "sample run", loaded.Name())
				require.Equal(t, measurement.TechniqueECMS, loaded.Technique())
				require.Equal(t, 1650000000.0, loaded.TStamp())
				require.Len(t, loaded.SeriesList(), 3)

				tcol, potential, err := loaded.Grab("raw_potential")
				require.NoError(t, err)
				require.Equal(t, []float64{0, 0.5, 1}, tcol)
				require.Equal(t, []float64{0.1, 0.2, 0.3}, potential)
			})

			t.Run("LazySpectrumRef", func(t *testing.T) {
				b := newBackend(t)
				x := series.New("Mass  [AMU]", "m/z", []float64{18, 28, 44})
				original, err := series.NewSpectrum("survey", x, []float64{1e-11, 2e-11, 3e-11}, "A", 1650000000)
				require.NoError(t, err)

				f, err := original.Field()
				require.NoError(t, err)
				fieldID, err := b.SaveField(f)
				require.NoError(t, err)

				lazy := series.NewSpectrumRef("survey", fieldID, b)

				got, err := lazy.X()
				require.NoError(t, err)
				require.Equal(t, []float64{18, 28, 44}, got)

				y, err := lazy.Y()
				require.NoError(t, err)
				require.Equal(t, []float64{1e-11, 2e-11, 3e-11}, y)

				tstamp, err := lazy.TStamp()
				require.NoError(t, err)
				require.Equal(t, 1650000000.0, tstamp)
			})

			t.Run("NotFound", func(t *testing.T) {
				b := newBackend(t)

				_, err := b.LoadSeries(424242)
				require.ErrorIs(t, err, errs.ErrNotFound)

				_, err = b.LoadField(424242)
				require.ErrorIs(t, err, errs.ErrNotFound)

				_, err = b.LoadMeasurement("no-such-uuid")
				require.ErrorIs(t, err, errs.ErrNotFound)
			})

			t.Run("ClosedBackend", func(t *testing.T) {
				b := newBackend(t)
				require.NoError(t, b.Close())
				require.NoError(t, b.Close())

				x := series.New("x", "", []float64{1})
				tax := series.NewTimeSeries(series.SpectrumTimeName, "s", []float64{0}, 0)
				f, err := series.NewField("f", "", []float64{1}, []int{1, 1}, []series.Series{x, tax})
				require.NoError(t, err)

				_, err = b.SaveSeries(x)
				require.ErrorIs(t, err, errs.ErrBackendClosed)

				_, err = b.LoadSeries(1)
				require.ErrorIs(t, err, errs.ErrBackendClosed)

				_, err = b.SaveField(f)
				require.ErrorIs(t, err, errs.ErrBackendClosed)

				_, err = b.LoadField(1)
				require.ErrorIs(t, err, errs.ErrBackendClosed)

				_, err = b.SaveMeasurement(buildMeasurement(t))
				require.ErrorIs(t, err, errs.ErrBackendClosed)

				_, err = b.LoadMeasurement("any")
				require.ErrorIs(t, err, errs.ErrBackendClosed)
			})
		})
	}
}
