package series

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ScottSoren/ixdat/errs"
)

type stubFieldLoader struct {
	field *Field
	err   error
	calls int
}

func (l *stubFieldLoader) LoadField(id uint64) (*Field, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}

	return l.field, nil
}

func createSpectrumField(t *testing.T) *Field {
	t.Helper()

	x := New("Mass [AMU]", "m/z", []float64{2, 18, 28, 32, 44})
	ts := NewTimeSeries(SpectrumTimeName, "s", []float64{120}, 1.6e9)

	f, err := NewField("mass scan", "A",
		[]float64{1e-12, 4e-10, 2e-9, 5e-10, 8e-11},
		[]int{5, 1}, []Series{x, ts})
	require.NoError(t, err)

	return f
}

func TestNewSpectrumFromField(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		sp, err := NewSpectrumFromField("scan 1", createSpectrumField(t))
		require.NoError(t, err)
		require.Equal(t, "scan 1", sp.Name())

		x, err := sp.X()
		require.NoError(t, err)
		require.Equal(t, []float64{2, 18, 28, 32, 44}, x)

		y, err := sp.Y()
		require.NoError(t, err)
		require.Equal(t, []float64{1e-12, 4e-10, 2e-9, 5e-10, 8e-11}, y)

		tstamp, err := sp.TStamp()
		require.NoError(t, err)
		require.Equal(t, 1.6e9+120, tstamp)
	})

	t.Run("WrongAxisCount", func(t *testing.T) {
		x := New("x", "", []float64{1, 2})
		f, err := NewField("f", "", []float64{1, 2}, []int{2}, []Series{x})
		require.NoError(t, err)

		_, err = NewSpectrumFromField("s", f)
		require.ErrorIs(t, err, errs.ErrSpectrumAxisCount)
	})

	t.Run("SecondAxisNotTime", func(t *testing.T) {
		x := New("x", "", []float64{1, 2})
		w := New("w", "", []float64{9})
		f, err := NewField("f", "", []float64{1, 2}, []int{2, 1}, []Series{x, w})
		require.NoError(t, err)

		_, err = NewSpectrumFromField("s", f)
		require.ErrorIs(t, err, errs.ErrSpectrumAxisCount)
	})

	t.Run("MultiSampleTimeAxis", func(t *testing.T) {
		x := New("x", "", []float64{1, 2})
		ts := NewTimeSeries("t", "s", []float64{0, 1}, 0)
		f, err := NewField("f", "", []float64{1, 2, 3, 4}, []int{2, 2}, []Series{x, ts})
		require.NoError(t, err)

		_, err = NewSpectrumFromField("s", f)
		require.ErrorIs(t, err, errs.ErrSpectrumAxisCount)
	})
}

func TestNewSpectrum(t *testing.T) {
	t.Run("RawConstruction", func(t *testing.T) {
		x := New("Mass [AMU]", "m/z", []float64{18, 44})
		sp, err := NewSpectrum("scan", x, []float64{3e-10, 9e-11}, "A", 1.7e9)
		require.NoError(t, err)

		tstamp, err := sp.TStamp()
		require.NoError(t, err)
		require.Equal(t, 1.7e9, tstamp)

		ts, err := sp.TSeries()
		require.NoError(t, err)
		require.Equal(t, SpectrumTimeName, ts.Name())
		require.Equal(t, []float64{0}, ts.Data())
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		x := New("Mass [AMU]", "m/z", []float64{18, 44})
		_, err := NewSpectrum("scan", x, []float64{3e-10}, "A", 0)
		require.ErrorIs(t, err, errs.ErrFieldShapeMismatch)
	})

	// Both construction paths must agree on every view.
	t.Run("EquivalentToFieldPath", func(t *testing.T) {
		x := New("Mass [AMU]", "m/z", []float64{2, 18, 28})
		y := []float64{1e-12, 4e-10, 2e-9}
		const tstamp = 1.65e9

		raw, err := NewSpectrum("scan", x, y, "A", tstamp)
		require.NoError(t, err)

		ts := NewTimeSeries(SpectrumTimeName, "s", []float64{0}, tstamp)
		field, err := NewField("scan", "A", y, []int{3, 1}, []Series{x, ts})
		require.NoError(t, err)
		explicit, err := NewSpectrumFromField("scan", field)
		require.NoError(t, err)

		rawX, err := raw.X()
		require.NoError(t, err)
		explicitX, err := explicit.X()
		require.NoError(t, err)
		require.Equal(t, explicitX, rawX)

		rawY, err := raw.Y()
		require.NoError(t, err)
		explicitY, err := explicit.Y()
		require.NoError(t, err)
		require.Equal(t, explicitY, rawY)

		rawT, err := raw.TStamp()
		require.NoError(t, err)
		explicitT, err := explicit.TStamp()
		require.NoError(t, err)
		require.Equal(t, explicitT, rawT)
	})
}

func TestNewSpectrumRef(t *testing.T) {
	t.Run("ResolvesOnce", func(t *testing.T) {
		loader := &stubFieldLoader{field: createSpectrumField(t)}
		sp := NewSpectrumRef("lazy", 17, loader)

		require.Zero(t, loader.calls)

		x, err := sp.X()
		require.NoError(t, err)
		require.Len(t, x, 5)
		require.Equal(t, 1, loader.calls)

		// Further views reuse the resolved field.
		_, err = sp.Y()
		require.NoError(t, err)
		_, err = sp.TStamp()
		require.NoError(t, err)
		require.Equal(t, 1, loader.calls)
	})

	t.Run("LoadFailure", func(t *testing.T) {
		wantErr := errors.New("backend offline")
		loader := &stubFieldLoader{err: wantErr}
		sp := NewSpectrumRef("lazy", 17, loader)

		_, err := sp.X()
		require.ErrorIs(t, err, wantErr)
	})

	t.Run("LoadedFieldValidated", func(t *testing.T) {
		x := New("x", "", []float64{1, 2})
		bad, err := NewField("f", "", []float64{1, 2}, []int{2}, []Series{x})
		require.NoError(t, err)

		sp := NewSpectrumRef("lazy", 3, &stubFieldLoader{field: bad})
		_, err = sp.Y()
		require.ErrorIs(t, err, errs.ErrSpectrumAxisCount)
	})
}
