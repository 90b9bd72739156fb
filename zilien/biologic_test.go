package zilien

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContiguousRuns(t *testing.T) {
	t.Run("RecurringKeyStartsNewRun", func(t *testing.T) {
		runs := contiguousRuns([]float64{5001, 5001, 5001, 7002, 7002, 5001})
		require.Equal(t, []rowRange{
			{begin: 0, end: 3},
			{begin: 3, end: 5},
			{begin: 5, end: 6},
		}, runs)
	})

	t.Run("SingleRun", func(t *testing.T) {
		runs := contiguousRuns([]float64{1001, 1001})
		require.Equal(t, []rowRange{{begin: 0, end: 2}}, runs)
	})

	t.Run("Empty", func(t *testing.T) {
		require.Empty(t, contiguousRuns(nil))
	})

	t.Run("NaNKeysSplitPerRow", func(t *testing.T) {
		runs := contiguousRuns([]float64{math.NaN(), math.NaN()})
		require.Equal(t, []rowRange{
			{begin: 0, end: 1},
			{begin: 1, end: 2},
		}, runs)
	})
}
