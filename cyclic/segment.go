// Package cyclic segments cyclic-technique data into sweep cycles.
//
// A cyclic technique drives its control signal (typically potential) back
// and forth across a window. Segment numbers each pass through a chosen
// start potential, producing a cycle-index series aligned with the input
// that downstream selection can index by. Renumber covers the degenerate
// case where the instrument already wrote a coarse cycle counter.
package cyclic

import (
	"github.com/ScottSoren/ixdat/series"
)

// DefaultDebouncePoints is the debounce window used when Segment is called
// with a non-positive debouncePoints.
const DefaultDebouncePoints = 5

// Segment numbers the sweep cycles of a potential series.
//
// The counter starts at 0 and increments each time the potential crosses
// startPotential in the sweep direction: anodic (rising) when anodic is
// true, cathodic (falling) otherwise. To register a crossing the scan
// first finds a sample behind the start potential, advances
// debouncePoints samples, and takes the next sample ahead of the start
// potential as the crossing. The increment is stamped from the crossing
// sample onward and scanning resumes debouncePoints past it, so noise
// within the debounce window of a crossing cannot double-count a cycle.
//
// Parameters:
//   - potential: the control-signal series; its time reference is shared
//     by the result
//   - startPotential: the threshold the counter iterates at
//   - anodic: the sweep direction that triggers an iteration
//   - debouncePoints: consecutive samples required on each side of the
//     threshold; non-positive selects DefaultDebouncePoints
//
// Returns an integer-valued series named "cycle", aligned with the input,
// non-decreasing and starting at 0.
func Segment(potential *series.ValueSeries, startPotential float64, anodic bool, debouncePoints int) (*series.ValueSeries, error) {
	if debouncePoints <= 0 {
		debouncePoints = DefaultDebouncePoints
	}

	cycles := segmentVector(potential.Data(), startPotential, anodic, debouncePoints)

	return series.NewValueSeries("cycle", "", cycles, potential.TimeRef())
}

// segmentVector runs the two-state crossing scan over raw samples.
//
// The cathodic direction is handled by negating both the threshold and the
// signal, so the scan always runs in its canonical rising form. NaN
// samples compare false on both sides and are skipped over.
func segmentVector(v []float64, start float64, anodic bool, nPoints int) []float64 {
	n := len(v)
	cycles := make([]float64, n)

	sign := 1.0
	if !anodic {
		sign = -1.0
	}
	start *= sign

	count := 0.0
	i := 0
	for i < n {
		// The signal must get behind the start potential and stay there
		// for nPoints samples before a crossing can count.
		behind := scanFrom(v, i, func(x float64) bool { return sign*x < start })
		if behind < 0 {
			break
		}
		i = behind + nPoints

		// First sample back in front is the crossing.
		front := scanFrom(v, i, func(x float64) bool { return sign*x > start })
		if front < 0 {
			break
		}
		i = front

		count++
		for j := i; j < n; j++ {
			cycles[j] = count
		}
		i += nPoints
	}

	return cycles
}

// scanFrom returns the first index at or after start whose sample
// satisfies pred, or -1 when none does.
func scanFrom(v []float64, start int, pred func(float64) bool) int {
	for i := start; i < len(v); i++ {
		if pred(v[i]) {
			return i
		}
	}

	return -1
}

// Renumber rebases an existing coarse cycle counter so its smallest value
// becomes 0. It is the path taken when no start potential is given: the
// instrument's own counter is reused as-is, with no debouncing.
//
// Returns a series named "cycle" carrying the counter's unit, aligned with
// the counter's time reference.
func Renumber(counter *series.ValueSeries) (*series.ValueSeries, error) {
	data := counter.Data()
	shifted := make([]float64, len(data))

	if len(data) > 0 {
		low := data[0]
		for _, x := range data[1:] {
			if x < low {
				low = x
			}
		}
		for i, x := range data {
			shifted[i] = x - low
		}
	}

	return series.NewValueSeries("cycle", counter.Unit(), shifted, counter.TimeRef())
}
