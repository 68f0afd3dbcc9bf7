// Public domain.

package lcmath

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// The statistics here skip NaN, as missing values.  All return NaN when
// nothing is left.

// Present returns the values of x that are not NaN.
func Present(x []float64) []float64 {
	p := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			p = append(p, v)
		}
	}
	return p
}

func Mean(x []float64) float64 {
	p := Present(x)
	if len(p) == 0 {
		return math.NaN()
	}
	return stat.Mean(p, nil)
}

// StdDev is the sample standard deviation, NaN for fewer than two values.
func StdDev(x []float64) float64 {
	p := Present(x)
	if len(p) < 2 {
		return math.NaN()
	}
	return stat.StdDev(p, nil)
}

// Median averages the middle pair for an even count.
func Median(x []float64) float64 {
	p := Present(x)
	n := len(p)
	if n == 0 {
		return math.NaN()
	}
	slices.Sort(p)
	if n%2 == 1 {
		return p[n/2]
	}
	return (p[n/2-1] + p[n/2]) / 2
}

func Max(x []float64) float64 {
	p := Present(x)
	if len(p) == 0 {
		return math.NaN()
	}
	return floats.Max(p)
}

func Min(x []float64) float64 {
	p := Present(x)
	if len(p) == 0 {
		return math.NaN()
	}
	return floats.Min(p)
}

// ArgMin returns the index of the first occurrence of the smallest value,
// or -1 if all values are NaN.
func ArgMin(x []float64) int {
	return argBest(x, func(a, b float64) bool { return a < b })
}

// ArgMax returns the index of the first occurrence of the largest value,
// or -1 if all values are NaN.
func ArgMax(x []float64) int {
	return argBest(x, func(a, b float64) bool { return a > b })
}

func argBest(x []float64, better func(a, b float64) bool) int {
	best := -1
	for i, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || better(v, x[best]) {
			best = i
		}
	}
	return best
}
