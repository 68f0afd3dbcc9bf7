// Public domain.

package lcmath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/lccorr/internal/lcmath"
)

func TestStatsSkipNaN(t *testing.T) {
	nan := math.NaN()
	x := []float64{3, nan, 1, 4, nan, 2}
	assert.Len(t, lcmath.Present(x), 4)
	assert.Equal(t, 2.5, lcmath.Mean(x))
	assert.Equal(t, 2.5, lcmath.Median(x))
	assert.InDelta(t, math.Sqrt(5./3), lcmath.StdDev(x), 1e-12)
	assert.Equal(t, 4., lcmath.Max(x))
	assert.Equal(t, 1., lcmath.Min(x))
	assert.Equal(t, 2, lcmath.ArgMin(x))
	assert.Equal(t, 3, lcmath.ArgMax(x))
	// input untouched by the median sort
	assert.Equal(t, 3., x[0])
}

func TestStatsEmpty(t *testing.T) {
	for _, x := range [][]float64{nil, {math.NaN()}} {
		assert.True(t, math.IsNaN(lcmath.Mean(x)))
		assert.True(t, math.IsNaN(lcmath.Median(x)))
		assert.True(t, math.IsNaN(lcmath.StdDev(x)))
		assert.True(t, math.IsNaN(lcmath.Max(x)))
		assert.True(t, math.IsNaN(lcmath.Min(x)))
		assert.Equal(t, -1, lcmath.ArgMin(x))
	}
	assert.True(t, math.IsNaN(lcmath.StdDev([]float64{1})), "single value")
	assert.Equal(t, 7., lcmath.Median([]float64{7}))
}

func TestArgTies(t *testing.T) {
	x := []float64{5, 1, 9, 1, 9}
	assert.Equal(t, 1, lcmath.ArgMin(x))
	assert.Equal(t, 2, lcmath.ArgMax(x))
}
