// Public domain.

package lcmath_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcmath"
)

func ExampleCorrect() {
	c, err := lcmath.Correct(20, 18, .05, .1, lcdata.Positive)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f %.4f %.4f\n", c.Mag.Float(), c.Sigma.Float(), c.SigmaExt.Float())
	// Output:
	// 17.8403 0.0860 0.0863
}

func TestCorrectPositive(t *testing.T) {
	c, err := lcmath.Correct(18, 19, .05, .1, lcdata.Positive)
	require.NoError(t, err)
	want := -2.5 * math.Log10(math.Pow(10, -7.2)+math.Pow(10, -7.6))
	assert.Equal(t, lcdata.Valid, c.Mag.Status)
	assert.InDelta(t, want, c.Mag.V, 1e-12)
	assert.InDelta(t, 17.636149, c.Mag.V, 1e-6)
	// the reference uncertainty dominates, the radicand is negative
	assert.Equal(t, lcdata.Degenerate, c.Sigma.Status)
	assert.Equal(t, lcdata.ZeroMag, c.Sigma.Float())
	assert.InDelta(t, .028475, c.SigmaExt.V, 1e-6)
}

func TestCorrectNegative(t *testing.T) {
	c, err := lcmath.Correct(18, 19, .05, .1, lcdata.Negative)
	require.NoError(t, err)
	assert.InDelta(t, 18.551202, c.Mag.V, 1e-6)
	assert.InDelta(t, .066143, c.SigmaExt.V, 1e-6)
}

func TestCorrectEdgeCases(t *testing.T) {
	tests := []struct {
		name                            string
		magnr, magpsf, sigmagnr, sigmap float64
		sign                            lcdata.Sign
		want                            lcdata.Status
	}{
		{"negative magnr", -1, 19, .05, .1, lcdata.Positive, lcdata.NotApplicable},
		{"negative magpsf", 18, -1, .05, .1, lcdata.Positive, lcdata.NotApplicable},
		{"both negative", -1, -1, .05, .1, lcdata.Negative, lcdata.NotApplicable},
		{"fluxes cancel", 18, 18, .05, .1, lcdata.Negative, lcdata.Degenerate},
		{"flux inverts", 19, 18, .05, .1, lcdata.Negative, lcdata.Degenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := lcmath.Correct(tt.magnr, tt.magpsf, tt.sigmagnr, tt.sigmap, tt.sign)
			require.NoError(t, err)
			for _, v := range []lcdata.Value{c.Mag, c.Sigma, c.SigmaExt} {
				assert.Equal(t, tt.want, v.Status)
			}
		})
	}
	c, _ := lcmath.Correct(-1, 19, .05, .1, lcdata.Positive)
	assert.True(t, math.IsNaN(c.Mag.Float()))
}

func TestCorrectFault(t *testing.T) {
	for _, in := range [][4]float64{
		{math.NaN(), 19, .05, .1},
		{18, math.Inf(1), .05, .1},
		{18, 19, math.NaN(), .1},
	} {
		c, err := lcmath.Correct(in[0], in[1], in[2], in[3], lcdata.Positive)
		require.ErrorIs(t, err, lcdata.ErrArithmetic)
		assert.Equal(t, lcdata.NACorrection, c)
	}
	_, err := lcmath.Correct(18, 19, .05, .1, 0)
	assert.ErrorIs(t, err, lcdata.ErrValidation)
}

func TestEngineLogsFault(t *testing.T) {
	var buf bytes.Buffer
	faults := 0
	e := &lcmath.Engine{
		Log:     slog.New(slog.NewTextHandler(&buf, nil)),
		OnFault: func() { faults++ },
	}
	c := e.Correct("ZTF20aatvpww", math.NaN(), 19, .05, .1, lcdata.Positive)
	assert.Equal(t, lcdata.NACorrection, c)
	assert.Equal(t, 1, faults)
	assert.Contains(t, buf.String(), "oid=ZTF20aatvpww")

	c = e.Correct("ZTF20aatvpww", 18, 19, .05, .1, lcdata.Positive)
	assert.Equal(t, lcdata.Valid, c.Mag.Status)
	assert.Equal(t, 1, faults)

	var zero *lcmath.Engine
	assert.Equal(t, lcdata.NACorrection, zero.Correct("x", 18, math.NaN(), .05, .1, lcdata.Positive))
}

// A brighter difference source raises the combined flux of a positive
// subtraction and lowers it for a negative one.
func TestCorrectMonotonic(t *testing.T) {
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)
	for range 500 {
		magnr := 12 + 10*rnd.Float64()
		faint := 14 + 8*rnd.Float64()
		bright := faint - .01 - rnd.Float64()

		p0, err := lcmath.Correct(magnr, faint, .05, .1, lcdata.Positive)
		require.NoError(t, err)
		p1, err := lcmath.Correct(magnr, bright, .05, .1, lcdata.Positive)
		require.NoError(t, err)
		require.Less(t, p1.Mag.V, p0.Mag.V)

		n0, _ := lcmath.Correct(magnr, faint, .05, .1, lcdata.Negative)
		n1, _ := lcmath.Correct(magnr, bright, .05, .1, lcdata.Negative)
		if n0.Mag.Status == lcdata.Valid && n1.Mag.Status == lcdata.Valid {
			require.Greater(t, n1.Mag.V, n0.Mag.V)
		}
		if n0.Mag.Status == lcdata.Degenerate {
			// fainter difference flux already cancels, brighter must too
			require.Equal(t, lcdata.Degenerate, n1.Mag.Status)
		}
		require.False(t, math.IsInf(p1.Mag.V, 0) || math.IsNaN(p1.Mag.V))
	}
}
