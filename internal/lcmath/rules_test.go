// Public domain.

package lcmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcmath"
)

var nearStellarCases = []struct {
	name                                       string
	distnr, distpsnr1, sgscore1, chinr, sharpn float64
	want                                       lcmath.Stellarity
}{
	{"all pass", .5, .5, .9, 1, 0, lcmath.Stellarity{true, true, true, true}},
	{"far ztf", 1.4, .5, .9, 1, 0, lcmath.Stellarity{false, true, true, true}},
	{"negative distance", -999, -999, .9, 1, 0, lcmath.Stellarity{false, false, true, true}},
	{"galaxy score", .5, .5, .4, 1, 0, lcmath.Stellarity{true, true, false, true}},
	{"bad chi", .5, .5, .9, 2, 0, lcmath.Stellarity{true, true, true, false}},
	{"sharp low edge", .5, .5, .9, 1, -.13, lcmath.Stellarity{true, true, true, false}},
	{"sharp high edge", .5, .5, .9, 1, .1, lcmath.Stellarity{true, true, true, false}},
}

func TestNearStellar(t *testing.T) {
	for _, c := range nearStellarCases {
		t.Run(c.name, func(t *testing.T) {
			got := lcmath.NearStellar(c.distnr, c.distpsnr1, c.sgscore1, c.chinr, c.sharpn)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestIsStellar(t *testing.T) {
	for _, stellarZTF := range []bool{false, true} {
		// PS1 clause decides regardless of the ZTF shape
		assert.True(t, lcmath.IsStellar(true, true, true, stellarZTF))
		assert.False(t, lcmath.IsStellar(true, true, false, stellarZTF))
	}
	for _, stellarPS1 := range []bool{false, true} {
		// fallback clause decides regardless of the PS1 score
		assert.True(t, lcmath.IsStellar(true, false, stellarPS1, true))
		assert.False(t, lcmath.IsStellar(true, false, stellarPS1, false))
	}
	for _, b := range [][3]bool{{true, true, true}, {false, false, false}, {true, false, true}} {
		assert.False(t, lcmath.IsStellar(false, b[0], b[1], b[2]), "not near ZTF")
	}
	assert.True(t, lcmath.Stellarity{NearZTF: true, StellarZTF: true}.Stellar())
}

func TestIsDubious(t *testing.T) {
	n, p := lcdata.Negative, lcdata.Positive
	tests := []struct {
		corrected      bool
		sign           lcdata.Sign
		firstCorrected bool
		want           bool
	}{
		{true, n, true, false},
		{false, n, true, true},
		{true, p, true, false},
		{false, p, true, true},
		{false, p, false, false},
		{false, n, false, true},
		{true, p, false, true},
		{true, n, false, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lcmath.IsDubious(tt.corrected, tt.sign, tt.firstCorrected), "%+v", tt)
	}
}

func TestIsCorrected(t *testing.T) {
	assert.True(t, lcmath.IsCorrected(.5))
	assert.True(t, lcmath.IsCorrected(-999))
	assert.False(t, lcmath.IsCorrected(1.4))
	assert.False(t, lcmath.IsCorrected(2))
}
