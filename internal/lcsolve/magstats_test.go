// Public domain.

package lcsolve_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcsolve"
)

// three detections whose candid order (b, c, a) differs from mjd order
// (c, a, b).  c, first by mjd, is not corrected.
func magstatsBand(t *testing.T) []lcdata.CorrectedDetection {
	t.Helper()
	a := det("ZTF1", 1, 3, 100)
	b := det("ZTF1", 1, 1, 102)
	b.MagPSF, b.MagAp = 18, 18.1
	c := det("ZTF1", 1, 2, 99)
	c.MagPSF, c.MagAp = 17, 17.3
	c.DistNR = 2
	c.RFID = nil
	cd, err := lcsolve.CorrectBand(nil, []lcdata.Detection{a, b, c})
	require.NoError(t, err)
	return cd
}

func TestMagStatsOf(t *testing.T) {
	cd := magstatsBand(t)
	ms, err := lcsolve.MagStatsOf(cd, lcsolve.MagStatsOptions{})
	require.NoError(t, err)

	assert.Equal(t, lcdata.BandKey{OID: "ZTF1", FID: 1}, ms.BandKey)
	// first by mjd is c, uncorrected and far from its reference source
	assert.False(t, ms.Corrected)
	assert.False(t, ms.NearZTF)
	assert.True(t, ms.NearPS1)
	assert.True(t, ms.StellarPS1)
	assert.False(t, ms.Stellar)
	assert.Equal(t, 3, ms.NDet)
	assert.Equal(t, 1, ms.NDubious)
	assert.Equal(t, 1, ms.NRFID)

	assert.Equal(t, 18., ms.MagPSFMean)
	assert.Equal(t, 18., ms.MagPSFMedian)
	assert.Equal(t, 19., ms.MagPSFMax)
	assert.Equal(t, 17., ms.MagPSFMin)
	assert.InDelta(t, 1, ms.SigmaPSF, 1e-12)
	assert.Equal(t, 17., ms.MagPSFFirst)
	assert.Equal(t, .1, ms.SigmaPSFFirst)
	assert.Equal(t, 18., ms.MagPSFLast)

	ca := -2.5 * math.Log10(math.Pow(10, -7.2)+math.Pow(10, -7.6))
	cb := 18 - 2.5*math.Log10(2)
	assert.InDelta(t, (ca+cb)/2, ms.MagPSFCorrMean, 1e-12)
	assert.InDelta(t, (ca+cb)/2, ms.MagPSFCorrMedian, 1e-12)
	assert.InDelta(t, ca, ms.MagPSFCorrMax, 1e-12)
	assert.InDelta(t, cb, ms.MagPSFCorrMin, 1e-12)
	assert.InDelta(t, (ca-cb)/math.Sqrt2, ms.SigmaPSFCorr, 1e-12)
	assert.True(t, math.IsNaN(ms.MagPSFCorrFirst))
	assert.InDelta(t, cb, ms.MagPSFCorrLast, 1e-12)

	assert.InDelta(t, (19.2+18.1+17.3)/3, ms.MagApMean, 1e-12)
	assert.Equal(t, 18.1, ms.MagApMedian)
	assert.Equal(t, 17.3, ms.MagApFirst)
	assert.Equal(t, 18.1, ms.MagApLast)

	assert.Equal(t, 99., ms.FirstMJD)
	assert.Equal(t, 102., ms.LastMJD)
	assert.True(t, math.IsNaN(ms.SaturationRate), "no flags")
}

func TestMagStatsOverrides(t *testing.T) {
	cd := magstatsBand(t)
	ms, err := lcsolve.MagStatsOf(cd, lcsolve.MagStatsOptions{
		Overrides: &lcsolve.StellarInputs{DistNR: .2, DistPSNR1: 5, SGScore1: 0, ChiNR: .5, SharpNR: .05},
	})
	require.NoError(t, err)
	assert.True(t, ms.NearZTF)
	assert.False(t, ms.NearPS1)
	assert.True(t, ms.StellarZTF)
	assert.True(t, ms.Stellar, "falls back to the ZTF shape")
	assert.False(t, ms.Corrected, "overrides do not change the correction status")
}

func TestMagStatsTies(t *testing.T) {
	a := det("ZTF1", 2, 5, 100)
	b := det("ZTF1", 2, 6, 100)
	b.MagPSF = 17
	cd, err := lcsolve.CorrectBand(nil, []lcdata.Detection{b, a})
	require.NoError(t, err)
	ms, err := lcsolve.MagStatsOf(cd, lcsolve.MagStatsOptions{})
	require.NoError(t, err)
	// cd is in candid order, a first
	assert.Equal(t, 19., ms.MagPSFFirst)
	assert.Equal(t, 19., ms.MagPSFLast)
}

func TestSaturationRate(t *testing.T) {
	var dets []lcdata.Detection
	for i, mag := range []float64{13, 13.5, 14, 16} {
		d := det("ZTF2", 1, int64(i+1), float64(100+i))
		d.MagNR, d.MagPSF = 25, mag
		dets = append(dets, d)
	}
	far := det("ZTF2", 1, 9, 110)
	far.MagNR, far.MagPSF, far.DistNR = 25, 12, 3
	dets = append(dets, far)
	cd, err := lcsolve.CorrectBand(nil, dets)
	require.NoError(t, err)
	ms, err := lcsolve.MagStatsOf(cd, lcsolve.MagStatsOptions{Flags: true})
	require.NoError(t, err)
	// 13 corrects a little brighter, below 13.2; the uncorrected 12 does not count
	assert.Equal(t, .25, ms.SaturationRate)

	assert.True(t, math.IsNaN(lcsolve.SaturationRate(cd[4:])))
}

func TestMagStatsIdempotent(t *testing.T) {
	cd := magstatsBand(t)
	opt := lcsolve.MagStatsOptions{Flags: true}
	a, err := lcsolve.MagStatsOf(cd, opt)
	require.NoError(t, err)
	b, err := lcsolve.MagStatsOf(cd, opt)
	require.NoError(t, err)
	// NaN fields defeat DeepEqual; compare the printed records
	assert.Equal(t, fmt.Sprintf("%+v", a), fmt.Sprintf("%+v", b))
}

func TestMagStatsValidation(t *testing.T) {
	_, err := lcsolve.MagStatsOf(nil, lcsolve.MagStatsOptions{})
	assert.ErrorIs(t, err, lcdata.ErrValidation)

	cd := magstatsBand(t)
	cd[1].FID = 2
	_, err = lcsolve.MagStatsOf(cd, lcsolve.MagStatsOptions{})
	assert.ErrorIs(t, err, lcdata.ErrValidation)
}
