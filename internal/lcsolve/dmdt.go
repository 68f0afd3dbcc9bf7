// Public domain.

package lcsolve

import (
	"math"

	"github.com/soniakeys/lccorr/internal/lcdata"
)

// DefaultDtMin is the gap before the first detection within which
// non-detections are not used for dm/dt.
const DefaultDtMin = .5 // days

// DmDtOf bounds the rise rate of an (object, band) from its non-detections.
//
// Non-detections earlier than FirstMJD - dtMin qualify.  For each,
//
//	dm/dt = (magpsf_first + sigmapsf_first - diffmaglim) / (first_mjd - mjd)
//
// and the smallest wins, ties going to the earlier record.  With no
// qualifying non-detection the four rates are NaN.
//
// CloseNondet reports a non-detection inside the gap, closer to the first
// detection than the closest qualifying one.
func DmDtOf(ms *lcdata.MagStats, nds []lcdata.NonDetection, dtMin float64) (lcdata.DmDtStats, error) {
	r := lcdata.DmDtStats{
		BandKey:      ms.BandKey,
		DmDtFirst:    math.NaN(),
		DmFirst:      math.NaN(),
		SigmaDmFirst: math.NaN(),
		DtFirst:      math.NaN(),
	}
	cut := ms.FirstMJD - dtMin
	closestQualified, closestPrior := math.NaN(), math.NaN()
	best := -1
	var bestRate float64
	for i := range nds {
		nd := &nds[i]
		if nd.Key() != ms.BandKey {
			return lcdata.DmDtStats{}, lcdata.Validationf("non-detection %v at %.5f in group %v",
				nd.Key(), nd.MJD, ms.BandKey)
		}
		if !(nd.MJD < ms.FirstMJD) {
			continue
		}
		closestPrior = nanMax(closestPrior, nd.MJD)
		if !(nd.MJD < cut) {
			continue
		}
		closestQualified = nanMax(closestQualified, nd.MJD)
		rate := (ms.MagPSFFirst + ms.SigmaPSFFirst - nd.DiffMagLim) / (ms.FirstMJD - nd.MJD)
		if math.IsNaN(rate) {
			continue
		}
		if best < 0 || rate < bestRate {
			best, bestRate = i, rate
		}
	}
	// false when either is NaN
	r.CloseNondet = closestQualified < closestPrior
	if best >= 0 {
		nd := &nds[best]
		r.DmDtFirst = bestRate
		r.DmFirst = ms.MagPSFFirst - nd.DiffMagLim
		r.SigmaDmFirst = ms.SigmaPSFFirst - nd.DiffMagLim
		r.DtFirst = ms.FirstMJD - nd.MJD
	}
	return r, nil
}

func nanMax(a, b float64) float64 {
	if math.IsNaN(a) || b > a {
		return b
	}
	return a
}
