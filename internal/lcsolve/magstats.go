// Public domain.

package lcsolve

import (
	"math"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcmath"
)

// StellarInputs are the fields the stellar classification is evaluated on.
type StellarInputs struct {
	DistNR, DistPSNR1, SGScore1, ChiNR, SharpNR float64
}

// MagStatsOptions adjust MagStatsOf.
type MagStatsOptions struct {
	// Overrides replaces the fields of the first detection for the
	// stellar classification.
	Overrides *StellarInputs
	// Flags computes the saturation rate.
	Flags bool
}

// MagStatsOf summarizes the corrected detections of one (object, band).
//
// First and last here are by mjd, ties going to the earlier record.
// This is not the candid order CorrectBand uses for the dubious baseline.
func MagStatsOf(cd []lcdata.CorrectedDetection, opt MagStatsOptions) (lcdata.MagStats, error) {
	var ms lcdata.MagStats
	if len(cd) == 0 {
		return ms, lcdata.Validationf("no corrected detections")
	}
	ms.BandKey = cd[0].Key()

	n := len(cd)
	mjd := make([]float64, n)
	magpsf := make([]float64, n)
	magcorr := make([]float64, n)
	magap := make([]float64, n)
	rfids := map[int64]bool{}
	for i := range cd {
		c := &cd[i]
		if c.Key() != ms.BandKey {
			return lcdata.MagStats{}, lcdata.Validationf("detection %d is %v in group %v",
				c.Candid, c.Key(), ms.BandKey)
		}
		mjd[i] = c.MJD
		magpsf[i] = c.MagPSF
		magcorr[i] = c.MagPSFCorr()
		magap[i] = c.MagAp
		if c.Dubious {
			ms.NDubious++
		}
		if c.RFID != nil {
			rfids[*c.RFID] = true
		}
	}
	iFirst, iLast := lcmath.ArgMin(mjd), lcmath.ArgMax(mjd)
	if iFirst < 0 {
		return lcdata.MagStats{}, lcdata.Validationf("%v: no valid mjd", ms.BandKey)
	}
	first, last := &cd[iFirst], &cd[iLast]

	ms.Corrected = first.Corrected
	in := StellarInputs{first.DistNR, first.DistPSNR1, first.SGScore1, first.ChiNR, first.SharpNR}
	if opt.Overrides != nil {
		in = *opt.Overrides
	}
	s := lcmath.NearStellar(in.DistNR, in.DistPSNR1, in.SGScore1, in.ChiNR, in.SharpNR)
	ms.NearZTF, ms.NearPS1 = s.NearZTF, s.NearPS1
	ms.StellarZTF, ms.StellarPS1 = s.StellarZTF, s.StellarPS1
	ms.Stellar = s.Stellar()

	ms.NDet = n
	ms.NRFID = len(rfids)

	ms.MagPSFMean = lcmath.Mean(magpsf)
	ms.MagPSFMedian = lcmath.Median(magpsf)
	ms.MagPSFMax = lcmath.Max(magpsf)
	ms.MagPSFMin = lcmath.Min(magpsf)
	ms.SigmaPSF = lcmath.StdDev(magpsf)
	ms.MagPSFFirst = first.MagPSF
	ms.SigmaPSFFirst = first.SigmaPSF
	ms.MagPSFLast = last.MagPSF

	ms.MagPSFCorrMean = lcmath.Mean(magcorr)
	ms.MagPSFCorrMedian = lcmath.Median(magcorr)
	ms.MagPSFCorrMax = lcmath.Max(magcorr)
	ms.MagPSFCorrMin = lcmath.Min(magcorr)
	ms.SigmaPSFCorr = lcmath.StdDev(magcorr)
	ms.MagPSFCorrFirst = first.MagPSFCorr()
	ms.MagPSFCorrLast = last.MagPSFCorr()

	ms.MagApMean = lcmath.Mean(magap)
	ms.MagApMedian = lcmath.Median(magap)
	ms.MagApMax = lcmath.Max(magap)
	ms.MagApMin = lcmath.Min(magap)
	ms.SigmaAp = lcmath.StdDev(magap)
	ms.MagApFirst = first.MagAp
	ms.MagApLast = last.MagAp

	ms.FirstMJD = first.MJD
	ms.LastMJD = last.MJD

	ms.SaturationRate = math.NaN()
	if opt.Flags {
		ms.SaturationRate = SaturationRate(cd)
	}
	return ms, nil
}

// SaturationRate is the fraction of corrected magnitudes of corrected
// detections brighter than the saturation threshold.  NaN if there are
// no such magnitudes.
func SaturationRate(cd []lcdata.CorrectedDetection) float64 {
	var total, saturated int
	for i := range cd {
		if !cd[i].Corrected {
			continue
		}
		m := cd[i].MagPSFCorr()
		if math.IsNaN(m) {
			continue
		}
		total++
		if m < lcmath.MagnitudeThreshold {
			saturated++
		}
	}
	if total == 0 {
		return math.NaN()
	}
	return float64(saturated) / float64(total)
}
