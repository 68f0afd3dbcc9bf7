// Public domain.

package lcsolve

import (
	"math"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcmath"
)

// DefaultStepID tags ObjStats when no step id is configured.
const DefaultStepID = "corr_bulk_0.0.1"

// ObjHistoryOf computes the statistics of an object that come from its
// raw detections in all bands.  History counters are those of the last
// detection by mjd.
//
// With flags, Diffpos reports that every subtraction was positive and
// ReferenceChange that some reference image is valid past the first
// detection.
func ObjHistoryOf(dets []lcdata.Detection, flags bool) (lcdata.ObjStats, error) {
	var st lcdata.ObjStats
	if len(dets) == 0 {
		return st, lcdata.Validationf("no detections")
	}
	st.OID = dets[0].OID
	n := len(dets)
	mjd := make([]float64, n)
	ra := make([]float64, n)
	dec := make([]float64, n)
	endRef := make([]float64, n)
	for i := range dets {
		d := &dets[i]
		if d.OID != st.OID {
			return lcdata.ObjStats{}, lcdata.Validationf("detection %d of %s in object %s", d.Candid, d.OID, st.OID)
		}
		mjd[i], ra[i], dec[i], endRef[i] = d.MJD, d.RA, d.Dec, d.MJDEndRef
	}
	iLast := lcmath.ArgMax(mjd)
	if iLast < 0 {
		return lcdata.ObjStats{}, lcdata.Validationf("object %s: no valid mjd", st.OID)
	}
	last := &dets[iLast]
	st.NDetHist, st.NCovHist = last.NDetHist, last.NCovHist
	st.MJDStartHist, st.MJDEndHist = last.MJDStartHist, last.MJDEndHist
	st.MeanRA, st.MeanDec = lcmath.Mean(ra), lcmath.Mean(dec)
	st.SigmaRA, st.SigmaDec = lcmath.StdDev(ra), lcmath.StdDev(dec)
	st.FirstMJD = lcmath.Min(mjd)
	st.LastMJD = last.MJD
	st.DeltaMJD = st.LastMJD - st.FirstMJD

	if flags {
		st.HasFlags = true
		st.Diffpos = true
		for i := range dets {
			s, err := lcdata.ParseSign(dets[i].IsDiffPos)
			if err != nil {
				return lcdata.ObjStats{}, err
			}
			if s != lcdata.Positive {
				st.Diffpos = false
			}
		}
		// NaN compares false
		st.ReferenceChange = lcmath.Max(endRef) > st.FirstMJD
	}
	return st, nil
}

// ObjMag is the part of the object statistics rolled up from MagStats.
type ObjMag struct {
	NearZTF, NearPS1, Stellar, Corrected bool
	NDet, NDubious                       int
	GRMax, GRMaxCorr, GRMean, GRMeanCorr float64
}

// ObjMagOf rolls up the per-band statistics of one object.  Flags are
// true when true in every band.  Colors are g-r, from minimum (brightest)
// and mean magnitudes; NaN unless both g and r are present.
func ObjMagOf(mags []lcdata.MagStats) (ObjMag, error) {
	om := ObjMag{
		NearZTF:    true,
		NearPS1:    true,
		Stellar:    true,
		Corrected:  true,
		GRMax:      math.NaN(),
		GRMaxCorr:  math.NaN(),
		GRMean:     math.NaN(),
		GRMeanCorr: math.NaN(),
	}
	if len(mags) == 0 {
		return om, lcdata.Validationf("no magstats")
	}
	var g, r *lcdata.MagStats
	seen := map[int]bool{}
	for i := range mags {
		m := &mags[i]
		if m.OID != mags[0].OID {
			return om, lcdata.Validationf("magstats %v in object %s", m.BandKey, mags[0].OID)
		}
		if seen[m.FID] {
			return om, lcdata.Validationf("duplicate magstats %v", m.BandKey)
		}
		seen[m.FID] = true
		om.NearZTF = om.NearZTF && m.NearZTF
		om.NearPS1 = om.NearPS1 && m.NearPS1
		om.Stellar = om.Stellar && m.Stellar
		om.Corrected = om.Corrected && m.Corrected
		om.NDet += m.NDet
		om.NDubious += m.NDubious
		switch m.FID {
		case lcdata.BandG:
			g = m
		case lcdata.BandR:
			r = m
		}
	}
	if g != nil && r != nil {
		om.GRMax = g.MagPSFMin - r.MagPSFMin
		om.GRMaxCorr = g.MagPSFCorrMin - r.MagPSFCorrMin
		om.GRMean = g.MagPSFMean - r.MagPSFMean
		om.GRMeanCorr = g.MagPSFCorrMean - r.MagPSFCorrMean
	}
	return om, nil
}

// ObjOptions adjust ObjStatsOf.
type ObjOptions struct {
	Flags  bool
	StepID string // DefaultStepID if empty
}

// ObjStatsOf joins ObjHistoryOf and ObjMagOf of one object.
func ObjStatsOf(dets []lcdata.Detection, mags []lcdata.MagStats, opt ObjOptions) (lcdata.ObjStats, error) {
	st, err := ObjHistoryOf(dets, opt.Flags)
	if err != nil {
		return st, err
	}
	om, err := ObjMagOf(mags)
	if err != nil {
		return lcdata.ObjStats{}, err
	}
	if mags[0].OID != st.OID {
		return lcdata.ObjStats{}, lcdata.Validationf("magstats of %s joined to %s", mags[0].OID, st.OID)
	}
	st.NearZTF, st.NearPS1, st.Stellar, st.Corrected = om.NearZTF, om.NearPS1, om.Stellar, om.Corrected
	st.NDet, st.NDubious = om.NDet, om.NDubious
	st.GRMax, st.GRMaxCorr, st.GRMean, st.GRMeanCorr = om.GRMax, om.GRMaxCorr, om.GRMean, om.GRMeanCorr
	st.StepID = opt.StepID
	if st.StepID == "" {
		st.StepID = DefaultStepID
	}
	return st, nil
}
