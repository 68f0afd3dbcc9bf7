// Public domain.

package lcsolve

import (
	"cmp"
	"slices"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcmath"
)

// CorrectBand corrects the detections of one (object, band).
//
// Detections are returned ordered by candid.  The detection with the
// smallest candid is the first detection; its correction status is the
// baseline for the dubious flag of every detection.
//
// An empty group, a group mixing keys, or an unrecognized isdiffpos token
// is a validation error and nothing is returned.
func CorrectBand(e *lcmath.Engine, dets []lcdata.Detection) ([]lcdata.CorrectedDetection, error) {
	if len(dets) == 0 {
		return nil, lcdata.Validationf("no detections")
	}
	key := dets[0].Key()
	cd := make([]lcdata.CorrectedDetection, len(dets))
	for i := range dets {
		d := &dets[i]
		if d.Key() != key {
			return nil, lcdata.Validationf("detection %d is %v in group %v", d.Candid, d.Key(), key)
		}
		s, err := lcdata.ParseSign(d.IsDiffPos)
		if err != nil {
			return nil, err
		}
		cd[i] = lcdata.CorrectedDetection{Detection: *d, Sign: s}
	}
	slices.SortStableFunc(cd, func(a, b lcdata.CorrectedDetection) int {
		return cmp.Compare(a.Candid, b.Candid)
	})

	for i := range cd {
		c := &cd[i]
		c.Corrected = lcmath.IsCorrected(c.DistNR)
		c.Correction = lcdata.NACorrection
		if c.Corrected {
			c.Correction = e.Correct(c.OID, c.MagNR, c.MagPSF, c.SigmaGNR, c.SigmaPSF, c.Sign)
		}
	}
	firstCorrected := cd[0].Corrected
	for i := range cd {
		cd[i].Dubious = lcmath.IsDubious(cd[i].Corrected, cd[i].Sign, firstCorrected)
	}
	return cd, nil
}
