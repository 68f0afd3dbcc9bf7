// Public domain.

// Package lcsolve corrects the detections of an object and computes its
// per-band, per-object and dm/dt statistics.
//
// Every function here is a pure function of its arguments; objects and
// (object, band) groups can be solved concurrently without locking.
package lcsolve

import (
	"cmp"
	"errors"
	"slices"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcmath"
)

// Options are the parameters of the statistics.
type Options struct {
	DtMin  *float64 // DefaultDtMin if nil
	Flags  bool     // saturation rate, diffpos, reference change
	StepID string   // DefaultStepID if empty

	// Overrides replaces first detection fields for the stellar
	// classification of the keyed group.
	Overrides map[lcdata.BandKey]StellarInputs
}

// Solver contains the parameters and correction engine needed to solve
// objects.
type Solver struct {
	engine *lcmath.Engine
	opt    Options
	dtMin  float64
}

// New creates a Solver.  A nil engine discards correction fault reports.
func New(engine *lcmath.Engine, opt Options) *Solver {
	dtMin := DefaultDtMin
	if opt.DtMin != nil {
		dtMin = *opt.DtMin
	}
	if opt.StepID == "" {
		opt.StepID = DefaultStepID
	}
	return &Solver{engine, opt, dtMin}
}

// Solve runs correction and statistics for a single object.
//
// Detections and non-detections must all be of object oid; they need
// not be ordered.  Bands with non-detections but no detections are
// ignored.  A failure is returned as a *lcdata.GroupError naming the
// object and, when it is specific to one, the band.
//
// A failed band does not discard the others: the result still holds the
// per-band rows of the bands that succeeded, ObjStats is nil, and the
// error joins the errors of the failed bands.
func (s *Solver) Solve(oid string, dets []lcdata.Detection, nds []lcdata.NonDetection) (lcdata.ObjectResult, error) {
	res := lcdata.ObjectResult{OID: oid}
	if len(dets) == 0 {
		return res, &lcdata.GroupError{OID: oid, Err: lcdata.Validationf("no detections")}
	}
	detBands := map[int][]lcdata.Detection{}
	for _, d := range dets {
		if d.OID != oid {
			return res, &lcdata.GroupError{OID: oid,
				Err: lcdata.Validationf("detection %d of %s", d.Candid, d.OID)}
		}
		detBands[d.FID] = append(detBands[d.FID], d)
	}
	ndBands := map[int][]lcdata.NonDetection{}
	for _, nd := range nds {
		if nd.OID != oid {
			return res, &lcdata.GroupError{OID: oid,
				Err: lcdata.Validationf("non-detection of %s", nd.OID)}
		}
		ndBands[nd.FID] = append(ndBands[nd.FID], nd)
	}
	fids := make([]int, 0, len(detBands))
	for fid := range detBands {
		fids = append(fids, fid)
	}
	slices.Sort(fids)

	var errs []error
	for _, fid := range fids {
		cd, ms, dm, err := s.solveBand(detBands[fid], ndBands[fid])
		if err != nil {
			errs = append(errs, &lcdata.GroupError{OID: oid, FID: fid, Err: err})
			continue
		}
		res.Corrected = append(res.Corrected, cd...)
		res.MagStats = append(res.MagStats, ms)
		res.DmDt = append(res.DmDt, dm)
	}
	switch len(errs) {
	case 0:
	case 1:
		return res, errs[0]
	default:
		return res, errors.Join(errs...)
	}
	obj, err := ObjStatsOf(dets, res.MagStats, ObjOptions{Flags: s.opt.Flags, StepID: s.opt.StepID})
	if err != nil {
		return res, &lcdata.GroupError{OID: oid, Err: err}
	}
	res.ObjStats = &obj
	return res, nil
}

func (s *Solver) solveBand(dets []lcdata.Detection, nds []lcdata.NonDetection) (
	cd []lcdata.CorrectedDetection, ms lcdata.MagStats, dm lcdata.DmDtStats, err error) {
	if cd, err = CorrectBand(s.engine, dets); err != nil {
		return
	}
	mo := MagStatsOptions{Flags: s.opt.Flags}
	if in, ok := s.opt.Overrides[cd[0].Key()]; ok {
		mo.Overrides = &in
	}
	if ms, err = MagStatsOf(cd, mo); err != nil {
		return
	}
	dm, err = DmDtOf(&ms, nds, s.dtMin)
	return
}

// Merge folds object results into tables sorted by key.  Detections within
// a band keep their candid order.  Results without ObjStats contribute
// their band rows only.
func Merge(results []lcdata.ObjectResult) lcdata.Tables {
	var t lcdata.Tables
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b lcdata.ObjectResult) int {
		return cmp.Compare(a.OID, b.OID)
	})
	for i := range sorted {
		r := &sorted[i]
		t.Corrected = append(t.Corrected, r.Corrected...)
		t.MagStats = append(t.MagStats, r.MagStats...)
		if r.ObjStats != nil {
			t.ObjStats = append(t.ObjStats, *r.ObjStats)
		}
		t.DmDt = append(t.DmDt, r.DmDt...)
	}
	// stable, for candid order within a band
	slices.SortStableFunc(t.Corrected, func(a, b lcdata.CorrectedDetection) int {
		return a.Key().Compare(b.Key())
	})
	slices.SortStableFunc(t.MagStats, func(a, b lcdata.MagStats) int {
		return a.BandKey.Compare(b.BandKey)
	})
	slices.SortStableFunc(t.DmDt, func(a, b lcdata.DmDtStats) int {
		return a.BandKey.Compare(b.BandKey)
	})
	return t
}
