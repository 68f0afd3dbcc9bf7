// Public domain.

// Package lcmath implements the magnitude correction formula, the
// stellar and dubious classification rules, and the NaN aware statistics
// used to summarize light curves.
package lcmath

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/soniakeys/lccorr/astro"
	"github.com/soniakeys/lccorr/internal/lcdata"
)

// Thresholds of the correction and classification rules.
const (
	DistanceThreshold  = 1.4  // distnr, distpsnr1
	ScoreThreshold     = .4   // sgscore1
	ChiNRThreshold     = 2    // chinr
	SharpNRMin         = -.13 // sharpnr, exclusive
	SharpNRMax         = .1   // sharpnr, exclusive
	MagnitudeThreshold = 13.2 // saturation
)

// Correct combines a difference image PSF magnitude with the magnitude of
// the nearest reference source to give the magnitude of the object itself.
//
// Negative magnr or magpsf gives an all NotApplicable correction.
// Cancelling fluxes give an all Degenerate correction, a negative
// uncertainty radicand gives a Degenerate Sigma.
//
// A non-finite input or result is an arithmetic fault; the returned error
// wraps lcdata.ErrArithmetic and the correction is NotApplicable.
func Correct(magnr, magpsf, sigmagnr, sigmapsf float64, sign lcdata.Sign) (lcdata.Correction, error) {
	if magnr < 0 || magpsf < 0 {
		return lcdata.NACorrection, nil
	}
	if sign != lcdata.Positive && sign != lcdata.Negative {
		return lcdata.NACorrection, lcdata.Validationf("sign %d", sign)
	}
	for _, x := range [...]float64{magnr, magpsf, sigmagnr, sigmapsf} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return lcdata.NACorrection, fmt.Errorf("%w: non-finite input %g", lcdata.ErrArithmetic, x)
		}
	}
	a1 := astro.Flux(magnr)
	a2 := astro.Flux(magpsf)
	a3 := a1 + float64(sign)*a2
	if a3 <= 0 {
		return lcdata.BogusCorrection, nil
	}
	c := lcdata.Correction{
		Mag:      lcdata.Of(astro.Mag(a3)),
		Sigma:    lcdata.Bogus,
		SigmaExt: lcdata.Of(a2 * sigmapsf / a3),
	}
	if a4 := a2*a2*sigmapsf*sigmapsf - a1*a1*sigmagnr*sigmagnr; a4 >= 0 {
		c.Sigma = lcdata.Of(math.Sqrt(a4) / a3)
	}
	for _, v := range [...]lcdata.Value{c.Mag, c.Sigma, c.SigmaExt} {
		if v.Status == lcdata.Valid && (math.IsNaN(v.V) || math.IsInf(v.V, 0)) {
			return lcdata.NACorrection, fmt.Errorf("%w: non-finite result, flux %g", lcdata.ErrArithmetic, a3)
		}
	}
	return c, nil
}

// Engine applies Correct to detections, absorbing per-record faults.
//
// The zero Engine discards fault reports.
type Engine struct {
	Log     *slog.Logger
	OnFault func() // called once per absorbed fault
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Correct corrects one detection of object oid.  Any error from Correct
// is logged with the object id and the detection is left NotApplicable.
func (e *Engine) Correct(oid string, magnr, magpsf, sigmagnr, sigmapsf float64, sign lcdata.Sign) lcdata.Correction {
	c, err := Correct(magnr, magpsf, sigmagnr, sigmapsf, sign)
	if err == nil {
		return c
	}
	log := discard
	if e != nil && e.Log != nil {
		log = e.Log
	}
	log.Error("correction failed", "oid", oid, "error", err)
	if e != nil && e.OnFault != nil {
		e.OnFault()
	}
	return lcdata.NACorrection
}
