// Public domain.

// Package astro, stuff generally useful in astronomy.
package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// MJD converts a Julian date to a modified Julian date.
//
// Alert packets carry Julian dates; everything downstream works in MJD.
func MJD(jd float64) float64 {
	return jd - base.JMod
}

// JD converts a modified Julian date back to a Julian date.
func JD(mjd float64) float64 {
	return mjd + base.JMod
}

// MJDToTime converts a modified Julian date to a UTC time.
func MJDToTime(mjd float64) time.Time {
	return julian.JDToTime(JD(mjd)).UTC()
}

// Flux computes relative flux from a magnitude, 10^(-0.4 m).
func Flux(mag float64) float64 {
	return math.Pow(10, -.4*mag)
}

// Mag computes the magnitude of a relative flux.
//
// Flux must be positive; Mag(0) is +Inf and negative flux gives NaN.
func Mag(flux float64) float64 {
	return -2.5 * math.Log10(flux)
}
