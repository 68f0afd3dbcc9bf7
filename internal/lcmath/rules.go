// Public domain.

package lcmath

import "github.com/soniakeys/lccorr/internal/lcdata"

// Stellarity holds the proximity and shape tests of a detection against
// the nearest ZTF reference source and the nearest PS1 source.
type Stellarity struct {
	NearZTF, NearPS1, StellarPS1, StellarZTF bool
}

// NearStellar evaluates the four tests.
func NearStellar(distnr, distpsnr1, sgscore1, chinr, sharpnr float64) Stellarity {
	return Stellarity{
		NearZTF:    isNear(distnr),
		NearPS1:    isNear(distpsnr1),
		StellarPS1: sgscore1 > ScoreThreshold,
		StellarZTF: isStellarShape(chinr, sharpnr),
	}
}

// Stellar is IsStellar of the four tests.
func (s Stellarity) Stellar() bool {
	return IsStellar(s.NearZTF, s.NearPS1, s.StellarPS1, s.StellarZTF)
}

// IsStellar decides if an object is a star.  The PS1 star/galaxy score
// decides when there is a PS1 source close by, otherwise the shape of the
// ZTF reference source.
func IsStellar(nearZTF, nearPS1, stellarPS1, stellarZTF bool) bool {
	return nearZTF && nearPS1 && stellarPS1 ||
		nearZTF && !nearPS1 && stellarZTF
}

// IsCorrected reports whether a detection is close enough to its reference
// source to be corrected.
func IsCorrected(distnr float64) bool {
	return distnr < DistanceThreshold
}

// IsDubious flags a detection whose correction is suspect: an uncorrected
// negative subtraction, or a correction status different from that of the
// first detection.
func IsDubious(corrected bool, sign lcdata.Sign, firstCorrected bool) bool {
	return !corrected && sign == lcdata.Negative ||
		firstCorrected && !corrected ||
		!firstCorrected && corrected
}

// 0 <= d < 1.4
func isNear(d float64) bool {
	return d >= 0 && d < DistanceThreshold
}

// chinr < 2, -.13 < sharpnr < .1
func isStellarShape(chinr, sharpnr float64) bool {
	return chinr < ChiNRThreshold && sharpnr > SharpNRMin && sharpnr < SharpNRMax
}
