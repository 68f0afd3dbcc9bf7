// Public domain.

// Package lcdata defines the records flowing through light curve correction:
// raw detections and non-detections as delivered by ingestion, detections
// enriched with corrected magnitudes, and the per-band, per-object and dm/dt
// summary records.
package lcdata

import (
	"cmp"
	"fmt"
	"math"
)

// ZeroMag is the serialized value of a degenerate correction, a magnitude
// too big to be physical.
const ZeroMag = 100.

// Band identifiers.
const (
	BandG = 1
	BandR = 2
)

// Sign is the sign of a difference image subtraction.
type Sign int

const (
	Negative Sign = -1
	Positive Sign = 1
)

// ParseSign maps an isdiffpos token to a Sign.
//
// Tokens "t" and "1" are positive subtractions, "f" and "0" negative.
// Anything else is a validation error.
func ParseSign(token string) (Sign, error) {
	switch token {
	case "t", "1":
		return Positive, nil
	case "f", "0":
		return Negative, nil
	}
	return 0, fmt.Errorf("%w: isdiffpos token %q", ErrValidation, token)
}

// Detection is one observation of an object in one band.
//
// Dates are modified Julian dates; ingestion converts from Julian dates.
type Detection struct {
	OID    string
	FID    int
	Candid int64 // arrival order, not time order
	MJD    float64

	MagPSF, SigmaPSF float64
	MagAp, SigmaGAp  float64
	MagNR, SigmaGNR  float64
	DistNR           float64
	IsDiffPos        string

	DistPSNR1, SGScore1 float64
	ChiNR, SharpNR      float64

	RFID      *int64 // nil when the alert carries no reference id
	MJDEndRef float64

	NDetHist, NCovHist       int
	MJDStartHist, MJDEndHist float64

	RA, Dec    float64
	DiffMagLim float64
	RB         float64
}

// Key returns the (object, band) key of the detection.
func (d *Detection) Key() BandKey { return BandKey{d.OID, d.FID} }

// NonDetection is an upper limit: nothing was detected brighter than
// DiffMagLim.
type NonDetection struct {
	OID        string
	FID        int
	MJD        float64
	DiffMagLim float64
}

// Key returns the (object, band) key of the non-detection.
func (n *NonDetection) Key() BandKey { return BandKey{n.OID, n.FID} }

// BandKey identifies an (object, band) group.
type BandKey struct {
	OID string
	FID int
}

func (k BandKey) String() string { return fmt.Sprintf("%s/%d", k.OID, k.FID) }

// Compare orders keys by object, then band.
func (k BandKey) Compare(o BandKey) int {
	if c := cmp.Compare(k.OID, o.OID); c != 0 {
		return c
	}
	return cmp.Compare(k.FID, o.FID)
}

// Status tags a corrected quantity.
type Status uint8

const (
	Valid         Status = iota
	NotApplicable        // correction undefined or not attempted
	Degenerate           // correction attempted, numerically meaningless
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case NotApplicable:
		return "n/a"
	case Degenerate:
		return "degenerate"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Value is a corrected quantity together with its status.
//
// V is meaningful only when Status is Valid.
type Value struct {
	V      float64
	Status Status
}

// Of returns a valid Value.
func Of(v float64) Value { return Value{V: v} }

// Values for the two non-valid statuses.
var (
	NA    = Value{Status: NotApplicable}
	Bogus = Value{Status: Degenerate}
)

// Float returns the serialized form: V, NaN for NotApplicable, or ZeroMag
// for Degenerate.
func (v Value) Float() float64 {
	switch v.Status {
	case Valid:
		return v.V
	case Degenerate:
		return ZeroMag
	}
	return math.NaN()
}

// Correction is the result of correcting one PSF magnitude.
type Correction struct {
	Mag, Sigma, SigmaExt Value
}

// NACorrection is the all NotApplicable correction.
var NACorrection = Correction{NA, NA, NA}

// BogusCorrection is the all Degenerate correction.
var BogusCorrection = Correction{Bogus, Bogus, Bogus}

// CorrectedDetection is a Detection enriched by the detection corrector.
type CorrectedDetection struct {
	Detection
	Sign      Sign
	Corrected bool
	Correction
	Dubious bool
}

// MagPSFCorr, SigmaPSFCorr and SigmaPSFCorrExt return serialized values.
func (c *CorrectedDetection) MagPSFCorr() float64      { return c.Mag.Float() }
func (c *CorrectedDetection) SigmaPSFCorr() float64    { return c.Sigma.Float() }
func (c *CorrectedDetection) SigmaPSFCorrExt() float64 { return c.SigmaExt.Float() }

// MagStats summarizes the corrected detections of one (object, band).
type MagStats struct {
	BandKey

	Corrected  bool // at the first detection by mjd
	NearZTF    bool
	NearPS1    bool
	StellarZTF bool
	StellarPS1 bool
	Stellar    bool

	NDet     int
	NDubious int
	NRFID    int

	MagPSFMean, MagPSFMedian, MagPSFMax, MagPSFMin float64
	SigmaPSF                                       float64 // std of MagPSF
	MagPSFFirst, SigmaPSFFirst, MagPSFLast         float64

	MagPSFCorrMean, MagPSFCorrMedian, MagPSFCorrMax, MagPSFCorrMin float64
	SigmaPSFCorr                                                   float64 // std of MagPSFCorr
	MagPSFCorrFirst, MagPSFCorrLast                                float64

	MagApMean, MagApMedian, MagApMax, MagApMin float64
	SigmaAp                                    float64 // std of MagAp
	MagApFirst, MagApLast                      float64

	FirstMJD, LastMJD float64

	SaturationRate float64 // NaN unless computed with flags
}

// ObjStats summarizes one object across bands.
type ObjStats struct {
	OID string

	NDetHist, NCovHist       int
	MJDStartHist, MJDEndHist float64

	MeanRA, MeanDec   float64
	SigmaRA, SigmaDec float64

	FirstMJD, LastMJD, DeltaMJD float64

	// computed with flags only
	Diffpos         bool
	ReferenceChange bool
	HasFlags        bool

	NearZTF, NearPS1, Stellar, Corrected bool
	NDet, NDubious                       int

	GRMax, GRMaxCorr, GRMean, GRMeanCorr float64

	StepID string
}

// DmDtStats bounds the rise rate of one (object, band) from its closest
// prior non-detection.
type DmDtStats struct {
	BandKey
	CloseNondet  bool
	DmDtFirst    float64
	DmFirst      float64
	SigmaDmFirst float64
	DtFirst      float64
}

// ObjectResult is everything computed for one object.
type ObjectResult struct {
	OID       string
	Corrected []CorrectedDetection // by band, then candid
	MagStats  []MagStats           // by band
	ObjStats  *ObjStats            // nil if any band failed
	DmDt      []DmDtStats          // by band
}

// Tables holds merged results of many objects, sorted by key.
type Tables struct {
	Corrected []CorrectedDetection
	MagStats  []MagStats
	ObjStats  []ObjStats
	DmDt      []DmDtStats
}
