// Public domain.

// Package lcingest reads alert packets, one JSON object per line, and splits
// them into detections and non-detections.
//
// A packet carries the triggering candidate and the previous candidates of
// the object.  A previous candidate with no candid but with a diffmaglim is
// an upper limit, a non-detection.  All other candidates are detections.
// Julian dates are converted to modified Julian dates.
package lcingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/soniakeys/lccorr/astro"
	"github.com/soniakeys/lccorr/internal/lcdata"
)

// Packet is one alert.
type Packet struct {
	ObjectID      string      `json:"objectId"`
	Candid        *int64      `json:"candid"`
	Candidate     Candidate   `json:"candidate"`
	PrvCandidates []Candidate `json:"prv_candidates"`
}

// Candidate holds the fields of an alert candidate that are used here.
// Nullable fields are pointers; a null or missing value reads as NaN.
type Candidate struct {
	Candid      *int64   `json:"candid"`
	JD          float64  `json:"jd"`
	FID         int      `json:"fid"`
	MagPSF      *float64 `json:"magpsf"`
	SigmaPSF    *float64 `json:"sigmapsf"`
	MagAp       *float64 `json:"magap"`
	SigmaGAp    *float64 `json:"sigmagap"`
	MagNR       *float64 `json:"magnr"`
	SigmaGNR    *float64 `json:"sigmagnr"`
	DistNR      *float64 `json:"distnr"`
	IsDiffPos   *string  `json:"isdiffpos"`
	DistPSNR1   *float64 `json:"distpsnr1"`
	SGScore1    *float64 `json:"sgscore1"`
	ChiNR       *float64 `json:"chinr"`
	SharpNR     *float64 `json:"sharpnr"`
	RFID        *int64   `json:"rfid"`
	JDEndRef    *float64 `json:"jdendref"`
	NDetHist    int      `json:"ndethist"`
	NCovHist    int      `json:"ncovhist"`
	JDStartHist *float64 `json:"jdstarthist"`
	JDEndHist   *float64 `json:"jdendhist"`
	RA          *float64 `json:"ra"`
	Dec         *float64 `json:"dec"`
	DiffMagLim  *float64 `json:"diffmaglim"`
	RB          *float64 `json:"rb"`
}

func f(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func mjd(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return astro.MJD(*p)
}

// IsUpperLimit reports whether c is a non-detection.
func (c *Candidate) IsUpperLimit() bool {
	return c.Candid == nil && c.DiffMagLim != nil
}

// Detection converts c to a detection of object oid.
func (c *Candidate) Detection(oid string) (lcdata.Detection, error) {
	if c.Candid == nil {
		return lcdata.Detection{}, lcdata.Validationf("%s: candidate without candid", oid)
	}
	if c.FID <= 0 {
		return lcdata.Detection{}, lcdata.Validationf("%s: candidate %d fid %d", oid, *c.Candid, c.FID)
	}
	d := lcdata.Detection{
		OID:          oid,
		FID:          c.FID,
		Candid:       *c.Candid,
		MJD:          astro.MJD(c.JD),
		MagPSF:       f(c.MagPSF),
		SigmaPSF:     f(c.SigmaPSF),
		MagAp:        f(c.MagAp),
		SigmaGAp:     f(c.SigmaGAp),
		MagNR:        f(c.MagNR),
		SigmaGNR:     f(c.SigmaGNR),
		DistNR:       f(c.DistNR),
		DistPSNR1:    f(c.DistPSNR1),
		SGScore1:     f(c.SGScore1),
		ChiNR:        f(c.ChiNR),
		SharpNR:      f(c.SharpNR),
		RFID:         c.RFID,
		MJDEndRef:    mjd(c.JDEndRef),
		NDetHist:     c.NDetHist,
		NCovHist:     c.NCovHist,
		MJDStartHist: mjd(c.JDStartHist),
		MJDEndHist:   mjd(c.JDEndHist),
		RA:           f(c.RA),
		Dec:          f(c.Dec),
		DiffMagLim:   f(c.DiffMagLim),
		RB:           f(c.RB),
	}
	if c.IsDiffPos != nil {
		d.IsDiffPos = *c.IsDiffPos
	}
	return d, nil
}

// NonDetection converts c to a non-detection of object oid.
func (c *Candidate) NonDetection(oid string) lcdata.NonDetection {
	return lcdata.NonDetection{
		OID:        oid,
		FID:        c.FID,
		MJD:        astro.MJD(c.JD),
		DiffMagLim: f(c.DiffMagLim),
	}
}

// Records splits the packet into detections and non-detections, the
// triggering candidate first.
func (p *Packet) Records() ([]lcdata.Detection, []lcdata.NonDetection, error) {
	if p.ObjectID == "" {
		return nil, nil, lcdata.Validationf("packet without objectId")
	}
	c := p.Candidate
	if c.Candid == nil {
		c.Candid = p.Candid
	}
	d, err := c.Detection(p.ObjectID)
	if err != nil {
		return nil, nil, err
	}
	dets := []lcdata.Detection{d}
	var nds []lcdata.NonDetection
	for i := range p.PrvCandidates {
		pc := &p.PrvCandidates[i]
		if pc.IsUpperLimit() {
			nds = append(nds, pc.NonDetection(p.ObjectID))
			continue
		}
		d, err := pc.Detection(p.ObjectID)
		if err != nil {
			return nil, nil, err
		}
		dets = append(dets, d)
	}
	return dets, nds, nil
}

// Splitter returns a function that decodes successive packets from r.
// It returns io.EOF after the last packet.  Blank lines are skipped.
// Malformed lines are validation errors carrying the line number; the
// returned function may be called again to continue with the next line.
func Splitter(r io.Reader) func() (*Packet, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	return func() (*Packet, error) {
		for s.Scan() {
			line++
			b := s.Bytes()
			if len(b) == 0 || isBlank(b) {
				continue
			}
			p := new(Packet)
			if err := json.Unmarshal(b, p); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", lcdata.ErrValidation, line, err)
			}
			return p, nil
		}
		if err := s.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}

type ndKey struct {
	oid string
	fid int
	mjd float64
}

// Collector accumulates the records of many packets.  Alerts of one object
// repeat its history, so detections are kept once per candid and
// non-detections once per (object, band, mjd).  The first copy seen wins.
type Collector struct {
	dets   []lcdata.Detection
	nds    []lcdata.NonDetection
	seenD  map[int64]bool
	seenND map[ndKey]bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seenD: map[int64]bool{}, seenND: map[ndKey]bool{}}
}

// Add adds the records of p.
func (c *Collector) Add(p *Packet) error {
	dets, nds, err := p.Records()
	if err != nil {
		return err
	}
	for _, d := range dets {
		if !c.seenD[d.Candid] {
			c.seenD[d.Candid] = true
			c.dets = append(c.dets, d)
		}
	}
	for _, nd := range nds {
		k := ndKey{nd.OID, nd.FID, nd.MJD}
		if !c.seenND[k] {
			c.seenND[k] = true
			c.nds = append(c.nds, nd)
		}
	}
	return nil
}

// Detections returns the distinct detections in order of arrival.
func (c *Collector) Detections() []lcdata.Detection { return c.dets }

// NonDetections returns the distinct non-detections in order of arrival.
func (c *Collector) NonDetections() []lcdata.NonDetection { return c.nds }

// ReadAll reads every packet of r.  With skipBad, invalid packets are
// passed to onSkip, if not nil, and reading continues; otherwise the first
// invalid packet stops reading.
func ReadAll(r io.Reader, skipBad bool, onSkip func(error)) (*Collector, error) {
	c := NewCollector()
	next := Splitter(r)
	for {
		p, err := next()
		if err == io.EOF {
			return c, nil
		}
		if err == nil {
			err = c.Add(p)
		}
		if err == nil {
			continue
		}
		if !skipBad || !errors.Is(err, lcdata.ErrValidation) {
			return c, err
		}
		if onSkip != nil {
			onSkip(err)
		}
	}
}
