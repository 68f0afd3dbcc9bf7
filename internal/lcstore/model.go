// Public domain.

package lcstore

import (
	"math"

	"github.com/soniakeys/lccorr/internal/lcdata"
)

// Detection is a row of the detections table.
type Detection struct {
	Candid          int64  `gorm:"primaryKey;autoIncrement:false"`
	OID             string `gorm:"column:oid;index:idx_detections_oid_fid"`
	FID             int    `gorm:"column:fid;index:idx_detections_oid_fid"`
	MJD             float64
	MagPSF          *float64 `gorm:"column:magpsf"`
	SigmaPSF        *float64 `gorm:"column:sigmapsf"`
	MagAp           *float64 `gorm:"column:magap"`
	SigmaGAp        *float64 `gorm:"column:sigmagap"`
	MagNR           *float64 `gorm:"column:magnr"`
	SigmaGNR        *float64 `gorm:"column:sigmagnr"`
	DistNR          *float64 `gorm:"column:distnr"`
	IsDiffPos       int      `gorm:"column:isdiffpos"`
	RFID            *int64   `gorm:"column:rfid"`
	RA              *float64 `gorm:"column:ra"`
	Dec             *float64 `gorm:"column:dec"`
	DiffMagLim      *float64 `gorm:"column:diffmaglim"`
	RB              *float64 `gorm:"column:rb"`
	Corrected       bool
	Dubious         bool
	MagPSFCorr      *float64 `gorm:"column:magpsf_corr"`
	SigmaPSFCorr    *float64 `gorm:"column:sigmapsf_corr"`
	SigmaPSFCorrExt *float64 `gorm:"column:sigmapsf_corr_ext"`
}

// MagStat is a row of the magstats table.
type MagStat struct {
	OID              string `gorm:"column:oid;primaryKey"`
	FID              int    `gorm:"column:fid;primaryKey;autoIncrement:false"`
	Corrected        bool
	NearZTF          bool `gorm:"column:nearztf"`
	NearPS1          bool `gorm:"column:nearps1"`
	StellarZTF       bool `gorm:"column:stellarztf"`
	StellarPS1       bool `gorm:"column:stellarps1"`
	Stellar          bool
	NDet             int      `gorm:"column:ndet"`
	NDubious         int      `gorm:"column:ndubious"`
	NRFID            int      `gorm:"column:nrfid"`
	MagPSFMean       *float64 `gorm:"column:magpsf_mean"`
	MagPSFMedian     *float64 `gorm:"column:magpsf_median"`
	MagPSFMax        *float64 `gorm:"column:magpsf_max"`
	MagPSFMin        *float64 `gorm:"column:magpsf_min"`
	SigmaMag         *float64 `gorm:"column:sigmapsf"`
	MagPSFFirst      *float64 `gorm:"column:magpsf_first"`
	SigmaPSFFirst    *float64 `gorm:"column:sigmapsf_first"`
	MagPSFLast       *float64 `gorm:"column:magpsf_last"`
	MagPSFCorrMean   *float64 `gorm:"column:magpsf_corr_mean"`
	MagPSFCorrMedian *float64 `gorm:"column:magpsf_corr_median"`
	MagPSFCorrMax    *float64 `gorm:"column:magpsf_corr_max"`
	MagPSFCorrMin    *float64 `gorm:"column:magpsf_corr_min"`
	SigmaMagCorr     *float64 `gorm:"column:sigmapsf_corr"`
	MagPSFCorrFirst  *float64 `gorm:"column:magpsf_corr_first"`
	MagPSFCorrLast   *float64 `gorm:"column:magpsf_corr_last"`
	MagApMean        *float64 `gorm:"column:magap_mean"`
	MagApMedian      *float64 `gorm:"column:magap_median"`
	MagApMax         *float64 `gorm:"column:magap_max"`
	MagApMin         *float64 `gorm:"column:magap_min"`
	SigmaAp          *float64 `gorm:"column:sigmap"`
	MagApFirst       *float64 `gorm:"column:magap_first"`
	MagApLast        *float64 `gorm:"column:magap_last"`
	FirstMJD         *float64 `gorm:"column:first_mjd"`
	LastMJD          *float64 `gorm:"column:last_mjd"`
	SaturationRate   *float64 `gorm:"column:saturation_rate"`
}

// ObjStat is a row of the objstats table.
type ObjStat struct {
	OID             string   `gorm:"column:oid;primaryKey"`
	NDetHist        int      `gorm:"column:ndethist"`
	NCovHist        int      `gorm:"column:ncovhist"`
	MJDStartHist    *float64 `gorm:"column:mjdstarthist"`
	MJDEndHist      *float64 `gorm:"column:mjdendhist"`
	MeanRA          *float64 `gorm:"column:meanra"`
	MeanDec         *float64 `gorm:"column:meandec"`
	SigmaRA         *float64 `gorm:"column:sigmara"`
	SigmaDec        *float64 `gorm:"column:sigmadec"`
	FirstMJD        *float64 `gorm:"column:firstmjd"`
	LastMJD         *float64 `gorm:"column:lastmjd"`
	DeltaMJD        *float64 `gorm:"column:deltamjd"`
	Diffpos         *bool
	ReferenceChange *bool
	NearZTF         bool `gorm:"column:nearztf"`
	NearPS1         bool `gorm:"column:nearps1"`
	Stellar         bool
	Corrected       bool
	NDet            int      `gorm:"column:ndet"`
	NDubious        int      `gorm:"column:ndubious"`
	GRMax           *float64 `gorm:"column:g_r_max"`
	GRMaxCorr       *float64 `gorm:"column:g_r_max_corr"`
	GRMean          *float64 `gorm:"column:g_r_mean"`
	GRMeanCorr      *float64 `gorm:"column:g_r_mean_corr"`
	StepID          string   `gorm:"column:step_id_corr"`
}

// DmDt is a row of the dmdt table.
type DmDt struct {
	OID          string   `gorm:"column:oid;primaryKey"`
	FID          int      `gorm:"column:fid;primaryKey;autoIncrement:false"`
	CloseNondet  bool     `gorm:"column:close_nondet"`
	DmDtFirst    *float64 `gorm:"column:dmdt_first"`
	DmFirst      *float64 `gorm:"column:dm_first"`
	SigmaDmFirst *float64 `gorm:"column:sigmadm_first"`
	DtFirst      *float64 `gorm:"column:dt_first"`
}

func (Detection) TableName() string { return "detections" }
func (MagStat) TableName() string   { return "magstats" }
func (ObjStat) TableName() string   { return "objstats" }
func (DmDt) TableName() string      { return "dmdt" }

// null maps NaN to NULL.
func null(x float64) *float64 {
	if math.IsNaN(x) {
		return nil
	}
	return &x
}

// Float reads a nullable column back, NULL as NaN.
func Float(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func detectionRow(c *lcdata.CorrectedDetection) Detection {
	return Detection{
		Candid:          c.Candid,
		OID:             c.OID,
		FID:             c.FID,
		MJD:             c.MJD,
		MagPSF:          null(c.MagPSF),
		SigmaPSF:        null(c.SigmaPSF),
		MagAp:           null(c.MagAp),
		SigmaGAp:        null(c.SigmaGAp),
		MagNR:           null(c.MagNR),
		SigmaGNR:        null(c.SigmaGNR),
		DistNR:          null(c.DistNR),
		IsDiffPos:       int(c.Sign),
		RFID:            c.RFID,
		RA:              null(c.RA),
		Dec:             null(c.Dec),
		DiffMagLim:      null(c.DiffMagLim),
		RB:              null(c.RB),
		Corrected:       c.Corrected,
		Dubious:         c.Dubious,
		MagPSFCorr:      null(c.MagPSFCorr()),
		SigmaPSFCorr:    null(c.SigmaPSFCorr()),
		SigmaPSFCorrExt: null(c.SigmaPSFCorrExt()),
	}
}

func magStatRow(m *lcdata.MagStats) MagStat {
	return MagStat{
		OID:              m.OID,
		FID:              m.FID,
		Corrected:        m.Corrected,
		NearZTF:          m.NearZTF,
		NearPS1:          m.NearPS1,
		StellarZTF:       m.StellarZTF,
		StellarPS1:       m.StellarPS1,
		Stellar:          m.Stellar,
		NDet:             m.NDet,
		NDubious:         m.NDubious,
		NRFID:            m.NRFID,
		MagPSFMean:       null(m.MagPSFMean),
		MagPSFMedian:     null(m.MagPSFMedian),
		MagPSFMax:        null(m.MagPSFMax),
		MagPSFMin:        null(m.MagPSFMin),
		SigmaMag:         null(m.SigmaPSF),
		MagPSFFirst:      null(m.MagPSFFirst),
		SigmaPSFFirst:    null(m.SigmaPSFFirst),
		MagPSFLast:       null(m.MagPSFLast),
		MagPSFCorrMean:   null(m.MagPSFCorrMean),
		MagPSFCorrMedian: null(m.MagPSFCorrMedian),
		MagPSFCorrMax:    null(m.MagPSFCorrMax),
		MagPSFCorrMin:    null(m.MagPSFCorrMin),
		SigmaMagCorr:     null(m.SigmaPSFCorr),
		MagPSFCorrFirst:  null(m.MagPSFCorrFirst),
		MagPSFCorrLast:   null(m.MagPSFCorrLast),
		MagApMean:        null(m.MagApMean),
		MagApMedian:      null(m.MagApMedian),
		MagApMax:         null(m.MagApMax),
		MagApMin:         null(m.MagApMin),
		SigmaAp:          null(m.SigmaAp),
		MagApFirst:       null(m.MagApFirst),
		MagApLast:        null(m.MagApLast),
		FirstMJD:         null(m.FirstMJD),
		LastMJD:          null(m.LastMJD),
		SaturationRate:   null(m.SaturationRate),
	}
}

func objStatRow(o *lcdata.ObjStats) ObjStat {
	r := ObjStat{
		OID:          o.OID,
		NDetHist:     o.NDetHist,
		NCovHist:     o.NCovHist,
		MJDStartHist: null(o.MJDStartHist),
		MJDEndHist:   null(o.MJDEndHist),
		MeanRA:       null(o.MeanRA),
		MeanDec:      null(o.MeanDec),
		SigmaRA:      null(o.SigmaRA),
		SigmaDec:     null(o.SigmaDec),
		FirstMJD:     null(o.FirstMJD),
		LastMJD:      null(o.LastMJD),
		DeltaMJD:     null(o.DeltaMJD),
		NearZTF:      o.NearZTF,
		NearPS1:      o.NearPS1,
		Stellar:      o.Stellar,
		Corrected:    o.Corrected,
		NDet:         o.NDet,
		NDubious:     o.NDubious,
		GRMax:        null(o.GRMax),
		GRMaxCorr:    null(o.GRMaxCorr),
		GRMean:       null(o.GRMean),
		GRMeanCorr:   null(o.GRMeanCorr),
		StepID:       o.StepID,
	}
	if o.HasFlags {
		diffpos, change := o.Diffpos, o.ReferenceChange
		r.Diffpos, r.ReferenceChange = &diffpos, &change
	}
	return r
}

func dmdtRow(d *lcdata.DmDtStats) DmDt {
	return DmDt{
		OID:          d.OID,
		FID:          d.FID,
		CloseNondet:  d.CloseNondet,
		DmDtFirst:    null(d.DmDtFirst),
		DmFirst:      null(d.DmFirst),
		SigmaDmFirst: null(d.SigmaDmFirst),
		DtFirst:      null(d.DtFirst),
	}
}
