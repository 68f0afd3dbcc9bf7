// Public domain.

package lcsolve_test

import "github.com/soniakeys/lccorr/internal/lcdata"

func rfid(id int64) *int64 { return &id }

// det makes a well behaved detection: corrected, positive, stellar.
func det(oid string, fid int, candid int64, mjd float64) lcdata.Detection {
	return lcdata.Detection{
		OID:          oid,
		FID:          fid,
		Candid:       candid,
		MJD:          mjd,
		MagPSF:       19,
		SigmaPSF:     .1,
		MagAp:        19.2,
		SigmaGAp:     .12,
		MagNR:        18,
		SigmaGNR:     .05,
		DistNR:       .5,
		IsDiffPos:    "t",
		DistPSNR1:    .3,
		SGScore1:     .9,
		ChiNR:        1,
		SharpNR:      0,
		RFID:         rfid(1),
		MJDEndRef:    mjd - 300,
		NDetHist:     int(candid),
		NCovHist:     2 * int(candid),
		MJDStartHist: mjd - 10,
		MJDEndHist:   mjd,
		RA:           150,
		Dec:          2,
		DiffMagLim:   20.5,
		RB:           .8,
	}
}

func nondet(oid string, fid int, mjd, lim float64) lcdata.NonDetection {
	return lcdata.NonDetection{OID: oid, FID: fid, MJD: mjd, DiffMagLim: lim}
}
