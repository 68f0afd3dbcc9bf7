// Public domain.

package lcprog

import (
	"fmt"
	"io"
	"math"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/lccorr/internal/lcdata"
)

func printHeadings(w io.Writer) {
	fmt.Fprintln(w, "object        ndet  RA            Dec            sRA\"   sDec\"  deltamjd stellar  g-r")
}

// reportLine formats one object.  Position scatter is in arc seconds,
// colors are from mean corrected magnitudes when available.
func reportLine(o *lcdata.ObjStats) string {
	ol := fmt.Sprintf("%-12s %5d", o.OID, o.NDet)
	if math.IsNaN(o.MeanRA) || math.IsNaN(o.MeanDec) {
		ol += "  ************  *************"
	} else {
		ol = fmt.Sprintf("%s  %12.2d  %+13.1d", ol,
			sexa.FmtRA(unit.RAFromDeg(o.MeanRA)),
			sexa.FmtAngle(unit.AngleFromDeg(o.MeanDec)))
	}
	ol += " " + arcsec(o.SigmaRA) + " " + arcsec(o.SigmaDec)
	ol += fmt.Sprintf(" %8.3f", o.DeltaMJD)
	if o.Stellar {
		ol += " yes    "
	} else {
		ol += " no     "
	}
	gr := o.GRMeanCorr
	if math.IsNaN(gr) {
		gr = o.GRMean
	}
	if math.IsNaN(gr) {
		return ol + "     -"
	}
	return ol + fmt.Sprintf(" %6.3f", gr)
}

func arcsec(deg float64) string {
	if math.IsNaN(deg) {
		return "     -"
	}
	if s := fmt.Sprintf("%6.2f", unit.AngleFromDeg(deg).Sec()); len(s) == 6 {
		return s
	}
	return " **.**"
}
