// Public domain.

package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"
)

const versionString = "mcc version 0.2"
const copyrightString = "Public domain."

// stellar column of lccorr run output
const defaultColumn = 7

func main() {
	defer exit.Handler()
	if err := command().Execute(); err != nil {
		exit.Log(err)
	}
}

func command() *cobra.Command {
	var col int
	var vers bool
	cmd := &cobra.Command{
		Use:           "mcc [options] <in-class> <out-of-class> [threshold]",
		Short:         "Matthews correlation coefficient of lccorr classifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if vers {
				return nil
			}
			return cobra.RangeArgs(2, 3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if vers {
				fmt.Fprintln(out, versionString)
				fmt.Fprintln(out, copyrightString)
				return nil
			}
			threshold := .5
			thresholdPrec := 1
			if len(args) == 3 {
				tStr := args[2]
				var err error
				threshold, err = strconv.ParseFloat(tStr, 64)
				if err != nil {
					return fmt.Errorf("bad threshold: %w", err)
				}
				thresholdPrec = 0
				if p := strings.Index(tStr, "."); p >= 0 {
					thresholdPrec = len(tStr) - p - 1
				}
			}
			in, err := countFile(args[0], col, threshold)
			if err != nil {
				return fmt.Errorf("in-class file: %w", err)
			}
			outOf, err := countFile(args[1], col, threshold)
			if err != nil {
				return fmt.Errorf("out-of-class file: %w", err)
			}
			tp, fn, fp, tn := in.ge, in.lt, outOf.ge, outOf.lt
			fmt.Fprintln(out, "\nIn-class file:     ", args[0])
			fmt.Fprintln(out, "Out-of-class file: ", args[1])
			fmt.Fprintln(out, "Total objects:     ", tp+fn+fp+tn)
			if ignored := in.ignored + outOf.ignored; ignored != 0 {
				fmt.Fprintln(out, "Lines ignored:     ", ignored)
			}
			fmt.Fprintf(out, "Threshold:          %.*f\n", thresholdPrec, threshold)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "                       lccorr prediction")
			fmt.Fprintln(out, "                    -----------------------")
			fmt.Fprintln(out, "                     in-class  out-of-class")
			fmt.Fprintf(out, "Actual in-class       %7d       %7d\n", tp, fn)
			fmt.Fprintf(out, "Actual out-of-class   %7d       %7d\n", fp, tn)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Matthews correlation coefficient: %.2f\n", mcc(tp, fn, fp, tn))
			return nil
		},
	}
	cmd.Flags().IntVarP(&col, "column", "c", defaultColumn, "column containing class score")
	cmd.Flags().BoolVarP(&vers, "version", "v", false, "display version and copyright")
	return cmd
}

// mcc is zero when any marginal total is zero.
func mcc(tp, fn, fp, tn int) float64 {
	tpf := float64(tp)
	fnf := float64(fn)
	fpf := float64(fp)
	tnf := float64(tn)
	if d := (tpf + fpf) * (tpf + fnf) * (tnf + fpf) * (tnf + fnf); d > 0 {
		return (tpf*tnf - fpf*fnf) / math.Sqrt(d)
	}
	return 0
}

type counts struct {
	ge, lt, ignored int
}

func countFile(fn string, col int, threshold float64) (counts, error) {
	f, err := os.Open(fn)
	if err != nil {
		return counts{}, err
	}
	defer f.Close()
	return count(f, col, threshold)
}

// count classifies lines by the score in column col.  Scores are numbers
// or yes/no, read as 1/0.  Lines without a score are ignored.
func count(r io.Reader, col int, threshold float64) (c counts, err error) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		f := strings.Fields(s.Text())
		if len(f) <= col {
			c.ignored++
			continue
		}
		score, ok := parseScore(f[col])
		if !ok {
			c.ignored++
			continue
		}
		if score >= threshold {
			c.ge++
		} else {
			c.lt++
		}
	}
	return c, s.Err()
}

func parseScore(s string) (float64, bool) {
	switch s {
	case "yes":
		return 1, true
	case "no":
		return 0, true
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) {
		return 0, false
	}
	return x, true
}
