// Public domain.

// Package lcprog is the lccorr command.
package lcprog

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcmath"
)

const versionString = "lccorr version 0.1 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()

	if err := NewCommand().Execute(); err != nil {
		exit.Log(err)
	}
}

// program state shared by the commands
type program struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	log     *slog.Logger
}

// NewCommand returns the root command with its own configuration.
func NewCommand() *cobra.Command {
	p := &program{v: viper.New()}
	root := &cobra.Command{
		Use:           "lccorr",
		Short:         "Correct and summarize ZTF light curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(p.v, p.cfgFile, &p.cfg); err != nil {
				return err
			}
			log, err := newLogger(cmd.ErrOrStderr(), p.cfg.Log.Level, p.cfg.Log.Format)
			if err != nil {
				return err
			}
			p.log = log
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&p.cfgFile, "config", "", "config file (default ./lccorr.yaml if present)")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.String("log-format", "text", "text or json")
	mustBind(p.v, "log.level", pf, "log-level")
	mustBind(p.v, "log.format", pf, "log-format")

	root.AddCommand(p.runCommand(), correctCommand(), versionCommand())
	return root
}

// mustBind binds a config key to a flag.  It fails only on a nil flag,
// a programming error.
func mustBind(v *viper.Viper, key string, fs *pflag.FlagSet, name string) {
	if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
		panic(err)
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and copyright",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString)
			fmt.Fprintln(cmd.OutOrStdout(), copyrightString)
		},
	}
}

func correctCommand() *cobra.Command {
	var magnr, magpsf, sigmagnr, sigmapsf float64
	var isdiffpos string
	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Correct one difference magnitude",
		Long: `Correct one difference image PSF magnitude for the flux of the
nearest reference source.  Prints the corrected magnitude, its uncertainty
and its extended source uncertainty.  NaN means the correction does not
apply; 100 means the fluxes cancel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lcdata.ParseSign(isdiffpos)
			if err != nil {
				return err
			}
			c, err := lcmath.Correct(magnr, magpsf, sigmagnr, sigmapsf, s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f %.4f %.4f\n",
				c.Mag.Float(), c.Sigma.Float(), c.SigmaExt.Float())
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&magnr, "magnr", 0, "magnitude of nearest reference source")
	f.Float64Var(&magpsf, "magpsf", 0, "difference image PSF magnitude")
	f.Float64Var(&sigmagnr, "sigmagnr", 0, "uncertainty of magnr")
	f.Float64Var(&sigmapsf, "sigmapsf", 0, "uncertainty of magpsf")
	f.StringVar(&isdiffpos, "isdiffpos", "t", "t or 1 positive subtraction, f or 0 negative")
	for _, n := range []string{"magnr", "magpsf", "sigmagnr", "sigmapsf"} {
		if err := cmd.MarkFlagRequired(n); err != nil {
			panic(err)
		}
	}
	return cmd
}

// open returns the input named by fn, "-" for r.
func open(fn string, r io.Reader) (io.ReadCloser, error) {
	if fn == "-" {
		return io.NopCloser(r), nil
	}
	return os.Open(fn)
}
