// Public domain.

package lcprog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/soniakeys/lccorr/internal/lcsolve"
)

// Config is the program configuration.  Values come from, in increasing
// precedence, defaults, the config file, LCCORR_ environment variables
// and command line flags.
type Config struct {
	Correction struct {
		DtMin  float64 `mapstructure:"dt_min"`
		Flags  bool    `mapstructure:"flags"`
		StepID string  `mapstructure:"step_id"`
	} `mapstructure:"correction"`
	Driver struct {
		Workers  int  `mapstructure:"workers"`
		FailFast bool `mapstructure:"fail_fast"`
	} `mapstructure:"driver"`
	Ingest struct {
		SkipInvalid bool `mapstructure:"skip_invalid"`
	} `mapstructure:"ingest"`
	Store struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"store"`
	Metrics struct {
		Textfile string `mapstructure:"textfile"`
	} `mapstructure:"metrics"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("correction.dt_min", lcsolve.DefaultDtMin)
	v.SetDefault("correction.flags", true)
	v.SetDefault("correction.step_id", lcsolve.DefaultStepID)
	v.SetDefault("driver.workers", 0)
	v.SetDefault("driver.fail_fast", false)
	v.SetDefault("ingest.skip_invalid", false)
	v.SetDefault("store.path", "")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// loadConfig reads configuration into cfg.  With file empty, lccorr.yaml
// in the working directory is read if present.
func loadConfig(v *viper.Viper, file string, cfg *Config) error {
	setDefaults(v)
	v.SetEnvPrefix("LCCORR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lccorr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Correction.DtMin < 0 {
		return fmt.Errorf("correction.dt_min %g is negative", cfg.Correction.DtMin)
	}
	return nil
}

// newLogger creates the program logger.  Format is "text" or "json".
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	opt := &slog.HandlerOptions{Level: l}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opt)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opt)), nil
	}
	return nil, fmt.Errorf("log.format %q: want text or json", format)
}
