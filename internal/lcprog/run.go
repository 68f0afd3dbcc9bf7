// Public domain.

package lcprog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/soniakeys/lccorr/astro"
	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcdrive"
	"github.com/soniakeys/lccorr/internal/lcingest"
	"github.com/soniakeys/lccorr/internal/lcmath"
	"github.com/soniakeys/lccorr/internal/lcsolve"
	"github.com/soniakeys/lccorr/internal/lcstore"
)

func (p *program) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <alerts.jsonl | ->",
		Short: "Correct and summarize the objects of an alert file",
		Long: `Read alert packets, one JSON object per line, correct every
detection, compute per band, per object and dm/dt statistics, optionally
store the tables in a SQLite database, and print one line per object.
Use - to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := open(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()
			return p.run(cmd.Context(), in, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Float64("dt-min", lcsolve.DefaultDtMin, "days before first detection in which a non-detection is too close")
	f.Bool("flags", true, "compute diffpos, reference change and saturation rate")
	f.String("step-id", lcsolve.DefaultStepID, "step id recorded in objstats")
	f.Int("workers", 0, "concurrent objects, 0 for one per CPU")
	f.Bool("fail-fast", false, "stop at the first failed object")
	f.Bool("skip-invalid", false, "log and skip invalid alert packets")
	f.String("store", "", "SQLite database for the result tables")
	f.String("metrics-textfile", "", "write Prometheus metrics to this file")
	mustBind(p.v, "correction.dt_min", f, "dt-min")
	mustBind(p.v, "correction.flags", f, "flags")
	mustBind(p.v, "correction.step_id", f, "step-id")
	mustBind(p.v, "driver.workers", f, "workers")
	mustBind(p.v, "driver.fail_fast", f, "fail-fast")
	mustBind(p.v, "ingest.skip_invalid", f, "skip-invalid")
	mustBind(p.v, "store.path", f, "store")
	mustBind(p.v, "metrics.textfile", f, "metrics-textfile")
	return cmd
}

// run is the whole pipeline: ingest, solve, store, report.
func (p *program) run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg := &p.cfg
	reg := prometheus.NewRegistry()
	metrics, err := lcdrive.NewMetrics(reg)
	if err != nil {
		return err
	}

	col, err := p.ingest(ctx, in)
	if err != nil {
		return err
	}
	groups, orphans := lcdrive.GroupByObject(col.Detections(), col.NonDetections())
	if len(orphans) > 0 {
		p.log.Warn("non-detections of objects without detections ignored", "count", len(orphans))
	}
	p.log.Info("ingested",
		"objects", len(groups),
		"detections", len(col.Detections()),
		"non_detections", len(col.NonDetections()))

	engine := &lcmath.Engine{
		Log:     p.log.With("module", "correction"),
		OnFault: metrics.Fault,
	}
	solver := lcsolve.New(engine, lcsolve.Options{
		DtMin:  &cfg.Correction.DtMin,
		Flags:  cfg.Correction.Flags,
		StepID: cfg.Correction.StepID,
	})
	driver := lcdrive.New(solver, lcdrive.Options{
		Workers:  cfg.Driver.Workers,
		FailFast: cfg.Driver.FailFast,
		Log:      p.log.With("module", "driver"),
		Metrics:  metrics,
	})
	results, runErr := driver.Run(ctx, groups)
	tables, failed := lcdrive.Merge(results)
	if len(failed) > 0 {
		p.log.Warn("objects failed", "count", len(failed), "solved", len(tables.ObjStats))
	}
	if len(tables.ObjStats) > 0 {
		first := make([]float64, len(tables.ObjStats))
		last := make([]float64, len(tables.ObjStats))
		for i := range tables.ObjStats {
			first[i], last[i] = tables.ObjStats[i].FirstMJD, tables.ObjStats[i].LastMJD
		}
		p.log.Info("solved",
			"objects", len(tables.ObjStats),
			"detections", len(tables.Corrected),
			"from", astro.MJDToTime(lcmath.Min(first)),
			"to", astro.MJDToTime(lcmath.Max(last)))
	}

	if cfg.Store.Path != "" {
		if err := p.save(ctx, &tables); err != nil {
			return err
		}
	}
	if cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	printHeadings(out)
	for i := range tables.ObjStats {
		fmt.Fprintln(out, reportLine(&tables.ObjStats[i]))
	}
	return runErr
}

// ingest reads packets on one goroutine and collects records on another.
func (p *program) ingest(ctx context.Context, in io.Reader) (*lcingest.Collector, error) {
	skip := func(err error) bool {
		if !p.cfg.Ingest.SkipInvalid || !errors.Is(err, lcdata.ErrValidation) {
			return false
		}
		p.log.Warn("alert skipped", "error", err)
		return true
	}
	g, gctx := errgroup.WithContext(ctx)
	packets := make(chan *lcingest.Packet, 64)
	g.Go(func() error {
		defer close(packets)
		for next := lcingest.Splitter(in); ; {
			pk, err := next()
			switch {
			case err == io.EOF:
				return nil
			case err != nil:
				if skip(err) {
					continue
				}
				return err
			}
			select {
			case packets <- pk:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	col := lcingest.NewCollector()
	g.Go(func() error {
		for pk := range packets {
			if err := col.Add(pk); err != nil && !skip(err) {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return col, nil
}

func (p *program) save(ctx context.Context, t *lcdata.Tables) (err error) {
	s, err := lcstore.Open(p.cfg.Store.Path, p.log.With("module", "store"))
	if err != nil {
		return err
	}
	defer func() {
		if cErr := s.Close(); err == nil {
			err = cErr
		}
	}()
	return s.Save(ctx, t)
}
