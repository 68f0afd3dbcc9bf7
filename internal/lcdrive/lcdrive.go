// Public domain.

// Package lcdrive groups detections by object and solves the objects
// concurrently.
package lcdrive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/soniakeys/lccorr/internal/lcdata"
	"github.com/soniakeys/lccorr/internal/lcsolve"
)

// Group is everything known about one object.
type Group struct {
	OID           string
	Detections    []lcdata.Detection
	NonDetections []lcdata.NonDetection
}

// GroupByObject groups records by object, in order of first detection.
// Records keep their input order within a group.  Non-detections of
// objects without detections are returned separately.
func GroupByObject(dets []lcdata.Detection, nds []lcdata.NonDetection) (groups []Group, orphans []lcdata.NonDetection) {
	index := map[string]int{}
	for _, d := range dets {
		x, ok := index[d.OID]
		if !ok {
			x = len(groups)
			index[d.OID] = x
			groups = append(groups, Group{OID: d.OID})
		}
		groups[x].Detections = append(groups[x].Detections, d)
	}
	for _, nd := range nds {
		x, ok := index[nd.OID]
		if !ok {
			orphans = append(orphans, nd)
			continue
		}
		groups[x].NonDetections = append(groups[x].NonDetections, nd)
	}
	return
}

// Result is the outcome of solving one group.  Err, when not nil, is
// usually a *lcdata.GroupError, or several joined.  Value may then still
// hold the rows of bands that succeeded.
type Result struct {
	OID   string
	Value lcdata.ObjectResult
	Err   error
}

// Options configure a Driver.
type Options struct {
	Workers  int  // runtime.GOMAXPROCS(0) if not positive
	FailFast bool // stop dispatching after the first failed group
	Log      *slog.Logger
	Metrics  *Metrics
}

// Driver solves groups with a bounded pool of workers.
type Driver struct {
	solver   *lcsolve.Solver
	workers  int
	failFast bool
	log      *slog.Logger
	metrics  *Metrics
}

// New creates a Driver.
func New(solver *lcsolve.Solver, opt Options) *Driver {
	d := &Driver{
		solver:   solver,
		workers:  opt.Workers,
		failFast: opt.FailFast,
		log:      opt.Log,
		metrics:  opt.Metrics,
	}
	if d.workers <= 0 {
		d.workers = runtime.GOMAXPROCS(0)
	}
	if d.log == nil {
		d.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

type ticket struct {
	g   *Group
	rch chan Result
}

// Run solves groups and returns their results in group order.
//
// A failed group does not stop the others unless the driver is fail-fast;
// then Run returns the results so far with the first error.  If ctx is
// cancelled Run returns the results so far with ctx.Err().
func (d *Driver) Run(ctx context.Context, groups []Group) ([]Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// prCh keeps results in submission order.  each group gets a return
	// channel, a ticket for picking up its result.  the buffer lets fast
	// workers drop off results without waiting on a slow one ahead.
	prCh := make(chan chan Result, d.workers*2)
	seqCh := make(chan ticket)

	// dispatcher
	go func() {
		defer close(prCh)
		defer close(seqCh)
		for i := range groups {
			rch := make(chan Result, 1)
			select {
			case seqCh <- ticket{&groups[i], rch}:
			case <-runCtx.Done():
				return
			}
			prCh <- rch
		}
	}()

	// no more workers than groups
	var wg sync.WaitGroup
	for range min(d.workers, len(groups)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range seqCh {
				t.rch <- d.solve(t.g) // buffered
			}
		}()
	}

	results := make([]Result, 0, len(groups))
	var firstErr error
	for rch := range prCh {
		r := <-rch
		results = append(results, r)
		if r.Err != nil && d.failFast && firstErr == nil {
			firstErr = r.Err
			cancel()
		}
	}
	wg.Wait()
	if firstErr != nil {
		return results, firstErr
	}
	return results, ctx.Err()
}

// solve isolates one group: a panic becomes that group's error.
func (d *Driver) solve(g *Group) (r Result) {
	start := time.Now()
	r.OID = g.OID
	defer func() {
		if p := recover(); p != nil {
			r = Result{OID: g.OID, Err: &lcdata.GroupError{OID: g.OID, Err: fmt.Errorf("panic: %v", p)}}
		}
		if r.Err != nil {
			d.log.Warn("object failed", "oid", g.OID, "error", r.Err)
		}
		d.metrics.observe(&r, time.Since(start).Seconds())
	}()
	r.Value, r.Err = d.solver.Solve(g.OID, g.Detections, g.NonDetections)
	return
}

// Merge folds results into tables sorted by key, and collects the errors
// of the failed ones.  The bands that succeeded in a partly failed object
// are kept.
func Merge(results []Result) (lcdata.Tables, []error) {
	values := make([]lcdata.ObjectResult, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
		values = append(values, r.Value)
	}
	return lcsolve.Merge(values), errs
}
