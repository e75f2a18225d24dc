package codegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"guardgen/internal/selection"
	"guardgen/internal/sleigh"
)

// Options control a batch run.
type Options struct {
	// KeepGoing skips constructors that fail instead of aborting the run.
	KeepGoing bool
	// Jobs bounds the number of constructors rendered concurrently.
	// Values below 2 render sequentially.
	Jobs int
}

// Failure records a constructor skipped under KeepGoing.
type Failure struct {
	Mnemonic string
	Err      error
}

// Report summarizes a batch run.
type Report struct {
	Model    string
	Results  []Result
	Failures []Failure
}

// Placeholders returns the number of untranslated conditions.
func (r *Report) Placeholders() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Placeholders)
	}
	return n
}

type rendered struct {
	buf bytes.Buffer
	res Result
	err error
}

// Generate writes the guard code of every selected constructor of the
// instruction table to w, in table order. A selection that does not match
// the model fails before anything is written. Without KeepGoing the first
// constructor error aborts the run, again before any output.
func (g *Generator) Generate(ctx context.Context, w io.Writer, sel selection.Set, opts Options) (*Report, error) {
	tbl, err := g.model.Instructions()
	if err != nil {
		return nil, err
	}
	cs, err := sel.Match(tbl)
	if err != nil {
		return nil, err
	}
	g.logger.Info("generating", "model", g.model.Name, "constructors", len(cs), "jobs", max(opts.Jobs, 1))

	out := make([]rendered, len(cs))
	if opts.Jobs > 1 {
		err = g.renderParallel(ctx, cs, out, opts)
	} else {
		err = g.renderSequential(ctx, cs, out, opts)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{Model: g.model.Name}
	var errs []error
	for i := range out {
		r := &out[i]
		if r.err != nil {
			report.Failures = append(report.Failures, Failure{Mnemonic: cs[i].Mnemonic(), Err: r.err})
			errs = append(errs, r.err)
			continue
		}
		report.Results = append(report.Results, r.res)
		if _, err := w.Write(r.buf.Bytes()); err != nil {
			return report, fmt.Errorf("failed to write output: %w", err)
		}
	}
	return report, errors.Join(errs...)
}

func (g *Generator) render(c *sleigh.Constructor, r *rendered, keepGoing bool) error {
	r.res, r.err = g.Constructor(&r.buf, c)
	if r.err == nil {
		return nil
	}
	if keepGoing {
		g.logger.Error("skipping constructor", "err", r.err)
		return nil
	}
	return r.err
}

func (g *Generator) renderSequential(ctx context.Context, cs []*sleigh.Constructor, out []rendered, opts Options) error {
	for i, c := range cs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.render(c, &out[i], opts.KeepGoing); err != nil {
			return err
		}
	}
	return nil
}

// renderParallel fills out[i] for cs[i]; writing stays with the caller so
// the output keeps table order.
func (g *Generator) renderParallel(ctx context.Context, cs []*sleigh.Constructor, out []rendered, opts Options) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Jobs)
	for i, c := range cs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.render(c, &out[i], opts.KeepGoing)
		})
	}
	return eg.Wait()
}
