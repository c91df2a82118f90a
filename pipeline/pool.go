package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
	"github.com/strataml/strata/query"
	"github.com/strataml/strata/section"
	"github.com/strataml/strata/solver"
	"github.com/strataml/strata/sym"
)

// SectionFailure records a section excluded from the dataset after solver
// divergence.
type SectionFailure struct {
	SectionID int
	Err       error
}

// sectionResult carries one worker's output back to the collector.
type sectionResult struct {
	data    frame.SectionData
	failure *SectionFailure
	err     error
}

// evaluateSections runs query generation and solver evaluation across a
// bounded worker pool, one section per job. Divergence is isolated per
// section: the section is recorded as a failure and the rest of the run
// proceeds. Any other error cancels the pool and fails the run.
func (r *Runner) evaluateSections(ctx context.Context, sections []section.Section) ([]frame.SectionData, []SectionFailure, error) {
	workers := r.cfg.Pipeline.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(sections) {
		workers = len(sections)
	}

	load := solver.Load{
		Radius:   r.cfg.Sampling.ARange[0],
		Pressure: r.cfg.Load.Pressure,
	}
	r.logger.Infow("Generating query points and evaluating sections",
		"symbol", sym.Query,
		"workers", workers,
		"sections", len(sections),
	)

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan section.Section)
	results := make(chan sectionResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen := query.NewGenerator(r.cfg.Sampling, r.logger)
			for sec := range jobs {
				results <- r.evaluateOne(poolCtx, gen, load, sec)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, sec := range sections {
			select {
			case jobs <- sec:
			case <-poolCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Results arrive in completion order; the assembler reorders by section
	// ID afterwards.
	var data []frame.SectionData
	var failures []SectionFailure
	var firstErr error
	for res := range results {
		switch {
		case res.err != nil:
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
		case res.failure != nil:
			failures = append(failures, *res.failure)
		default:
			data = append(data, res.data)
		}
	}

	if firstErr != nil {
		return nil, nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return data, failures, nil
}

// evaluateOne generates one section's query points and evaluates the solver
// over them.
func (r *Runner) evaluateOne(ctx context.Context, gen *query.Generator, load solver.Load, sec section.Section) sectionResult {
	points, _, err := gen.Generate(sec)
	if err != nil {
		return sectionResult{err: errors.Wrapf(err, "generate query points for section %d", sec.ID)}
	}

	responses, err := r.solver.Evaluate(ctx, sec, load, points)
	if err != nil {
		if errors.IsSolverDivergence(err) {
			r.logger.Warnw("Excluding section after solver divergence",
				"section_id", sec.ID,
				"error", err,
			)
			return sectionResult{failure: &SectionFailure{SectionID: sec.ID, Err: err}}
		}
		return sectionResult{err: errors.Wrapf(err, "evaluate section %d", sec.ID)}
	}

	return sectionResult{data: frame.SectionData{
		Section:   sec,
		Points:    points,
		Responses: responses,
	}}
}
