// Package pipeline orchestrates dataset production: sampling sections,
// generating query points, evaluating the solver across a worker pool,
// assembling the frame, splitting, scaling, and shaping the result for a
// model family. Datasets are cached in SQLite and reloaded only when the
// stored configuration fingerprint matches the active one.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
	"github.com/strataml/strata/progress"
	"github.com/strataml/strata/section"
	"github.com/strataml/strata/solver"
	"github.com/strataml/strata/split"
	"github.com/strataml/strata/store"
	"github.com/strataml/strata/sym"
)

// Runner drives the dataset pipeline end to end.
type Runner struct {
	cfg     *conf.Config
	store   *store.Store
	solver  solver.Evaluator
	emitter progress.Emitter
	logger  *zap.SugaredLogger
}

// NewRunner wires a pipeline runner. The emitter may be a NopEmitter when no
// terminal is attached.
func NewRunner(cfg *conf.Config, st *store.Store, ev solver.Evaluator, em progress.Emitter, logger *zap.SugaredLogger) *Runner {
	return &Runner{
		cfg:     cfg,
		store:   st,
		solver:  ev,
		emitter: em,
		logger:  logger.Named("pipeline"),
	}
}

// Dataset is the assembled, split-aware dataset of one run.
type Dataset struct {
	Meta  store.RunMeta
	Frame *frame.Frame
	Split split.Split

	// Excluded lists sections dropped after solver divergence. Empty on
	// loaded datasets: exclusions happened at generation time.
	Excluded []SectionFailure
}

// Generate samples sections, evaluates the solver across the worker pool,
// assembles the frame, and persists every artifact under a fresh run.
func (r *Runner) Generate(ctx context.Context) (*Dataset, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	sp, err := split.New(r.cfg.Sampling.SplitIdx, r.cfg.Sampling.TestIdx, r.cfg.Sampling.Sections)
	if err != nil {
		return nil, err
	}

	r.emitter.EmitStage("sample", "sampling pavement sections")
	sampler, err := section.NewSampler(r.cfg.Materials, r.cfg.Sampling.Seed, r.logger)
	if err != nil {
		return nil, err
	}
	sections, err := sampler.Sample(r.cfg.Sampling.Sections)
	if err != nil {
		return nil, err
	}
	r.logger.Infow("Sampled sections", "symbol", sym.Section, "count", len(sections))
	r.emitter.EmitProgress(len(sections), map[string]interface{}{"type": "sections"})

	meta := store.NewRunMeta(r.cfg)
	if err := r.store.CreateRun(meta); err != nil {
		return nil, err
	}
	if err := r.store.SaveSections(meta.ID, sections); err != nil {
		return nil, err
	}

	r.emitter.EmitStage("solve", "evaluating strain responses")
	data, failures, err := r.evaluateSections(ctx, sections)
	if err != nil {
		r.emitter.EmitError("solve", err)
		return nil, err
	}
	if len(data) == 0 {
		err := errors.Wrapf(errors.ErrSolverDivergence, "all %d sections diverged", len(sections))
		r.emitter.EmitError("solve", err)
		return nil, err
	}
	if len(failures) > 0 {
		r.logger.Warnw("Run completed with excluded sections",
			"symbol", sym.Solve,
			"excluded", len(failures),
			"of", len(sections),
		)
		r.emitter.EmitInfo(divergenceSummary(failures))
	}
	r.emitter.EmitProgress(len(data), map[string]interface{}{"type": "sections solved"})

	r.emitter.EmitStage("assemble", "assembling dataset frame")
	assembler := frame.NewAssembler(r.cfg.Filter, r.cfg.Sampling.PointsPerSection(), r.logger)
	f, err := assembler.Assemble(data)
	if err != nil {
		return nil, err
	}
	r.logger.Infow("Assembled frame", "symbol", sym.Frame, "rows", len(f.Rows))
	if err := r.store.SaveFrame(meta.ID, f); err != nil {
		return nil, err
	}

	r.logger.Infow("Generated dataset",
		"symbol", sym.Run,
		"run_id", meta.ID,
		"sections", len(data),
		"rows", len(f.Rows),
		"excluded", len(failures),
	)
	return &Dataset{Meta: meta, Frame: f, Split: sp, Excluded: failures}, nil
}

// LoadLatest loads the most recent cached dataset, validating its
// configuration fingerprint against the active configuration first.
func (r *Runner) LoadLatest(ctx context.Context) (*Dataset, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	meta, err := r.store.LatestRun()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(err, "no cached run found, generate one first")
		}
		return nil, errors.Wrap(err, "load latest run")
	}
	if err := meta.ValidateAgainst(r.cfg); err != nil {
		return nil, err
	}

	sp, err := split.New(meta.SplitIdx, meta.TestIdx, meta.Sections)
	if err != nil {
		return nil, err
	}

	f, err := r.store.LoadFrame(meta.ID, meta.PointsPerSection)
	if err != nil {
		return nil, err
	}

	r.logger.Infow("Loaded cached dataset",
		"symbol", sym.DB,
		"run_id", meta.ID,
		"rows", len(f.Rows),
	)
	return &Dataset{Meta: meta, Frame: f, Split: sp}, nil
}

// Dataset resolves a dataset per the requested mode.
func (r *Runner) Dataset(ctx context.Context, mode Mode) (*Dataset, error) {
	switch mode {
	case Generate:
		return r.Generate(ctx)
	case Load:
		return r.LoadLatest(ctx)
	default:
		return nil, errors.NewConfigurationError("unknown mode %d", mode)
	}
}

// Run executes the full orchestration: resolve the dataset per mode, then
// shape it for the requested model family and phase.
func (r *Runner) Run(ctx context.Context, mode Mode, phase Phase, model Model) (*Result, error) {
	ds, err := r.Dataset(ctx, mode)
	if err != nil {
		return nil, err
	}
	res, err := r.dispatch(ds, mode, phase, model)
	if err != nil {
		return nil, err
	}

	r.emitter.EmitComplete(map[string]interface{}{
		"run_id":   ds.Meta.ID,
		"mode":     mode.String(),
		"phase":    phase.String(),
		"model":    model.String(),
		"rows":     len(ds.Frame.Rows),
		"excluded": len(ds.Excluded),
	})
	return res, nil
}

// divergenceSummary renders the aggregate divergence report emitted at the
// end of a run with exclusions.
func divergenceSummary(failures []SectionFailure) string {
	if len(failures) == 1 {
		return fmt.Sprintf("excluded section %d after solver divergence", failures[0].SectionID)
	}
	return fmt.Sprintf("excluded %d sections after solver divergence", len(failures))
}
