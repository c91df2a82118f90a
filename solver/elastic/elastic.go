// Package elastic is a self-contained reference Evaluator for layered
// pavement sections. It combines Odemark's method of equivalent thickness
// with Boussinesq's solution for a uniform circular load, which is accurate
// enough to exercise the pipeline end to end. It is not a substitute for a
// full integral-transform layered-elastic solver.
package elastic

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/query"
	"github.com/strataml/strata/section"
	"github.com/strataml/strata/solver"
)

// odemarkFactor is the empirical correction applied to equivalent thickness
// transforms for multi-layer systems.
const odemarkFactor = 0.9

// ksiToPsi converts modulus units: material moduli are configured in ksi,
// contact pressure in psi.
const ksiToPsi = 1000.0

// LayeredElastic evaluates strain responses for layered sections.
type LayeredElastic struct {
	logger *zap.SugaredLogger
}

// New returns the reference layered-elastic evaluator.
func New(logger *zap.SugaredLogger) *LayeredElastic {
	return &LayeredElastic{logger: logger.Named("solver.elastic")}
}

// Evaluate computes one Response per query point, in input order. Degenerate
// sections that produce non-finite stresses fail with a solver-divergence
// error for the whole section.
func (e *LayeredElastic) Evaluate(ctx context.Context, sec section.Section, load solver.Load, points []query.Point) ([]solver.Response, error) {
	if load.Radius <= 0 || load.Pressure <= 0 {
		return nil, errors.Wrapf(errors.ErrSolverDivergence,
			"section %d: degenerate load radius=%f pressure=%f", sec.ID, load.Radius, load.Pressure)
	}

	responses := make([]solver.Response, len(points))
	for i, p := range points {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "section %d cancelled", sec.ID)
		}

		resp, err := e.at(sec, load, p)
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}

// at evaluates a single query point.
func (e *LayeredElastic) at(sec section.Section, load solver.Load, p query.Point) (solver.Response, error) {
	local := sec.LayerAt(p.Z)
	if local.Modulus <= 0 {
		return solver.Response{}, errors.Wrapf(errors.ErrSolverDivergence,
			"section %d: non-positive modulus at z=%f", sec.ID, p.Z)
	}

	ze := equivalentDepth(sec, p.Z, local)
	a := p.A
	if a <= 0 {
		a = load.Radius
	}

	sigZ, sigR, sigT := boussinesq(load.Pressure, a, ze, local.Poisson)

	// Radial attenuation for off-axis points. The axisymmetric Boussinesq
	// closed form holds on the load axis; offsets decay with the classic
	// (1 + (r/R)^2)^(-3/2) bulb shape.
	if p.X > 0 {
		decay := math.Pow(1.0+math.Pow(p.X/(a+ze), 2), -1.5)
		sigZ *= decay
		sigR *= decay
		sigT *= decay
	}

	modulusPsi := local.Modulus * ksiToPsi
	nu := local.Poisson

	// Hooke's law, reported in microstrain
	epsZ := (sigZ - nu*(sigR+sigT)) / modulusPsi * 1e6
	epsR := (sigR - nu*(sigZ+sigT)) / modulusPsi * 1e6
	epsT := (sigT - nu*(sigZ+sigR)) / modulusPsi * 1e6

	if !finite(epsZ) || !finite(epsR) || !finite(epsT) {
		return solver.Response{}, errors.Wrapf(errors.ErrSolverDivergence,
			"section %d: non-finite strain at x=%f z=%f", sec.ID, p.X, p.Z)
	}

	return solver.Response{StrainZ: epsZ, StrainR: epsR, StrainT: epsT}, nil
}

// equivalentDepth transforms depth z into an equivalent depth in a
// homogeneous half-space of the local layer's modulus, per Odemark: each
// overlying layer contributes h * f * (E_i/E_local)^(1/3).
func equivalentDepth(sec section.Section, z float64, local section.Layer) float64 {
	var ze, top float64
	for _, l := range sec.Layers {
		if l.Material == local.Material && l.Sublayer == local.Sublayer {
			// Remaining depth inside the local layer transforms 1:1
			ze += z - top
			break
		}
		ze += odemarkFactor * l.Thickness * math.Cbrt(l.Modulus/local.Modulus)
		top += l.Thickness
	}
	return ze
}

// boussinesq returns (sigma_z, sigma_r, sigma_t) in psi under the center of
// a uniform circular load of pressure q and radius a, at depth z.
func boussinesq(q, a, z, nu float64) (sigZ, sigR, sigT float64) {
	if z == 0 {
		// At the surface the vertical stress equals the contact pressure
		return q, q * (1 + 2*nu) / 2, q * (1 + 2*nu) / 2
	}
	ra := math.Sqrt(a*a + z*z)
	sigZ = q * (1 - z*z*z/(ra*ra*ra))
	lateral := q / 2 * ((1 + 2*nu) - 2*(1+nu)*z/ra + z*z*z/(ra*ra*ra))
	return sigZ, lateral, lateral
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
