// Package solver defines the contract between the pipeline and the
// boundary-value elasticity solver that computes each section's mechanical
// response. The pipeline treats the solver as a pure function: one response
// per query point, in input order. Production deployments plug in their own
// Evaluator; solver/elastic ships a self-contained reference implementation.
package solver

import (
	"context"

	"github.com/strataml/strata/query"
	"github.com/strataml/strata/section"
)

// Load is the surface load applied to a section: a uniform pressure over a
// circular contact area.
type Load struct {
	// Radius is the contact radius in inches
	Radius float64 `json:"radius"`

	// Pressure is the contact pressure in psi
	Pressure float64 `json:"pressure"`
}

// Response is the solver's output at one query point: vertical, radial, and
// tangential strain in microstrain.
type Response struct {
	StrainZ float64 `json:"strain_z"`
	StrainR float64 `json:"strain_r"`
	StrainT float64 `json:"strain_t"`
}

// Evaluator computes the mechanical response of a section at a sequence of
// query points. Implementations must be order-preserving: response i belongs
// to points[i]. A solver that cannot converge for a section returns an error
// wrapping errors.ErrSolverDivergence; the pipeline excludes that section
// and continues.
type Evaluator interface {
	Evaluate(ctx context.Context, sec section.Section, load Load, points []query.Point) ([]Response, error)
}
