package frame

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/query"
	"github.com/strataml/strata/section"
	"github.com/strataml/strata/solver"
)

// SectionData bundles one section's inputs to the assembler: the section,
// its ordered query points, and the solver responses in the same order.
type SectionData struct {
	Section   section.Section
	Points    []query.Point
	Responses []solver.Response
}

// Assembler merges sections, query points, and responses into the Frame.
// Missing or partial response data is a correctness violation and fails the
// whole assembly — rows are never silently dropped or zero-filled.
type Assembler struct {
	filter           conf.FilterConfig
	pointsPerSection int
	logger           *zap.SugaredLogger
}

// NewAssembler returns an assembler enforcing the given per-section point
// count and row filter.
func NewAssembler(filter conf.FilterConfig, pointsPerSection int, logger *zap.SugaredLogger) *Assembler {
	return &Assembler{
		filter:           filter,
		pointsPerSection: pointsPerSection,
		logger:           logger.Named("frame.assembler"),
	}
}

// Assemble builds the Frame from per-section data. Sections are merged in
// ascending ID order regardless of input order.
func (a *Assembler) Assemble(data []SectionData) (*Frame, error) {
	sorted := make([]SectionData, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Section.ID < sorted[j].Section.ID
	})

	rows := make([]Row, 0, len(sorted)*a.pointsPerSection)
	var dropped int
	for _, d := range sorted {
		id := d.Section.ID
		if len(d.Points) != a.pointsPerSection {
			return nil, errors.Newf("section %d has %d query points, want %d", id, len(d.Points), a.pointsPerSection)
		}
		if len(d.Responses) != len(d.Points) {
			return nil, errors.Newf("section %d has %d responses for %d query points: partial rows are a correctness violation",
				id, len(d.Responses), len(d.Points))
		}

		for i, p := range d.Points {
			if p.SectionID != id {
				return nil, errors.AssertionFailedf("point %d of section %d carries section id %d", i, id, p.SectionID)
			}
			row := Row{
				SectionID: id,
				A:         p.A,
				X:         p.X,
				Z:         p.Z,
				Modulus:   p.Modulus,
				Thickness: p.Thickness,
				Poisson:   p.Poisson,
				StrainZ:   d.Responses[i].StrainZ,
				StrainR:   d.Responses[i].StrainR,
				StrainT:   d.Responses[i].StrainT,
			}
			if a.keep(row) {
				rows = append(rows, row)
			} else {
				dropped++
			}
		}
	}

	a.logger.Infow("Assembled frame",
		"sections", len(sorted),
		"rows", len(rows),
		"dropped", dropped,
		"filter", a.filter.Mode,
	)
	return newFrame(rows, a.pointsPerSection), nil
}

// keep applies the configured row filter.
func (a *Assembler) keep(r Row) bool {
	switch a.filter.Mode {
	case conf.FilterMagnitude:
		mag := math.Max(math.Abs(r.StrainZ), math.Max(math.Abs(r.StrainR), math.Abs(r.StrainT)))
		return mag >= a.filter.Threshold
	default:
		return true
	}
}
