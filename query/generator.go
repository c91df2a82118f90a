package query

import (
	"go.uber.org/zap"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/section"
)

// Point is a spatial query location for one section, plus the material
// properties of the layer it falls in. A is the contact radius the point was
// generated for, X the radial offset from the load axis, Z the depth.
type Point struct {
	SectionID int     `json:"section_id"`
	A         float64 `json:"a"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`

	// Derived per-point labels from the section's depth profile
	Modulus   float64 `json:"modulus"`
	Thickness float64 `json:"thickness"`
	Poisson   float64 `json:"poisson"`
}

// Generator produces the fixed-size ordered query point sequence for each
// section. The iteration order — contact radius outer, depth next, radial
// offset inner — is a structural invariant: the tabular frame and the graph
// builder both depend on it being identical for every section.
type Generator struct {
	sampling conf.SamplingConfig
	logger   *zap.SugaredLogger
}

// NewGenerator returns a query point generator for the given sampling grid.
func NewGenerator(sampling conf.SamplingConfig, logger *zap.SugaredLogger) *Generator {
	return &Generator{
		sampling: sampling,
		logger:   logger.Named("query.generator"),
	}
}

// Generate returns the section's query points and its depth profile.
// Every section yields exactly PointsPerSection() points.
func (g *Generator) Generate(sec section.Section) ([]Point, *DepthProfile, error) {
	total := sec.TotalThickness()
	if total <= 0 {
		return nil, nil, errors.Newf("section %d has no finite thickness", sec.ID)
	}

	profile := NewDepthProfile(sec)
	radii := g.ContactRadii()
	depths := g.Depths(total)

	points := make([]Point, 0, g.sampling.PointsPerSection())
	for _, a := range radii {
		offsets := g.Offsets(a)
		for _, z := range depths {
			for _, x := range offsets {
				e, h, nu := profile.At(z)
				points = append(points, Point{
					SectionID: sec.ID,
					A:         a,
					X:         x,
					Z:         z,
					Modulus:   e,
					Thickness: h,
					Poisson:   nu,
				})
			}
		}
	}

	if len(points) != g.sampling.PointsPerSection() {
		return nil, nil, errors.AssertionFailedf(
			"section %d produced %d query points, invariant requires %d",
			sec.ID, len(points), g.sampling.PointsPerSection())
	}

	return points, profile, nil
}

// ContactRadii returns the APoints contact radii spread across ARange.
func (g *Generator) ContactRadii() []float64 {
	s := g.sampling
	radii := make([]float64, s.APoints)
	if s.APoints == 1 {
		radii[0] = s.ARange[0]
		return radii
	}
	step := (s.ARange[1] - s.ARange[0]) / float64(s.APoints-1)
	for i := range radii {
		radii[i] = s.ARange[0] + step*float64(i)
	}
	return radii
}

// Depths returns the ZPoints query depths for a section of the given total
// thickness: ZPoints-1 depths spread evenly over the finite layers, plus one
// probe depth into the subgrade.
func (g *Generator) Depths(total float64) []float64 {
	n := g.sampling.ZPoints
	depths := make([]float64, n)
	step := total / float64(n-2)
	for i := 0; i < n-1; i++ {
		depths[i] = step * float64(i)
	}
	depths[n-1] = total + SubgradeProbeDepth
	return depths
}

// Offsets returns the XPoints radial offsets for contact radius a, spaced by
// the configured factor in contact radii: x_i = a * factor * i.
func (g *Generator) Offsets(a float64) []float64 {
	s := g.sampling
	offsets := make([]float64, s.XPoints)
	for i := range offsets {
		offsets[i] = a * s.Factor * float64(i)
	}
	return offsets
}
