// Package query generates the spatial query points at which each section's
// mechanical response is evaluated, plus the depth-to-property profile used
// to label every point with its local material properties.
package query

import (
	"github.com/strataml/strata/section"
)

// Sentinel values for the semi-infinite subgrade. Query depths are clipped to
// the section's total thickness; one probe depth extends below it into the
// subgrade, and the subgrade reports a fixed feature thickness since it has
// no physical one.
const (
	// SubgradeProbeDepth is how far below the finite layers the deepest
	// query point sits, in inches.
	SubgradeProbeDepth = 12.0

	// SubgradeThickness is the thickness feature value reported for the
	// semi-infinite subgrade.
	SubgradeThickness = 100.0
)

// DepthProfile maps a depth z to the material properties of the layer that
// contains it: modulus E(z), layer thickness H(z), and Poisson ratio nu(z).
// Built once per section; read-only afterwards.
type DepthProfile struct {
	sec section.Section
}

// NewDepthProfile builds the depth-to-property mapping for a section.
func NewDepthProfile(sec section.Section) *DepthProfile {
	return &DepthProfile{sec: sec}
}

// At returns (E, H, nu) for depth z. Depths at or below the finite layers
// resolve to the subgrade, whose thickness is the SubgradeThickness sentinel.
func (p *DepthProfile) At(z float64) (e, h, nu float64) {
	l := p.sec.LayerAt(z)
	h = l.Thickness
	if l.Semi() {
		h = SubgradeThickness
	}
	return l.Modulus, h, l.Poisson
}
