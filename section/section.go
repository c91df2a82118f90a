// Package section models layered pavement structures and their
// deterministic sampling from a constrained material parameter grid.
package section

// Layer is one material layer of a pavement section.
type Layer struct {
	// Material is the material type name, e.g. "AC", "B", "SG"
	Material string `json:"material"`

	// Sublayer indexes the layer within its material, starting at 0
	Sublayer int `json:"sublayer"`

	// Thickness in inches; 0 marks the semi-infinite subgrade
	Thickness float64 `json:"thickness"`

	// Modulus in ksi
	Modulus float64 `json:"modulus"`

	// Poisson ratio
	Poisson float64 `json:"poisson"`
}

// Semi reports whether the layer is the semi-infinite subgrade.
func (l Layer) Semi() bool {
	return l.Thickness == 0
}

// Section is a sampled layered cross-section: an ordered sequence of layers,
// top to bottom, terminated by a semi-infinite subgrade layer. Sections are
// immutable once sampled; the ID is assigned in deterministic seeded order
// and is the unit of train/val/test partitioning.
type Section struct {
	ID     int     `json:"id"`
	Layers []Layer `json:"layers"`
}

// TotalThickness returns the combined thickness of the finite layers.
func (s Section) TotalThickness() float64 {
	var total float64
	for _, l := range s.Layers {
		total += l.Thickness
	}
	return total
}

// Subgrade returns the terminal semi-infinite layer.
func (s Section) Subgrade() Layer {
	return s.Layers[len(s.Layers)-1]
}

// LayerAt returns the layer containing depth z (inches from the surface).
// Depths at or below the finite layers resolve to the subgrade.
func (s Section) LayerAt(z float64) Layer {
	var top float64
	for _, l := range s.Layers {
		if l.Semi() {
			return l
		}
		if z < top+l.Thickness {
			return l
		}
		top += l.Thickness
	}
	return s.Subgrade()
}
