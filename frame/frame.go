// Package frame assembles the denormalized dataset: one row per query point,
// joining section, query point, and solver response. The column layout is a
// named schema shared by every consumer — nothing in the pipeline slices
// columns by numeric index.
package frame

// Row is the denormalized join of a section, one of its query points, and
// the solver response at that point.
type Row struct {
	SectionID int     `json:"section_id"`
	A         float64 `json:"a"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	Modulus   float64 `json:"modulus"`
	Thickness float64 `json:"thickness"`
	Poisson   float64 `json:"poisson"`
	StrainZ   float64 `json:"strain_z"`
	StrainR   float64 `json:"strain_r"`
	StrainT   float64 `json:"strain_t"`
}

// Feature and target column names, in schema order.
var (
	FeatureColumns = []string{"x", "z", "modulus", "thickness", "poisson"}
	TargetColumns  = []string{"strain_z", "strain_r", "strain_t"}
)

// Features returns the row's feature vector in FeatureColumns order. The
// same vector doubles as graph node features, so the tabular and graph
// representations can never drift apart.
func (r Row) Features() []float64 {
	return []float64{r.X, r.Z, r.Modulus, r.Thickness, r.Poisson}
}

// Targets returns the row's target vector in TargetColumns order.
func (r Row) Targets() []float64 {
	return []float64{r.StrainZ, r.StrainR, r.StrainT}
}

// Frame is the assembled dataset. Rows are grouped by section in ascending
// section ID, preserving the query point order within each section.
type Frame struct {
	Rows []Row

	// PointsPerSection is the pre-filter query point count every section
	// produced; recorded for artifact schema validation.
	PointsPerSection int

	// sectionIndex maps section ID to its [start, end) row range
	sectionIndex map[int][2]int
}

// newFrame indexes rows by section. Rows must already be grouped by section.
func newFrame(rows []Row, pointsPerSection int) *Frame {
	f := &Frame{
		Rows:             rows,
		PointsPerSection: pointsPerSection,
		sectionIndex:     make(map[int][2]int),
	}
	for i := 0; i < len(rows); {
		j := i
		for j < len(rows) && rows[j].SectionID == rows[i].SectionID {
			j++
		}
		f.sectionIndex[rows[i].SectionID] = [2]int{i, j}
		i = j
	}
	return f
}

// Rebuild constructs a Frame from stored rows, e.g. when loading a cached
// artifact. Rows must be grouped by section in ascending section ID.
func Rebuild(rows []Row, pointsPerSection int) *Frame {
	return newFrame(rows, pointsPerSection)
}

// SectionRows returns the contiguous rows of one section, in query point
// order. Returns nil for sections absent from the frame (e.g. excluded after
// solver divergence).
func (f *Frame) SectionRows(id int) []Row {
	span, ok := f.sectionIndex[id]
	if !ok {
		return nil
	}
	return f.Rows[span[0]:span[1]]
}

// SectionIDs returns the section IDs present in the frame, ascending.
func (f *Frame) SectionIDs() []int {
	ids := make([]int, 0, len(f.sectionIndex))
	for i := 0; i < len(f.Rows); {
		ids = append(ids, f.Rows[i].SectionID)
		i = f.sectionIndex[f.Rows[i].SectionID][1]
	}
	return ids
}
