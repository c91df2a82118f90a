// Package graph builds per-section spatial graphs over query points and
// batches them per split for the graph model. Node ordering inside each
// section graph is identical to that section's row ordering in the tabular
// frame — the two representations must never drift apart.
package graph

// Node is one query point of a section, carrying the same feature vector as
// the corresponding frame row.
type Node struct {
	// Features in frame.FeatureColumns order: x, z, modulus, thickness, poisson
	Features []float64 `json:"features"`

	// Targets in frame.TargetColumns order: strain_z, strain_r, strain_t
	Targets []float64 `json:"targets"`
}

// SectionGraph is the spatial graph of one section: nodes are its frame rows
// in row order, Dist the symmetric pairwise distance matrix, Adj the edge
// mask under the configured connectivity.
type SectionGraph struct {
	SectionID int         `json:"section_id"`
	Nodes     []Node      `json:"nodes"`
	Dist      [][]float64 `json:"dist"`
	Adj       [][]bool    `json:"adj"`
}

// NumNodes returns the node count.
func (g SectionGraph) NumNodes() int {
	return len(g.Nodes)
}

// Batch is a collection of section graphs for one split, merged in ascending
// section ID. Offsets[i] is the global node index where graph i starts, so
// per-section subgraphs remain recoverable after batching.
type Batch struct {
	Graphs  []SectionGraph `json:"graphs"`
	Offsets []int          `json:"offsets"`
}

// NumNodes returns the total node count across the batch.
func (b *Batch) NumNodes() int {
	if len(b.Graphs) == 0 {
		return 0
	}
	last := len(b.Graphs) - 1
	return b.Offsets[last] + b.Graphs[last].NumNodes()
}

// SectionOf returns the index of the graph containing global node index n,
// or -1 when out of range.
func (b *Batch) SectionOf(n int) int {
	if n < 0 || n >= b.NumNodes() {
		return -1
	}
	for i := len(b.Offsets) - 1; i >= 0; i-- {
		if n >= b.Offsets[i] {
			return i
		}
	}
	return -1
}
