package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/frame"
	"github.com/strataml/strata/logger"
)

func fullConfig() conf.GraphConfig {
	return conf.GraphConfig{
		Connectivity: conf.ConnectivityFull,
		Metric:       conf.MetricEuclidean,
		DepthWeight:  1.0,
	}
}

func sectionRows(id, n int) []frame.Row {
	rows := make([]frame.Row, n)
	for i := range rows {
		rows[i] = frame.Row{
			SectionID: id, A: 4, X: float64(i), Z: float64(i * 2),
			Modulus: 1000, Thickness: 6, Poisson: 0.35,
			StrainZ: float64(i), StrainR: 1, StrainT: 1,
		}
	}
	return rows
}

func testFrame(sections, rowsPer int) *frame.Frame {
	var rows []frame.Row
	for id := 0; id < sections; id++ {
		rows = append(rows, sectionRows(id, rowsPer)...)
	}
	return frame.Rebuild(rows, rowsPer)
}

func TestDistanceMatrixSymmetricNonNegative(t *testing.T) {
	b, err := NewBuilder(fullConfig(), logger.Logger)
	require.NoError(t, err)

	g, err := b.BuildSection(0, sectionRows(0, 6))
	require.NoError(t, err)

	n := g.NumNodes()
	for i := 0; i < n; i++ {
		assert.Equal(t, 0.0, g.Dist[i][i])
		for j := 0; j < n; j++ {
			assert.Equal(t, g.Dist[i][j], g.Dist[j][i], "distance matrix must be symmetric")
			assert.GreaterOrEqual(t, g.Dist[i][j], 0.0)
		}
	}
}

// TestNodeOrderMatchesFrameRows is the cross-representation consistency
// invariant: node i of a section graph carries exactly the feature and
// target vectors of frame row i for that section.
func TestNodeOrderMatchesFrameRows(t *testing.T) {
	b, err := NewBuilder(fullConfig(), logger.Logger)
	require.NoError(t, err)

	f := testFrame(3, 5)
	for _, id := range f.SectionIDs() {
		rows := f.SectionRows(id)
		g, err := b.BuildSection(id, rows)
		require.NoError(t, err)

		require.Equal(t, len(rows), g.NumNodes())
		for i, r := range rows {
			assert.Equal(t, r.Features(), g.Nodes[i].Features)
			assert.Equal(t, r.Targets(), g.Nodes[i].Targets)
		}
	}
}

func TestFullConnectivity(t *testing.T) {
	b, err := NewBuilder(fullConfig(), logger.Logger)
	require.NoError(t, err)

	g, err := b.BuildSection(0, sectionRows(0, 4))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, i != j, g.Adj[i][j])
		}
	}
}

func TestKNNConnectivitySymmetric(t *testing.T) {
	cfg := fullConfig()
	cfg.Connectivity = conf.ConnectivityKNN
	cfg.K = 2
	b, err := NewBuilder(cfg, logger.Logger)
	require.NoError(t, err)

	g, err := b.BuildSection(0, sectionRows(0, 6))
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		assert.False(t, g.Adj[i][i], "no self loops")
		degree := 0
		for j := 0; j < 6; j++ {
			assert.Equal(t, g.Adj[i][j], g.Adj[j][i], "knn adjacency must be symmetrized")
			if g.Adj[i][j] {
				degree++
			}
		}
		assert.GreaterOrEqual(t, degree, 2)
	}
}

func TestDepthWeightedMetric(t *testing.T) {
	cfg := fullConfig()
	cfg.Metric = conf.MetricDepthWeighted
	cfg.DepthWeight = 3.0
	b, err := NewBuilder(cfg, logger.Logger)
	require.NoError(t, err)

	rows := []frame.Row{
		{SectionID: 0, X: 0, Z: 0},
		{SectionID: 0, X: 0, Z: 1},
		{SectionID: 0, X: 1, Z: 0},
	}
	g, err := b.BuildSection(0, rows)
	require.NoError(t, err)

	// dz is scaled by the depth weight, dx is not
	assert.InDelta(t, 3.0, g.Dist[0][1], 1e-9)
	assert.InDelta(t, 1.0, g.Dist[0][2], 1e-9)
}

func TestBuildBatchPreservesSectionBoundaries(t *testing.T) {
	b, err := NewBuilder(fullConfig(), logger.Logger)
	require.NoError(t, err)

	f := testFrame(4, 3)
	batch, err := b.BuildBatch(f, []int{2, 0, 3, 1})
	require.NoError(t, err)

	require.Len(t, batch.Graphs, 4)
	assert.Equal(t, []int{0, 3, 6, 9}, batch.Offsets)
	assert.Equal(t, 12, batch.NumNodes())

	// Merged in ascending section ID regardless of input order
	for i, g := range batch.Graphs {
		assert.Equal(t, i, g.SectionID)
	}

	// Boundary recovery
	assert.Equal(t, 0, batch.SectionOf(0))
	assert.Equal(t, 0, batch.SectionOf(2))
	assert.Equal(t, 1, batch.SectionOf(3))
	assert.Equal(t, 3, batch.SectionOf(11))
	assert.Equal(t, -1, batch.SectionOf(12))
}

func TestBuildBatchSkipsExcludedSections(t *testing.T) {
	b, err := NewBuilder(fullConfig(), logger.Logger)
	require.NoError(t, err)

	f := testFrame(3, 2)
	batch, err := b.BuildBatch(f, []int{0, 1, 2, 7})
	require.NoError(t, err)

	assert.Len(t, batch.Graphs, 3, "section 7 absent from frame is skipped")
}

func TestMergeOrdersBySectionID(t *testing.T) {
	b, err := NewBuilder(fullConfig(), logger.Logger)
	require.NoError(t, err)

	g2, err := b.BuildSection(2, sectionRows(2, 2))
	require.NoError(t, err)
	g0, err := b.BuildSection(0, sectionRows(0, 3))
	require.NoError(t, err)

	batch := Merge([]SectionGraph{g2, g0})
	require.Len(t, batch.Graphs, 2)
	assert.Equal(t, 0, batch.Graphs[0].SectionID)
	assert.Equal(t, 2, batch.Graphs[1].SectionID)
	assert.Equal(t, []int{0, 3}, batch.Offsets)
}

func TestNewBuilderRejectsBadConfig(t *testing.T) {
	_, err := NewBuilder(conf.GraphConfig{Connectivity: "mesh", Metric: conf.MetricEuclidean}, logger.Logger)
	assert.Error(t, err)

	_, err = NewBuilder(conf.GraphConfig{Connectivity: conf.ConnectivityKNN, K: 0, Metric: conf.MetricEuclidean}, logger.Logger)
	assert.Error(t, err)

	_, err = NewBuilder(conf.GraphConfig{Connectivity: conf.ConnectivityFull, Metric: "cosine"}, logger.Logger)
	assert.Error(t, err)
}

func TestBuildBatchMatchesSequentialSections(t *testing.T) {
	b, err := NewBuilder(fullConfig(), logger.Logger)
	require.NoError(t, err)

	f := testFrame(32, 5)
	ids := make([]int, 32)
	for i := range ids {
		ids[i] = i
	}

	batch, err := b.BuildBatch(f, ids)
	require.NoError(t, err)
	require.Len(t, batch.Graphs, 32)

	// Concurrent construction must yield exactly the graphs a one-by-one
	// build would, in ascending section ID.
	for i, id := range ids {
		want, err := b.BuildSection(id, f.SectionRows(id))
		require.NoError(t, err)
		assert.Equal(t, want, batch.Graphs[i])
	}
}
