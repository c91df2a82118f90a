package graph

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
)

// Builder constructs section graphs from frame rows.
type Builder struct {
	cfg    conf.GraphConfig
	logger *zap.SugaredLogger
}

// NewBuilder validates the connectivity configuration and returns a builder.
func NewBuilder(cfg conf.GraphConfig, logger *zap.SugaredLogger) (*Builder, error) {
	switch cfg.Connectivity {
	case conf.ConnectivityFull:
	case conf.ConnectivityKNN:
		if cfg.K <= 0 {
			return nil, errors.NewConfigurationError("knn connectivity needs k > 0, got %d", cfg.K)
		}
	default:
		return nil, errors.NewConfigurationError("unknown graph connectivity %q", cfg.Connectivity)
	}
	switch cfg.Metric {
	case conf.MetricEuclidean, conf.MetricDepthWeighted:
	default:
		return nil, errors.NewConfigurationError("unknown graph metric %q", cfg.Metric)
	}
	return &Builder{cfg: cfg, logger: logger.Named("graph.builder")}, nil
}

// BuildSection builds one section's graph from its frame rows, preserving
// row order as node order.
func (b *Builder) BuildSection(sectionID int, rows []frame.Row) (SectionGraph, error) {
	if len(rows) == 0 {
		return SectionGraph{}, errors.Newf("section %d has no frame rows", sectionID)
	}

	n := len(rows)
	g := SectionGraph{
		SectionID: sectionID,
		Nodes:     make([]Node, n),
		Dist:      make([][]float64, n),
		Adj:       make([][]bool, n),
	}
	for i, r := range rows {
		if r.SectionID != sectionID {
			return SectionGraph{}, errors.AssertionFailedf(
				"row %d belongs to section %d, building graph for %d", i, r.SectionID, sectionID)
		}
		g.Nodes[i] = Node{Features: r.Features(), Targets: r.Targets()}
		g.Dist[i] = make([]float64, n)
		g.Adj[i] = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := b.distance(rows[i], rows[j])
			g.Dist[i][j] = d
			g.Dist[j][i] = d
		}
	}

	b.connect(&g)
	return g, nil
}

// distance computes the edge weight between two query points.
func (b *Builder) distance(p, q frame.Row) float64 {
	dx := p.X - q.X
	dz := p.Z - q.Z
	if b.cfg.Metric == conf.MetricDepthWeighted {
		dz *= b.cfg.DepthWeight
	}
	return math.Sqrt(dx*dx + dz*dz)
}

// connect fills the adjacency mask: full connectivity links every node pair;
// knn links each node to its k nearest neighbors, symmetrized.
func (b *Builder) connect(g *SectionGraph) {
	n := g.NumNodes()
	if b.cfg.Connectivity == conf.ConnectivityFull {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				g.Adj[i][j] = i != j
			}
		}
		return
	}

	k := b.cfg.K
	if k > n-1 {
		k = n - 1
	}
	order := make([]int, n)
	for i := 0; i < n; i++ {
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, c int) bool {
			return g.Dist[i][order[a]] < g.Dist[i][order[c]]
		})
		linked := 0
		for _, j := range order {
			if j == i {
				continue
			}
			g.Adj[i][j] = true
			g.Adj[j][i] = true
			linked++
			if linked == k {
				break
			}
		}
	}
}
