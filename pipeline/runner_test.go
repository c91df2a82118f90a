package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/graph"
	qt "github.com/strataml/strata/internal/testing"
	"github.com/strataml/strata/logger"
	"github.com/strataml/strata/progress"
	"github.com/strataml/strata/solver/elastic"
	"github.com/strataml/strata/split"
	"github.com/strataml/strata/store"
)

func testConfig() *conf.Config {
	return &conf.Config{
		Materials: conf.MaterialConfig{
			Types:              []string{"AC", "B", "SG"},
			SublayerMax:        []int{1, 1, 1},
			ThicknessRange:     [][]float64{{2, 16}, {4, 20}},
			ThicknessIncrement: []float64{1, 2},
			ModulusRange:       [][]float64{{500, 2000}, {50, 300}, {5, 50}},
			ModulusIncrement:   []float64{50, 20, 5},
			PoissonRange:       [][]float64{{0.3, 0.4}, {0.2, 0.499}, {0.2, 0.499}},
		},
		Sampling: conf.SamplingConfig{
			Sections: 10,
			ZPoints:  5,
			XPoints:  3,
			ARange:   []float64{4, 4},
			APoints:  1,
			Factor:   0.4,
			SplitIdx: 6,
			TestIdx:  8,
			Seed:     42,
		},
		Load:   conf.LoadConfig{Pressure: 100},
		Filter: conf.FilterConfig{Mode: conf.FilterOff},
		Graph: conf.GraphConfig{
			Connectivity: conf.ConnectivityFull,
			Metric:       conf.MetricEuclidean,
			DepthWeight:  1,
		},
		Pipeline: conf.PipelineConfig{Workers: 2},
	}
}

func newTestRunner(t *testing.T, cfg *conf.Config) *Runner {
	st := store.NewStore(qt.CreateTestDB(t), logger.Logger)
	ev := elastic.New(logger.Logger)
	return NewRunner(cfg, st, ev, progress.NewNopEmitter(), logger.Logger)
}

func TestGenerateProducesCompleteDataset(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(t, cfg)

	ds, err := r.Generate(context.Background())
	require.NoError(t, err)

	assert.Empty(t, ds.Excluded)
	assert.Equal(t, cfg.Sampling.PointsPerSection()*cfg.Sampling.Sections, len(ds.Frame.Rows))
	assert.Equal(t, 6, ds.Split.TrainEnd)
	assert.Equal(t, 8, ds.Split.TestStart)

	// Every section present with the full point count
	ids := ds.Frame.SectionIDs()
	require.Len(t, ids, 10)
	for _, id := range ids {
		assert.Len(t, ds.Frame.SectionRows(id), cfg.Sampling.PointsPerSection())
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := testConfig()

	a, err := newTestRunner(t, cfg).Generate(context.Background())
	require.NoError(t, err)
	b, err := newTestRunner(t, cfg).Generate(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a.Meta.ID, b.Meta.ID, "each generation is a distinct run")
	assert.Equal(t, a.Frame.Rows, b.Frame.Rows, "same seed reproduces the same dataset")
}

func TestLoadReproducesGeneratedDataset(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(t, cfg)

	generated, err := r.Generate(context.Background())
	require.NoError(t, err)

	loaded, err := r.LoadLatest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, generated.Meta.ID, loaded.Meta.ID)
	assert.Equal(t, generated.Frame.Rows, loaded.Frame.Rows)
	assert.Equal(t, generated.Split, loaded.Split)
}

func TestLoadRejectsStaleFingerprint(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(t, cfg)

	_, err := r.Generate(context.Background())
	require.NoError(t, err)

	cfg.Sampling.Seed = 7
	_, err = r.LoadLatest(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSchemaMismatch(err), "stale artifacts must never be silently coerced")
}

func TestLoadWithoutCachedRun(t *testing.T) {
	r := newTestRunner(t, testConfig())
	_, err := r.LoadLatest(context.Background())
	assert.Error(t, err)
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Sampling.SplitIdx = 9
	cfg.Sampling.TestIdx = 8

	r := newTestRunner(t, cfg)
	_, err := r.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err))
}

func TestGenerateHonorsCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Sampling.Sections = 100
	cfg.Sampling.SplitIdx = 80
	cfg.Sampling.TestIdx = 90

	r := newTestRunner(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Generate(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunGNN(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(t, cfg)

	res, err := r.Run(context.Background(), Generate, Train, GNN)
	require.NoError(t, err)
	require.NotNil(t, res.GNN)
	assert.Nil(t, res.PNN)
	assert.Nil(t, res.FNN)

	train, val, test := res.GNN.Train, res.GNN.Val, res.GNN.Test
	assert.Len(t, train.Graphs, 6)
	assert.Len(t, val.Graphs, 2)
	assert.Len(t, test.Graphs, 2)

	// Node features are min-max scaled into [0, 1]
	for _, g := range train.Graphs {
		for _, n := range g.Nodes {
			for _, v := range n.Features {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}

	// Generated batches are persisted and reloadable
	loaded, err := r.store.LoadBatch(res.Dataset.Meta.ID, split.Train)
	require.NoError(t, err)
	assert.Equal(t, train, loaded)
}

func TestRunGNNLoadConsumesPersistedBatches(t *testing.T) {
	cfg := testConfig()
	conn := qt.CreateTestDB(t)
	st := store.NewStore(conn, logger.Logger)
	r := NewRunner(cfg, st, elastic.New(logger.Logger), progress.NewNopEmitter(), logger.Logger)

	gen, err := r.Run(context.Background(), Generate, Train, GNN)
	require.NoError(t, err)

	loaded, err := r.Run(context.Background(), Load, Eval, GNN)
	require.NoError(t, err)
	assert.Equal(t, gen.GNN.Train, loaded.GNN.Train)
	assert.Equal(t, gen.GNN.Val, loaded.GNN.Val)
	assert.Equal(t, gen.GNN.Test, loaded.GNN.Test)

	// A cached batch whose node count disagrees with the frame is stale and
	// must be rejected, never silently swallowed.
	stale := &graph.Batch{
		Graphs: []graph.SectionGraph{{
			SectionID: cfg.Sampling.SplitIdx,
			Nodes:     []graph.Node{{Features: []float64{0, 0, 0, 0, 0}, Targets: []float64{0, 0, 0}}},
			Dist:      [][]float64{{0}},
			Adj:       [][]bool{{false}},
		}},
		Offsets: []int{0},
	}
	require.NoError(t, st.SaveBatch(gen.Dataset.Meta.ID, split.Val, stale))
	_, err = r.Run(context.Background(), Load, Eval, GNN)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaMismatch(err))

	// A split that was never persisted is rebuilt from the frame.
	_, err = conn.Exec(`DELETE FROM graph_batches WHERE split = ?`, split.Val.String())
	require.NoError(t, err)
	rebuilt, err := r.Run(context.Background(), Load, Eval, GNN)
	require.NoError(t, err)
	assert.Equal(t, gen.GNN.Val, rebuilt.GNN.Val)
}

func TestRunPNN(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(t, cfg)

	res, err := r.Run(context.Background(), Generate, Train, PNN)
	require.NoError(t, err)
	require.NotNil(t, res.PNN)

	pts := cfg.Sampling.PointsPerSection()
	assert.Len(t, res.PNN.Tables.XTrain, 6*pts)
	assert.Len(t, res.PNN.Tables.XVal, 2*pts)
	assert.Len(t, res.PNN.Tables.XTest, 2*pts)

	// Train features are min-max scaled into [0, 1]; val/test may exceed the
	// bounds since statistics come from train alone
	for _, row := range res.PNN.Tables.XTrain {
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestRunFNN(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(t, cfg)

	res, err := r.Run(context.Background(), Generate, Eval, FNN)
	require.NoError(t, err)
	require.NotNil(t, res.FNN)
	assert.Equal(t, Eval, res.Phase)

	// Standardized train columns have zero mean
	cols := len(res.FNN.Tables.XTrain[0])
	for j := 0; j < cols; j++ {
		var sum float64
		for _, row := range res.FNN.Tables.XTrain {
			sum += row[j]
		}
		assert.InDelta(t, 0, sum/float64(len(res.FNN.Tables.XTrain)), 1e-9)
	}
}

func TestRunLoadModeReusesCache(t *testing.T) {
	cfg := testConfig()
	r := newTestRunner(t, cfg)

	gen, err := r.Run(context.Background(), Generate, Train, PNN)
	require.NoError(t, err)

	loaded, err := r.Run(context.Background(), Load, Train, PNN)
	require.NoError(t, err)

	assert.Equal(t, gen.Dataset.Meta.ID, loaded.Dataset.Meta.ID)
	assert.Equal(t, gen.PNN.Tables, loaded.PNN.Tables, "cache reload yields identical scaled tables")
}

func TestParseEnums(t *testing.T) {
	m, err := ParseMode("generate")
	require.NoError(t, err)
	assert.Equal(t, Generate, m)

	p, err := ParsePhase("eval")
	require.NoError(t, err)
	assert.Equal(t, Eval, p)

	md, err := ParseModel("pnn")
	require.NoError(t, err)
	assert.Equal(t, PNN, md)

	_, err = ParseMode("stream")
	assert.True(t, errors.IsConfigurationError(err))
	_, err = ParsePhase("predict")
	assert.True(t, errors.IsConfigurationError(err))
	_, err = ParseModel("cnn")
	assert.True(t, errors.IsConfigurationError(err))
}
