package pipeline

import (
	"database/sql"

	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
	"github.com/strataml/strata/graph"
	"github.com/strataml/strata/split"
	"github.com/strataml/strata/sym"
)

// Result is the model-shaped dataset handed to a consumer. Exactly one of
// GNN, PNN, FNN is set, matching Model.
type Result struct {
	Model   Model
	Phase   Phase
	Dataset *Dataset

	GNN *GNNData
	PNN *PNNData
	FNN *FNNData
}

// GNNData is the graph-model handoff: one batch per partition with min-max
// scaled node features and targets. Distances and adjacency are computed from
// unscaled coordinates before scaling.
type GNNData struct {
	Train, Val, Test *graph.Batch

	FeatureScaler *split.MinMaxScaler
	TargetScaler  *split.MinMaxScaler
}

// PNNData is the physics-informed tabular handoff with min-max scaling.
type PNNData struct {
	Tables split.Tables

	FeatureScaler *split.MinMaxScaler
	TargetScaler  *split.MinMaxScaler
}

// FNNData is the plain feed-forward tabular handoff with standardization.
type FNNData struct {
	Tables split.Tables

	FeatureScaler *split.StandardScaler
	TargetScaler  *split.StandardScaler
}

// dispatch shapes the dataset for the requested model family. Scalers are
// always fit on the train partition alone, behind the leakage guard, no
// matter which phase the result serves.
func (r *Runner) dispatch(ds *Dataset, mode Mode, phase Phase, model Model) (*Result, error) {
	res := &Result{Model: model, Phase: phase, Dataset: ds}

	trainRows, valRows, testRows := split.PartitionFrame(ds.Frame, ds.Split)
	if err := split.GuardTrainOnly(ds.Split, trainRows); err != nil {
		return nil, err
	}
	r.logger.Debugw("Partitioned frame by section ID",
		"symbol", sym.Split,
		"train_rows", len(trainRows),
		"val_rows", len(valRows),
		"test_rows", len(testRows),
	)

	var err error
	switch model {
	case GNN:
		res.GNN, err = r.buildGNN(ds, mode, trainRows)
	case PNN:
		res.PNN, err = buildPNN(trainRows, valRows, testRows)
	case FNN:
		res.FNN, err = buildFNN(trainRows, valRows, testRows)
	default:
		err = errors.NewConfigurationError("unknown model %d", model)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// buildGNN shapes the graph handoff. Generation builds per-partition batches,
// scales node vectors with train-fit min-max statistics, and persists them.
// Load mode reads the persisted batches back, rebuilding from the frame only
// when a partition was never saved.
func (r *Runner) buildGNN(ds *Dataset, mode Mode, trainRows []frame.Row) (*GNNData, error) {
	builder, err := graph.NewBuilder(r.cfg.Graph, r.logger)
	if err != nil {
		return nil, err
	}

	fs, ts, err := fitMinMax(trainRows)
	if err != nil {
		return nil, err
	}

	data := &GNNData{FeatureScaler: fs, TargetScaler: ts}
	for _, part := range []struct {
		p   split.Partition
		dst **graph.Batch
	}{
		{split.Train, &data.Train},
		{split.Val, &data.Val},
		{split.Test, &data.Test},
	} {
		var batch *graph.Batch
		if mode == Load {
			if batch, err = r.loadBatch(ds, part.p); err != nil {
				return nil, err
			}
		}
		if batch == nil {
			if batch, err = builder.BuildBatch(ds.Frame, ds.Split.IDs(part.p)); err != nil {
				return nil, err
			}
			if err := scaleBatch(batch, fs, ts); err != nil {
				return nil, errors.Wrapf(err, "scale %s batch", part.p)
			}
			if mode == Generate {
				if err := r.store.SaveBatch(ds.Meta.ID, part.p, batch); err != nil {
					return nil, err
				}
			}
		}
		*part.dst = batch
	}
	return data, nil
}

// loadBatch reads one partition's persisted graph batch, validating its node
// count against the frame's rows for that partition. A partition that was
// never saved returns nil so the caller rebuilds it.
func (r *Runner) loadBatch(ds *Dataset, p split.Partition) (*graph.Batch, error) {
	batch, err := r.store.LoadBatch(ds.Meta.ID, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debugw("No persisted graph batch, rebuilding from frame",
				"symbol", sym.Graph,
				"run_id", ds.Meta.ID,
				"split", p.String(),
			)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "load %s graph batch of run %s", p, ds.Meta.ID)
	}

	want := 0
	for _, id := range ds.Split.IDs(p) {
		want += len(ds.Frame.SectionRows(id))
	}
	if got := batch.NumNodes(); got != want {
		return nil, errors.NewSchemaMismatchError(
			"cached %s graph batch of run %s has %d nodes, frame has %d", p, ds.Meta.ID, got, want)
	}
	return batch, nil
}

// buildPNN scales the tabular matrices with train-fit min-max statistics.
func buildPNN(trainRows, valRows, testRows []frame.Row) (*PNNData, error) {
	fs, ts, err := fitMinMax(trainRows)
	if err != nil {
		return nil, err
	}
	tables, err := scaleTables(trainRows, valRows, testRows, fs, ts)
	if err != nil {
		return nil, err
	}
	return &PNNData{Tables: tables, FeatureScaler: fs, TargetScaler: ts}, nil
}

// buildFNN scales the tabular matrices with train-fit standardization.
func buildFNN(trainRows, valRows, testRows []frame.Row) (*FNNData, error) {
	xTrain, yTrain := split.Matrices(trainRows)

	fs := &split.StandardScaler{}
	if err := fs.Fit(xTrain); err != nil {
		return nil, errors.Wrap(err, "fit feature scaler")
	}
	ts := &split.StandardScaler{}
	if err := ts.Fit(yTrain); err != nil {
		return nil, errors.Wrap(err, "fit target scaler")
	}

	tables, err := scaleTables(trainRows, valRows, testRows, fs, ts)
	if err != nil {
		return nil, err
	}
	return &FNNData{Tables: tables, FeatureScaler: fs, TargetScaler: ts}, nil
}

// fitMinMax fits min-max feature and target scalers on the train rows.
func fitMinMax(trainRows []frame.Row) (*split.MinMaxScaler, *split.MinMaxScaler, error) {
	xTrain, yTrain := split.Matrices(trainRows)

	fs := &split.MinMaxScaler{}
	if err := fs.Fit(xTrain); err != nil {
		return nil, nil, errors.Wrap(err, "fit feature scaler")
	}
	ts := &split.MinMaxScaler{}
	if err := ts.Fit(yTrain); err != nil {
		return nil, nil, errors.Wrap(err, "fit target scaler")
	}
	return fs, ts, nil
}

// scaleTables transforms all three partitions with the train-fit scalers.
func scaleTables(trainRows, valRows, testRows []frame.Row, fs, ts split.Scaler) (split.Tables, error) {
	var t split.Tables
	var err error

	for _, part := range []struct {
		rows []frame.Row
		x    *[][]float64
		y    *[][]float64
	}{
		{trainRows, &t.XTrain, &t.YTrain},
		{valRows, &t.XVal, &t.YVal},
		{testRows, &t.XTest, &t.YTest},
	} {
		x, y := split.Matrices(part.rows)
		if *part.x, err = fs.Transform(x); err != nil {
			return split.Tables{}, err
		}
		if *part.y, err = ts.Transform(y); err != nil {
			return split.Tables{}, err
		}
	}
	return t, nil
}

// scaleBatch transforms every node's feature and target vectors in place.
func scaleBatch(batch *graph.Batch, fs, ts split.Scaler) error {
	for gi := range batch.Graphs {
		for ni := range batch.Graphs[gi].Nodes {
			node := &batch.Graphs[gi].Nodes[ni]

			scaled, err := fs.Transform([][]float64{node.Features})
			if err != nil {
				return err
			}
			node.Features = scaled[0]

			scaled, err = ts.Transform([][]float64{node.Targets})
			if err != nil {
				return err
			}
			node.Targets = scaled[0]
		}
	}
	return nil
}
