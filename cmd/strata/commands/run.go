package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/logger"
	"github.com/strataml/strata/pipeline"
	"github.com/strataml/strata/progress"
	"github.com/strataml/strata/solver/elastic"
	"github.com/strataml/strata/store"
	"github.com/strataml/strata/sym"
)

// GenerateCmd generates a fresh dataset and caches it.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: sym.Run + " Generate a fresh dataset",
	Long: sym.Run + ` generate — Sample sections, solve, assemble, and cache a dataset

Samples pavement sections from the configured material grid, evaluates strain
responses across the worker pool, assembles the dataset frame, and persists
everything under a new run in the artifact database. The result is then
shaped for the requested model family.

Examples:
  strata generate                          # PNN-shaped training dataset
  strata generate --model gnn              # Graph batches per split
  strata generate --model fnn --phase eval # Standardized tables for evaluation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.Generate)
	},
}

// LoadCmd loads the latest cached dataset.
var LoadCmd = &cobra.Command{
	Use:   "load",
	Short: sym.DB + " Load the latest cached dataset",
	Long: sym.DB + ` load — Reload the most recent cached dataset

Loads the latest run from the artifact database after validating its
configuration fingerprint against the active configuration. A fingerprint
mismatch fails loudly; cached artifacts are never coerced.

Examples:
  strata load                    # PNN-shaped training dataset from cache
  strata load --model gnn        # Rebuild graph batches from the cached frame`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.Load)
	},
}

var (
	modelFlag string
	phaseFlag string
	dbFlag    string
)

func init() {
	for _, cmd := range []*cobra.Command{GenerateCmd, LoadCmd} {
		cmd.Flags().StringVar(&modelFlag, "model", "pnn", "Model family to shape the dataset for: gnn, pnn, or fnn")
		cmd.Flags().StringVar(&phaseFlag, "phase", "train", "Consumer phase: train or eval")
		cmd.Flags().StringVar(&dbFlag, "db", "", "Artifact database path (default: configured database.path)")
	}
}

func runPipeline(cmd *cobra.Command, mode pipeline.Mode) error {
	model, err := pipeline.ParseModel(modelFlag)
	if err != nil {
		return err
	}
	phase, err := pipeline.ParsePhase(phaseFlag)
	if err != nil {
		return err
	}

	cfg, err := conf.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase(cfg, dbFlag)
	if err != nil {
		return err
	}
	defer database.Close()

	verbosity, _ := cmd.Flags().GetCount("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	var emitter progress.Emitter
	if jsonOutput {
		emitter = progress.NewJSONEmitter()
	} else {
		emitter = progress.NewCLIEmitter(verbosity)
	}

	runner := pipeline.NewRunner(cfg,
		store.NewStore(database, logger.Logger),
		elastic.New(logger.Logger),
		emitter,
		logger.Logger,
	)

	res, err := runner.Run(cmd.Context(), mode, phase, model)
	if err != nil {
		return err
	}

	printResult(res)
	return nil
}

// printResult summarizes the shaped dataset on stdout.
func printResult(res *pipeline.Result) {
	ds := res.Dataset
	train, val, test := ds.Split.Counts()

	fmt.Printf("%s Run %s\n", sym.Run, ds.Meta.ID)
	fmt.Printf("  sections: %d (train %d / val %d / test %d)\n", ds.Split.N, train, val, test)
	fmt.Printf("  rows:     %d\n", len(ds.Frame.Rows))
	if len(ds.Excluded) > 0 {
		fmt.Printf("  excluded: %d sections after solver divergence\n", len(ds.Excluded))
	}

	switch res.Model {
	case pipeline.GNN:
		fmt.Printf("  %s graph batches: train %d nodes, val %d, test %d\n", sym.Graph,
			res.GNN.Train.NumNodes(), res.GNN.Val.NumNodes(), res.GNN.Test.NumNodes())
	case pipeline.PNN:
		fmt.Printf("  %s tables: train %d rows, val %d, test %d (min-max scaled)\n", sym.Frame,
			len(res.PNN.Tables.XTrain), len(res.PNN.Tables.XVal), len(res.PNN.Tables.XTest))
	case pipeline.FNN:
		fmt.Printf("  %s tables: train %d rows, val %d, test %d (standardized)\n", sym.Frame,
			len(res.FNN.Tables.XTrain), len(res.FNN.Tables.XVal), len(res.FNN.Tables.XTest))
	}
}
