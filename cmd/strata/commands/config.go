package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
)

// ConfigCmd groups configuration inspection commands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect strata configuration",
	Long: `config — Inspect the effective strata configuration

Configuration merges defaults, ~/.strata/config.toml, a project-local
strata.toml, and STRATA_* environment variables, in that order.

Examples:
  strata config show          # Show effective configuration
  strata config show --json   # Machine-readable output`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := conf.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to format configuration")
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Database:\n")
	fmt.Printf("  path:               %s\n", cfg.Database.Path)
	fmt.Printf("Materials:\n")
	fmt.Printf("  types:              %v\n", cfg.Materials.Types)
	fmt.Printf("  sublayer_max:       %v\n", cfg.Materials.SublayerMax)
	fmt.Printf("  thickness_range:    %v (increment %v)\n", cfg.Materials.ThicknessRange, cfg.Materials.ThicknessIncrement)
	fmt.Printf("  modulus_range:      %v (increment %v)\n", cfg.Materials.ModulusRange, cfg.Materials.ModulusIncrement)
	fmt.Printf("  poisson_range:      %v\n", cfg.Materials.PoissonRange)
	fmt.Printf("Sampling:\n")
	fmt.Printf("  sections:           %d (split %d / test %d)\n", cfg.Sampling.Sections, cfg.Sampling.SplitIdx, cfg.Sampling.TestIdx)
	fmt.Printf("  points per section: %d (z %d x x %d x a %d)\n", cfg.Sampling.PointsPerSection(), cfg.Sampling.ZPoints, cfg.Sampling.XPoints, cfg.Sampling.APoints)
	fmt.Printf("  contact radius:     %v in, factor %g\n", cfg.Sampling.ARange, cfg.Sampling.Factor)
	fmt.Printf("  seed:               %d\n", cfg.Sampling.Seed)
	fmt.Printf("Load:\n")
	fmt.Printf("  pressure:           %g psi\n", cfg.Load.Pressure)
	fmt.Printf("Filter:\n")
	fmt.Printf("  mode:               %s (threshold %g)\n", cfg.Filter.Mode, cfg.Filter.Threshold)
	fmt.Printf("Graph:\n")
	fmt.Printf("  connectivity:       %s (k %d)\n", cfg.Graph.Connectivity, cfg.Graph.K)
	fmt.Printf("  metric:             %s (depth weight %g)\n", cfg.Graph.Metric, cfg.Graph.DepthWeight)
	fmt.Printf("Pipeline:\n")
	fmt.Printf("  workers:            %d\n", cfg.Pipeline.Workers)
	return nil
}
