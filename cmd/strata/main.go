package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strataml/strata/cmd/strata/commands"
	"github.com/strataml/strata/logger"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "strata - Pavement response dataset pipeline",
	Long: `strata - Synthetic dataset pipeline for pavement response models.

strata samples layered pavement structures from a constrained parameter grid,
evaluates strain responses with a layered-elastic solver, and shapes the
result into train/validation/test datasets for graph and tabular models.
Generated datasets are cached in SQLite and reloaded when the stored
configuration fingerprint matches.

Available commands:
  generate - Generate a fresh dataset and cache it
  load     - Load the latest cached dataset
  config   - Inspect effective configuration
  db       - Manage the artifact database
  version  - Show version information

Examples:
  strata generate --model gnn --phase train   # Generate and shape for the graph model
  strata load --model fnn --phase eval        # Reload cache, shape for feed-forward eval
  strata config show                          # Show effective configuration
  strata db stats                             # Show artifact database statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize global logger before any command runs
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit structured JSON output instead of terminal formatting")

	// Add commands
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.LoadCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
