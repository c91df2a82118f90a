package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/sym"
)

// DbCmd groups artifact database commands.
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: sym.DB + " Manage the artifact database",
	Long: sym.DB + ` db — Manage the strata artifact database

Examples:
  strata db stats          # Show run, section, and row counts`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show artifact database statistics",
	Long:  "Display run, section, frame row, and graph batch counts for the artifact database",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbStatsCmd)
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := conf.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase(cfg, "")
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	var runs, sections, frameRows, batches int
	err = database.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM runs),
			(SELECT COUNT(*) FROM sections),
			(SELECT COUNT(*) FROM frame_rows),
			(SELECT COUNT(*) FROM graph_batches)
	`).Scan(&runs, &sections, &frameRows, &batches)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "failed to query database stats")
	}

	fmt.Printf("%s Artifact Database Statistics\n", sym.DB)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path: %s\n", cfg.Database.Path)
	fmt.Printf("Runs:          %d\n", runs)
	fmt.Printf("Sections:      %d\n", sections)
	fmt.Printf("Frame Rows:    %d\n", frameRows)
	fmt.Printf("Graph Batches: %d\n", batches)

	if runs > 0 {
		var runID string
		var createdAt string
		var seed int64
		var nSections int
		err = database.QueryRow(`
			SELECT id, created_at, seed, sections FROM runs
			ORDER BY created_at DESC, rowid DESC LIMIT 1
		`).Scan(&runID, &createdAt, &seed, &nSections)
		if err != nil {
			return errors.Wrap(err, "failed to query latest run")
		}
		fmt.Println()
		fmt.Printf("Latest Run:    %s\n", runID)
		fmt.Printf("  created:     %s\n", createdAt)
		fmt.Printf("  seed:        %d\n", seed)
		fmt.Printf("  sections:    %d\n", nSections)
	}

	return nil
}
