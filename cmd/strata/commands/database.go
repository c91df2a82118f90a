package commands

import (
	"database/sql"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/db"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/logger"
)

// openDatabase opens and migrates the artifact database. If dbPath is empty,
// the configured path is used. Uses logger.Logger for db operations.
func openDatabase(cfg *conf.Config, dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}
	return database, nil
}
