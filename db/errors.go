package db

import (
	"strings"

	"github.com/strataml/strata/errors"
)

// ErrDatabaseClosed marks store operations attempted after the artifact
// database connection was closed, e.g. a pipeline call racing CLI shutdown.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err stems from a closed connection. The
// sql package and the sqlite driver surface this as unexported error values,
// so a message check backs up the sentinel comparison.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
