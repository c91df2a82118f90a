// Package store persists dataset artifacts to SQLite: run metadata, sampled
// sections, assembled frame rows, and batched graphs. A run records the
// configuration fingerprint it was generated under, and every load validates
// that fingerprint against the active configuration before handing back data.
package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/strataml/strata/conf"
	"github.com/strataml/strata/db"
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
)

// Query constants
const (
	runInsertQuery = `
		INSERT INTO runs (id, seed, sections, points_per_section, split_idx, test_idx, feature_columns, target_columns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	runSelectQuery = `
		SELECT id, created_at, seed, sections, points_per_section, split_idx, test_idx, feature_columns, target_columns
		FROM runs WHERE id = ?`

	runLatestQuery = `
		SELECT id, created_at, seed, sections, points_per_section, split_idx, test_idx, feature_columns, target_columns
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`
)

// RunMeta is the configuration fingerprint of one generation run. Artifacts
// load only when the fingerprint matches the active configuration.
type RunMeta struct {
	ID               string
	CreatedAt        time.Time
	Seed             int64
	Sections         int
	PointsPerSection int
	SplitIdx         int
	TestIdx          int
	FeatureColumns   []string
	TargetColumns    []string
}

// NewRunMeta builds the fingerprint of a fresh run under cfg.
func NewRunMeta(cfg *conf.Config) RunMeta {
	return RunMeta{
		ID:               uuid.New().String(),
		Seed:             cfg.Sampling.Seed,
		Sections:         cfg.Sampling.Sections,
		PointsPerSection: cfg.Sampling.PointsPerSection(),
		SplitIdx:         cfg.Sampling.SplitIdx,
		TestIdx:          cfg.Sampling.TestIdx,
		FeatureColumns:   frame.FeatureColumns,
		TargetColumns:    frame.TargetColumns,
	}
}

// ValidateAgainst checks the stored fingerprint against the active
// configuration. Any disagreement is a schema mismatch; cached artifacts are
// never silently coerced to a new configuration.
func (m RunMeta) ValidateAgainst(cfg *conf.Config) error {
	if m.Seed != cfg.Sampling.Seed {
		return errors.NewSchemaMismatchError("run %s was generated with seed %d, config has %d", m.ID, m.Seed, cfg.Sampling.Seed)
	}
	if m.Sections != cfg.Sampling.Sections {
		return errors.NewSchemaMismatchError("run %s has %d sections, config wants %d", m.ID, m.Sections, cfg.Sampling.Sections)
	}
	if got := cfg.Sampling.PointsPerSection(); m.PointsPerSection != got {
		return errors.NewSchemaMismatchError("run %s has %d points per section, config wants %d", m.ID, m.PointsPerSection, got)
	}
	if m.SplitIdx != cfg.Sampling.SplitIdx || m.TestIdx != cfg.Sampling.TestIdx {
		return errors.NewSchemaMismatchError("run %s was split at [%d, %d), config wants [%d, %d)",
			m.ID, m.SplitIdx, m.TestIdx, cfg.Sampling.SplitIdx, cfg.Sampling.TestIdx)
	}
	if !equalColumns(m.FeatureColumns, frame.FeatureColumns) {
		return errors.NewSchemaMismatchError("run %s has feature columns %v, current schema is %v", m.ID, m.FeatureColumns, frame.FeatureColumns)
	}
	if !equalColumns(m.TargetColumns, frame.TargetColumns) {
		return errors.NewSchemaMismatchError("run %s has target columns %v, current schema is %v", m.ID, m.TargetColumns, frame.TargetColumns)
	}
	return nil
}

func equalColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Store persists and loads dataset artifacts against a migrated database.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewStore creates a new artifact store.
func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// CreateRun records a run fingerprint.
func (s *Store) CreateRun(meta RunMeta) error {
	featureJSON, err := json.Marshal(meta.FeatureColumns)
	if err != nil {
		return errors.Wrap(err, "marshal feature columns")
	}
	targetJSON, err := json.Marshal(meta.TargetColumns)
	if err != nil {
		return errors.Wrap(err, "marshal target columns")
	}

	_, err = s.db.Exec(runInsertQuery,
		meta.ID,
		meta.Seed,
		meta.Sections,
		meta.PointsPerSection,
		meta.SplitIdx,
		meta.TestIdx,
		string(featureJSON),
		string(targetJSON),
	)
	if err != nil {
		return wrapDBErr(err, "insert run %s", meta.ID)
	}
	return nil
}

// wrapDBErr adds context to a driver error. Use-after-close is marked with
// db.ErrDatabaseClosed so callers can tell a shutdown race from bad data.
func wrapDBErr(err error, format string, args ...interface{}) error {
	if db.IsDatabaseClosed(err) {
		err = errors.Mark(err, db.ErrDatabaseClosed)
	}
	return errors.Wrapf(err, format, args...)
}

// GetRun loads one run fingerprint by ID.
func (s *Store) GetRun(id string) (RunMeta, error) {
	return s.scanRun(s.db.QueryRow(runSelectQuery, id))
}

// LatestRun loads the most recently created run fingerprint. Returns
// sql.ErrNoRows when no run has been recorded.
func (s *Store) LatestRun() (RunMeta, error) {
	return s.scanRun(s.db.QueryRow(runLatestQuery))
}

func (s *Store) scanRun(row *sql.Row) (RunMeta, error) {
	var m RunMeta
	var featureJSON, targetJSON string
	err := row.Scan(&m.ID, &m.CreatedAt, &m.Seed, &m.Sections, &m.PointsPerSection,
		&m.SplitIdx, &m.TestIdx, &featureJSON, &targetJSON)
	if err != nil {
		return RunMeta{}, err
	}
	if err := json.Unmarshal([]byte(featureJSON), &m.FeatureColumns); err != nil {
		return RunMeta{}, errors.Wrapf(err, "unmarshal feature columns of run %s", m.ID)
	}
	if err := json.Unmarshal([]byte(targetJSON), &m.TargetColumns); err != nil {
		return RunMeta{}, errors.Wrapf(err, "unmarshal target columns of run %s", m.ID)
	}
	return m, nil
}
