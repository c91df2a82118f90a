package store

import (
	"encoding/json"

	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/section"
)

const (
	sectionInsertQuery = `
		INSERT INTO sections (run_id, section_id, layers)
		VALUES (?, ?, ?)`

	sectionSelectQuery = `
		SELECT section_id, layers FROM sections
		WHERE run_id = ? ORDER BY section_id ASC`
)

// SaveSections persists a run's sampled sections in one transaction.
func (s *Store) SaveSections(runID string, sections []section.Section) error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrapDBErr(err, "begin tx for sections")
	}

	stmt, err := tx.Prepare(sectionInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare section insert")
	}
	defer stmt.Close()

	for _, sec := range sections {
		layersJSON, err := json.Marshal(sec.Layers)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "marshal layers of section %d", sec.ID)
		}
		if _, err := stmt.Exec(runID, sec.ID, string(layersJSON)); err != nil {
			tx.Rollback()
			return wrapDBErr(err, "insert section %d", sec.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit sections")
	}

	s.logger.Debugw("Saved sections", "run_id", runID, "count", len(sections))
	return nil
}

// LoadSections loads a run's sections in ascending section ID.
func (s *Store) LoadSections(runID string) ([]section.Section, error) {
	rows, err := s.db.Query(sectionSelectQuery, runID)
	if err != nil {
		return nil, wrapDBErr(err, "query sections of run %s", runID)
	}
	defer rows.Close()

	var sections []section.Section
	for rows.Next() {
		var sec section.Section
		var layersJSON string
		if err := rows.Scan(&sec.ID, &layersJSON); err != nil {
			return nil, errors.Wrap(err, "scan section")
		}
		if err := json.Unmarshal([]byte(layersJSON), &sec.Layers); err != nil {
			return nil, errors.Wrapf(err, "unmarshal layers of section %d", sec.ID)
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate sections of run %s", runID)
	}
	return sections, nil
}
