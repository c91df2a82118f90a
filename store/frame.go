package store

import (
	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/frame"
)

const (
	frameRowInsertQuery = `
		INSERT INTO frame_rows (run_id, section_id, ord, a, x, z, modulus, thickness, poisson, strain_z, strain_r, strain_t)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	frameRowSelectQuery = `
		SELECT section_id, a, x, z, modulus, thickness, poisson, strain_z, strain_r, strain_t
		FROM frame_rows WHERE run_id = ?
		ORDER BY section_id ASC, ord ASC`
)

// SaveFrame persists the assembled frame in one transaction. The per-section
// row order is recorded so the load path reproduces it exactly.
func (s *Store) SaveFrame(runID string, f *frame.Frame) error {
	tx, err := s.db.Begin()
	if err != nil {
		return wrapDBErr(err, "begin tx for frame rows")
	}

	stmt, err := tx.Prepare(frameRowInsertQuery)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare frame row insert")
	}
	defer stmt.Close()

	ord := 0
	lastSection := -1
	for _, r := range f.Rows {
		if r.SectionID != lastSection {
			ord = 0
			lastSection = r.SectionID
		}
		_, err := stmt.Exec(runID, r.SectionID, ord,
			r.A, r.X, r.Z, r.Modulus, r.Thickness, r.Poisson,
			r.StrainZ, r.StrainR, r.StrainT)
		if err != nil {
			tx.Rollback()
			return wrapDBErr(err, "insert frame row %d of section %d", ord, r.SectionID)
		}
		ord++
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit frame rows")
	}

	s.logger.Debugw("Saved frame", "run_id", runID, "rows", len(f.Rows))
	return nil
}

// LoadFrame loads and reindexes a run's frame. pointsPerSection comes from
// the run fingerprint.
func (s *Store) LoadFrame(runID string, pointsPerSection int) (*frame.Frame, error) {
	rows, err := s.db.Query(frameRowSelectQuery, runID)
	if err != nil {
		return nil, wrapDBErr(err, "query frame rows of run %s", runID)
	}
	defer rows.Close()

	var frameRows []frame.Row
	for rows.Next() {
		var r frame.Row
		err := rows.Scan(&r.SectionID, &r.A, &r.X, &r.Z, &r.Modulus, &r.Thickness,
			&r.Poisson, &r.StrainZ, &r.StrainR, &r.StrainT)
		if err != nil {
			return nil, errors.Wrap(err, "scan frame row")
		}
		frameRows = append(frameRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate frame rows of run %s", runID)
	}

	return frame.Rebuild(frameRows, pointsPerSection), nil
}
