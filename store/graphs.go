package store

import (
	"encoding/json"

	"github.com/strataml/strata/errors"
	"github.com/strataml/strata/graph"
	"github.com/strataml/strata/split"
)

const (
	graphBatchUpsertQuery = `
		INSERT INTO graph_batches (run_id, split, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id, split) DO UPDATE SET payload = excluded.payload`

	graphBatchSelectQuery = `
		SELECT payload FROM graph_batches WHERE run_id = ? AND split = ?`
)

// SaveBatch persists one split's graph batch as a JSON payload.
func (s *Store) SaveBatch(runID string, p split.Partition, batch *graph.Batch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return errors.Wrapf(err, "marshal %s graph batch", p)
	}

	if _, err := s.db.Exec(graphBatchUpsertQuery, runID, p.String(), string(payload)); err != nil {
		return wrapDBErr(err, "upsert %s graph batch of run %s", p, runID)
	}

	s.logger.Debugw("Saved graph batch",
		"run_id", runID,
		"split", p.String(),
		"sections", len(batch.Graphs),
		"nodes", batch.NumNodes(),
	)
	return nil
}

// LoadBatch loads one split's graph batch. Returns sql.ErrNoRows when the
// split was never saved for this run.
func (s *Store) LoadBatch(runID string, p split.Partition) (*graph.Batch, error) {
	var payload string
	if err := s.db.QueryRow(graphBatchSelectQuery, runID, p.String()).Scan(&payload); err != nil {
		return nil, err
	}

	var batch graph.Batch
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s graph batch of run %s", p, runID)
	}
	return &batch, nil
}
