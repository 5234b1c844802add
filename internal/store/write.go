package store

import (
	"context"
	"fmt"

	"github.com/veldt-io/sparqstat/internal/stats"
)

// QueryRecord is one ingested query.
type QueryRecord struct {
	ID         string // content-addressed (report.QueryID)
	Text       string // raw query text
	BatchToken string // UUIDv7 of the ingest run
	Seq        int64  // position within the batch
}

// WriteQuery inserts a query record. Uses ON CONFLICT(id) DO NOTHING
// for idempotency: the ID is content-addressed, so a duplicate means
// the same text was ingested before and the earlier batch/seq stands.
// Other constraint violations (e.g. NOT NULL) still return errors.
func (s *Store) WriteQuery(ctx context.Context, rec QueryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO queries
		(id, text, batch_token, seq)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Text,
		rec.BatchToken,
		rec.Seq,
	)
	if err != nil {
		return fmt.Errorf("write query: %w", err)
	}

	return nil
}

// WriteMetrics upserts the metrics of one query in a single
// transaction, in report order. Re-analysis replaces values in place
// via ON CONFLICT(query_id, name) DO UPDATE.
//
// The query referenced by queryID must exist (foreign key constraint).
func (s *Store) WriteMetrics(ctx context.Context, queryID string, metrics stats.Metrics) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write metrics: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metrics (query_id, name, value)
		VALUES (?, ?, ?)
		ON CONFLICT(query_id, name) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		return fmt.Errorf("write metrics: prepare: %w", err)
	}
	defer stmt.Close()

	for _, name := range stats.Names {
		value, ok := metrics[name]
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx, queryID, name, value); err != nil {
			return fmt.Errorf("write metrics: %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write metrics: commit: %w", err)
	}

	return nil
}
