package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veldt-io/sparqstat/internal/stats"
)

// ErrNotFound is returned when a requested query does not exist.
var ErrNotFound = errors.New("not found")

// GetQuery fetches one query record by ID. Returns ErrNotFound if no
// query with that ID exists.
func (s *Store) GetQuery(ctx context.Context, id string) (QueryRecord, error) {
	var rec QueryRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, text, batch_token, seq
		FROM queries
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Text, &rec.BatchToken, &rec.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return QueryRecord{}, fmt.Errorf("get query %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return QueryRecord{}, fmt.Errorf("get query %s: %w", id, err)
	}
	return rec, nil
}

// ReadMetrics fetches the stored metrics of one query. A query with no
// metric rows yields an empty (non-nil) mapping, not an error - the
// query may have been ingested but not yet analyzed.
func (s *Store) ReadMetrics(ctx context.Context, queryID string) (stats.Metrics, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, value
		FROM metrics
		WHERE query_id = ?
		ORDER BY name
	`, queryID)
	if err != nil {
		return nil, fmt.Errorf("read metrics %s: %w", queryID, err)
	}
	defer rows.Close()

	metrics := stats.Metrics{}
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("read metrics %s: scan: %w", queryID, err)
		}
		metrics[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read metrics %s: %w", queryID, err)
	}
	return metrics, nil
}

// ListQueries returns all query records in deterministic order: batch
// token first (UUIDv7, so chronological), then sequence within the
// batch. Export walks this order so output is reproducible.
func (s *Store) ListQueries(ctx context.Context) ([]QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, batch_token, seq
		FROM queries
		ORDER BY batch_token, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	var recs []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.BatchToken, &rec.Seq); err != nil {
			return nil, fmt.Errorf("list queries: scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	return recs, nil
}

// ListBatch returns the query records of a single ingest run in
// sequence order.
func (s *Store) ListBatch(ctx context.Context, batchToken string) ([]QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, batch_token, seq
		FROM queries
		WHERE batch_token = ?
		ORDER BY seq
	`, batchToken)
	if err != nil {
		return nil, fmt.Errorf("list batch %s: %w", batchToken, err)
	}
	defer rows.Close()

	var recs []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.BatchToken, &rec.Seq); err != nil {
			return nil, fmt.Errorf("list batch %s: scan: %w", batchToken, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list batch %s: %w", batchToken, err)
	}
	return recs, nil
}
