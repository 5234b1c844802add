package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-io/sparqstat/internal/stats"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Pragmas(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1")) // NORMAL
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.WriteQuery(context.Background(), QueryRecord{
		ID: "q1", Text: "SELECT * WHERE { ?s ?p ?o }", BatchToken: "b1", Seq: 0,
	}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	rec, err := s2.GetQuery(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * WHERE { ?s ?p ?o }", rec.Text)
	assert.NoError(t, s2.verifyPragma("user_version", "1"))
}

func TestWriteQuery_DuplicateIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := QueryRecord{ID: "q1", Text: "SELECT ?s WHERE { ?s ?p ?o }", BatchToken: "b1", Seq: 0}
	require.NoError(t, s.WriteQuery(ctx, first))

	// Same content-addressed ID arriving in a later batch: earlier
	// record stands.
	require.NoError(t, s.WriteQuery(ctx, QueryRecord{
		ID: "q1", Text: first.Text, BatchToken: "b2", Seq: 7,
	}))

	rec, err := s.GetQuery(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "b1", rec.BatchToken)
	assert.Equal(t, int64(0), rec.Seq)
}

func TestWriteMetrics_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteQuery(ctx, QueryRecord{
		ID: "q1", Text: "SELECT ?s WHERE { ?s ?p ?o }", BatchToken: "b1", Seq: 0,
	}))

	require.NoError(t, s.WriteMetrics(ctx, "q1", stats.Metrics{
		stats.MetricTriples:   1,
		stats.MetricVariables: 3,
	}))

	// Re-analysis replaces values in place.
	require.NoError(t, s.WriteMetrics(ctx, "q1", stats.Metrics{
		stats.MetricTriples:   5,
		stats.MetricVariables: 3,
	}))

	got, err := s.ReadMetrics(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, stats.Metrics{
		stats.MetricTriples:   5,
		stats.MetricVariables: 3,
	}, got)
}

func TestWriteMetrics_UnknownQueryFails(t *testing.T) {
	s := newTestStore(t)

	err := s.WriteMetrics(context.Background(), "missing", stats.Metrics{
		stats.MetricTriples: 1,
	})
	assert.Error(t, err, "foreign key constraint must reject orphan metrics")
}

func TestReadMetrics_EmptyIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteQuery(ctx, QueryRecord{
		ID: "q1", Text: "SELECT ?s WHERE { ?s ?p ?o }", BatchToken: "b1", Seq: 0,
	}))

	got, err := s.ReadMetrics(ctx, "q1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetQuery_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetQuery(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListQueries_Ordering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Inserted out of order on purpose.
	records := []QueryRecord{
		{ID: "q3", Text: "c", BatchToken: "b2", Seq: 0},
		{ID: "q2", Text: "b", BatchToken: "b1", Seq: 1},
		{ID: "q1", Text: "a", BatchToken: "b1", Seq: 0},
	}
	for _, rec := range records {
		require.NoError(t, s.WriteQuery(ctx, rec))
	}

	got, err := s.ListQueries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "q1", got[0].ID)
	assert.Equal(t, "q2", got[1].ID)
	assert.Equal(t, "q3", got[2].ID)
}

func TestListBatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteQuery(ctx, QueryRecord{ID: "q1", Text: "a", BatchToken: "b1", Seq: 1}))
	require.NoError(t, s.WriteQuery(ctx, QueryRecord{ID: "q2", Text: "b", BatchToken: "b1", Seq: 0}))
	require.NoError(t, s.WriteQuery(ctx, QueryRecord{ID: "q3", Text: "c", BatchToken: "b2", Seq: 0}))

	got, err := s.ListBatch(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q2", got[0].ID)
	assert.Equal(t, "q1", got[1].ID)
}
