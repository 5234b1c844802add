// Package store persists analyzed queries and their metrics in SQLite.
//
// Queries are keyed by their content-addressed ID (see internal/report),
// so re-ingesting the same text is a no-op. Metrics are one row per
// (query, metric name) with ON CONFLICT upsert, so re-running analysis
// after an engine change replaces values in place. Each ingest run is
// tagged with a batch token (UUIDv7, so tokens sort by creation time)
// and a sequence number giving queries a stable order within the run.
//
// The database uses WAL mode with a single writer connection; reads are
// concurrent with writes. Schema changes go through PRAGMA user_version
// migrations.
package store
