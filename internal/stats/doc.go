// Package stats computes structural statistics over parsed SPARQL
// queries.
//
// The single entry point is Analyze, a pure function from an
// algebra.Query to a flat metric mapping. Every pass accumulates counts
// via return values only - no counters are shared across recursive
// calls - so traversal order can never introduce double-count or
// ordering bugs.
//
// Analyze is total: it never returns an error, panics, or performs I/O.
// It assumes the tree satisfies the algebra package invariants (the
// parser's responsibility); it is reentrant and safe to call from
// multiple goroutines on independent Query values.
package stats
