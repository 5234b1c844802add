// Package algebra provides the in-memory representation of a parsed
// SPARQL query: terms, triple patterns, property paths, graph patterns,
// and solution modifiers.
//
// This package contains type definitions only. All other internal
// packages import algebra; algebra imports nothing internal. This keeps
// the query model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Values are read-only after construction. The parser (or a test
//     fixture) builds the tree once; analysis never mutates it.
//   - Term, TriplePattern, and Path are sealed interfaces using the
//     marker method pattern. Only types in this package implement them,
//     which enables exhaustive type switches in every analysis pass.
//   - Ownership is a strict tree: each child pattern and sub-path has
//     exactly one parent, so traversals are cycle-free by construction.
//   - LIMIT and OFFSET use the Unset sentinel (-1), never pointers.
package algebra
