// Package conformance runs YAML-defined metric scenarios against the
// statistics engine.
//
// A scenario is one query plus the metric values it must produce. The
// suite under testdata/scenarios pins the engine's observable behavior:
// a replacement parser or a reworked traversal conforms when every
// scenario still passes. Golden files additionally pin the canonical
// JSON report form for byte-level regressions.
package conformance
