// Package sparql parses SPARQL SELECT queries into the algebra model and
// serializes algebra trees back to query text.
//
// The parser is a recursive-descent scanner over the raw query string.
// It covers the SELECT fragment the statistics engine needs: prologue
// (PREFIX/BASE), projection, basic and property-path triple patterns
// with ; and , continuations, FILTER and BIND constraints, OPTIONAL /
// UNION / MINUS / GRAPH groups, nested sub-selects, VALUES blocks, and
// the five solution modifiers (ORDER BY, GROUP BY, HAVING, LIMIT,
// OFFSET). FILTER, BIND, HAVING, and grouped projection expressions are
// kept as raw text: the statistics engine counts them, it never
// evaluates them.
//
// Grammar conformance is explicitly not a goal. A query the parser
// rejects is reported with a positioned ParseError before any analysis
// runs; a query it accepts yields a well-formed algebra.Query.
package sparql
