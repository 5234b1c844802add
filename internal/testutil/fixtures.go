// Package testutil provides shorthand constructors for algebra trees
// so tests can state a query's shape in a few lines instead of a page
// of struct literals.
package testutil

import "github.com/veldt-io/sparqstat/internal/algebra"

// IRI builds a bound IRI term.
func IRI(value string) algebra.IRI { return algebra.IRI{Value: value} }

// Var builds an unbound variable term.
func Var(name string) algebra.Variable { return algebra.Variable{Name: name} }

// Lit builds an untyped literal term.
func Lit(lexical string) algebra.Literal { return algebra.Literal{Lexical: lexical} }

// Triple builds a basic triple pattern.
func Triple(s, p, o algebra.Term) *algebra.BasicTriple {
	return &algebra.BasicTriple{S: s, P: p, O: o}
}

// PathTriple builds a property-path triple pattern.
func PathTriple(s algebra.Term, path algebra.Path, o algebra.Term) *algebra.PathTriple {
	return &algebra.PathTriple{S: s, Path: path, O: o}
}

// Step builds a terminal property step over a bound IRI.
func Step(iri string) *algebra.PropertyStep {
	return &algebra.PropertyStep{Predicate: algebra.IRI{Value: iri}}
}

// VarStep builds a terminal property step over a variable, i.e. an
// unbound step that must never count as a resource.
func VarStep(name string) *algebra.PropertyStep {
	return &algebra.PropertyStep{Predicate: algebra.Variable{Name: name}}
}

// Seq builds a sequence path node.
func Seq(left, right algebra.Path) *algebra.PathBinary {
	return &algebra.PathBinary{Op: algebra.PathSequence, Left: left, Right: right}
}

// Alt builds an alternative path node.
func Alt(left, right algebra.Path) *algebra.PathBinary {
	return &algebra.PathBinary{Op: algebra.PathAlternative, Left: left, Right: right}
}

// Inv builds an inverse path node.
func Inv(inner algebra.Path) *algebra.PathUnary {
	return &algebra.PathUnary{Op: algebra.PathInverse, Inner: inner}
}

// Neg builds a negated path node.
func Neg(inner algebra.Path) *algebra.PathUnary {
	return &algebra.PathUnary{Op: algebra.PathNegated, Inner: inner}
}

// Filter builds a FILTER pattern with a raw expression.
func Filter(expr string) *algebra.FilterPattern {
	return &algebra.FilterPattern{Expr: expr}
}

// Pattern builds a plain graph pattern from triple patterns.
func Pattern(patterns ...algebra.TriplePattern) *algebra.GraphPattern {
	return &algebra.GraphPattern{Kind: algebra.GroupPlain, Patterns: patterns}
}

// Sub wraps a query as a subquery pattern.
func Sub(q *algebra.Query) *algebra.SubQuery {
	return &algebra.SubQuery{Query: q}
}

// Select builds a query projecting the named variables over gp.
// Limit and Offset start at their absent values.
func Select(vars []string, gp *algebra.GraphPattern) *algebra.Query {
	q := algebra.NewQuery()
	for _, name := range vars {
		q.Variables = append(q.Variables, algebra.Variable{Name: name})
	}
	q.Pattern = gp
	return q
}

// Values builds an inline-data block binding the named variables to
// the given rows.
func Values(vars []string, rows ...[]algebra.Term) *algebra.InlineData {
	inline := &algebra.InlineData{}
	for _, name := range vars {
		inline.Variables = append(inline.Variables, algebra.Variable{Name: name})
	}
	inline.Rows = rows
	return inline
}
