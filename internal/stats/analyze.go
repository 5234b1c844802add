package stats

import (
	"github.com/veldt-io/sparqstat/internal/algebra"
)

// Analyze computes the full metric mapping for a parsed query.
//
// Structural counts (triples, filters, resources, modifiers) recurse
// into every subquery. The variable count covers the outermost
// projection only - it is a projection-level figure, not a structural
// one. numberOfResourcesPredicates is derived, never independently
// computed, so the invariant
//
//	numberOfResourcesPredicates = numberOfResources - numberOfResourcesSubjectsObjects
//
// holds for every input.
func Analyze(q *algebra.Query) Metrics {
	resources := countResources(q.Pattern, true)
	subjectsObjects := countResources(q.Pattern, false)

	orderBy := countOrderBy(q)
	limit := countLimit(q)
	having := countHaving(q)
	offset := countOffset(q)
	groupBy := countGroupBy(q)

	return Metrics{
		MetricTriples:                  countTriples(q.Pattern),
		MetricFilters:                  countFilters(q.Pattern),
		MetricVariables:                int64(len(q.DistinctVariables())),
		MetricResources:                resources,
		MetricResourcesSubjectsObjects: subjectsObjects,
		MetricResourcesPredicates:      resources - subjectsObjects,
		MetricModifierOrderBy:          orderBy,
		MetricModifierLimit:            limit,
		MetricModifierHaving:           having,
		MetricModifierOffset:           offset,
		MetricModifierGroupBy:          groupBy,
		MetricModifiers:                orderBy + limit + having + offset + groupBy,
		MetricNormalizedLength:         NormalizedLength(q),
	}
}

// countTriples sums triple templates over the pattern tree. Basic and
// path triples count 1 each; filters and binds count 0; a subquery adds
// the triple count of its nested pattern, not 1 for the wrapper.
func countTriples(gp *algebra.GraphPattern) int64 {
	if gp == nil {
		return 0
	}
	var n int64
	for _, p := range gp.Patterns {
		switch t := p.(type) {
		case *algebra.BasicTriple:
			n++
		case *algebra.PathTriple:
			n++
		case *algebra.SubQuery:
			n += countTriples(t.Query.Pattern)
		case *algebra.FilterPattern, *algebra.BindPattern:
			// Non-relational, excluded.
		}
	}
	for _, c := range gp.Children {
		n += countTriples(c)
	}
	return n
}

// countFilters counts FILTER constraints, recursing into subqueries.
func countFilters(gp *algebra.GraphPattern) int64 {
	if gp == nil {
		return 0
	}
	var n int64
	for _, p := range gp.Patterns {
		switch t := p.(type) {
		case *algebra.FilterPattern:
			n++
		case *algebra.SubQuery:
			n += countFilters(t.Query.Pattern)
		case *algebra.BasicTriple, *algebra.PathTriple, *algebra.BindPattern:
		}
	}
	for _, c := range gp.Children {
		n += countFilters(c)
	}
	return n
}

// countResources sums bound terms over the pattern tree. Subjects and
// objects always count; predicates (including path steps) and
// inline-data rows count only when predicates is true. Subqueries
// recurse with the caller's flag.
func countResources(gp *algebra.GraphPattern, predicates bool) int64 {
	if gp == nil {
		return 0
	}
	var n int64
	for _, p := range gp.Patterns {
		switch t := p.(type) {
		case *algebra.BasicTriple:
			n += countEnds(t.S, t.O)
			if predicates && algebra.IsResource(t.P) {
				n++
			}
		case *algebra.PathTriple:
			n += countEnds(t.S, t.O)
			if predicates {
				n += countPathSteps(t.Path)
			}
		case *algebra.SubQuery:
			n += countResources(t.Query.Pattern, predicates)
		case *algebra.FilterPattern, *algebra.BindPattern:
		}
	}
	if predicates && gp.Inline != nil {
		// One resource binding per tuple, independent of arity.
		n += int64(len(gp.Inline.Rows))
	}
	for _, c := range gp.Children {
		n += countResources(c, predicates)
	}
	return n
}

// countEnds counts the bound subject/object terms of one triple.
func countEnds(s, o algebra.Term) int64 {
	var n int64
	if algebra.IsResource(s) {
		n++
	}
	if algebra.IsResource(o) {
		n++
	}
	return n
}

// countPathSteps counts bound-IRI property steps in a path expression.
//
// The traversal is deliberately asymmetric, matching how alternative and
// sequence chains are built left-deep with the newest step on the right:
// for a binary node the right child counts only if it is a terminal
// bound step, then the left child is counted if terminal or recursed if
// itself binary - any other left shape contributes 0. A unary node
// counts 1 only when its inner path is a terminal bound step, with no
// further recursion. Deeply right-nested chains therefore undercount;
// that behavior is preserved as-is for compatibility with existing
// feature datasets. Do not "fix" it without versioning the metrics.
func countPathSteps(p algebra.Path) int64 {
	switch node := p.(type) {
	case *algebra.PathBinary:
		var n int64
		if step, ok := node.Right.(*algebra.PropertyStep); ok && step.IsBound() {
			n++
		}
		switch left := node.Left.(type) {
		case *algebra.PropertyStep:
			if left.IsBound() {
				n++
			}
		case *algebra.PathBinary:
			n += countPathSteps(left)
		}
		return n
	case *algebra.PathUnary:
		if step, ok := node.Inner.(*algebra.PropertyStep); ok && step.IsBound() {
			return 1
		}
		return 0
	case *algebra.PropertyStep:
		// A bare step at the root only occurs in hand-built trees; the
		// parser emits BasicTriple for plain predicates.
		if node.IsBound() {
			return 1
		}
		return 0
	}
	return 0
}

// Each modifier has a dedicated pass so a subquery's own clause is
// counted independently of the outer query's. Absence (Unset sentinel,
// empty clause) contributes 0.

func countOrderBy(q *algebra.Query) int64 {
	var n int64
	if len(q.OrderBy) > 0 {
		n++
	}
	return n + sumSubQueries(q.Pattern, countOrderBy)
}

func countLimit(q *algebra.Query) int64 {
	var n int64
	if q.HasLimit() {
		n++
	}
	return n + sumSubQueries(q.Pattern, countLimit)
}

func countHaving(q *algebra.Query) int64 {
	var n int64
	if len(q.Having) > 0 {
		n++
	}
	return n + sumSubQueries(q.Pattern, countHaving)
}

func countOffset(q *algebra.Query) int64 {
	var n int64
	if q.HasOffset() {
		n++
	}
	return n + sumSubQueries(q.Pattern, countOffset)
}

func countGroupBy(q *algebra.Query) int64 {
	var n int64
	if len(q.GroupBy) > 0 {
		n++
	}
	return n + sumSubQueries(q.Pattern, countGroupBy)
}

// sumSubQueries applies f to every subquery in the pattern tree and
// sums the results. f itself handles deeper nesting.
func sumSubQueries(gp *algebra.GraphPattern, f func(*algebra.Query) int64) int64 {
	if gp == nil {
		return 0
	}
	var n int64
	for _, p := range gp.Patterns {
		if sub, ok := p.(*algebra.SubQuery); ok {
			n += f(sub.Query)
		}
	}
	for _, c := range gp.Children {
		n += sumSubQueries(c, f)
	}
	return n
}
