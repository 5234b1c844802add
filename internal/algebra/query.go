package algebra

// Unset is the sentinel for absent LIMIT and OFFSET clauses.
const Unset int64 = -1

// OrderCondition is a single ORDER BY criterion.
type OrderCondition struct {
	Expr       string // Variable or expression, raw text
	Descending bool
}

// Query is the root of one parsed SPARQL document.
//
// A Query is constructed once by the parser, is immutable thereafter,
// and is consumed by stats.Analyze. LIMIT is Unset or >= 0; OFFSET is
// Unset or > 0. Prefixes maps declared prefix names to IRIs; the empty
// name is the default prefix, which also governs unprefixed relative
// references under the BASE declaration.
type Query struct {
	Pattern   *GraphPattern
	Variables []Variable // Projected result variables, in declaration order
	Distinct  bool

	OrderBy []OrderCondition
	GroupBy []string // Raw grouping expressions
	Having  []string // Raw HAVING constraints
	Limit   int64
	Offset  int64

	Prefixes map[string]string
	Base     string
}

// NewQuery returns a query with modifier sentinels initialized.
// The parser fills in the rest.
func NewQuery() *Query {
	return &Query{
		Pattern:  &GraphPattern{},
		Limit:    Unset,
		Offset:   Unset,
		Prefixes: map[string]string{},
	}
}

// HasLimit reports whether a LIMIT clause is present (value >= 0).
func (q *Query) HasLimit() bool { return q.Limit >= 0 }

// HasOffset reports whether an effective OFFSET clause is present
// (value > 0; OFFSET 0 is the same as no offset).
func (q *Query) HasOffset() bool { return q.Offset > 0 }

// DistinctVariables returns the projected variables with duplicates
// removed, preserving first-seen order.
func (q *Query) DistinctVariables() []Variable {
	seen := make(map[string]bool, len(q.Variables))
	out := make([]Variable, 0, len(q.Variables))
	for _, v := range q.Variables {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		out = append(out, v)
	}
	return out
}
