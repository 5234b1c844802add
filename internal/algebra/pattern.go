package algebra

// TriplePattern is a sealed interface over the elements of a graph
// pattern's statement list.
//
// Variants:
//   - BasicTriple: subject / predicate / object template
//   - PathTriple: subject / property-path / object template
//   - FilterPattern: boolean constraint over bindings
//   - SubQuery: nested SELECT analyzed as a sibling pattern
//   - BindPattern: BIND and similar non-relational constructs
//
// Every analysis pass type-switches over all five variants; adding a
// variant without updating the passes is caught by the exhaustiveness
// test in the stats package.
type TriplePattern interface {
	triplePattern() // Marker method - seals interface to this package
}

// BasicTriple is a subject-predicate-object template. Each position is
// either a bound term (IRI/literal) or an unbound variable/blank node.
type BasicTriple struct {
	S Term
	P Term
	O Term
}

func (*BasicTriple) triplePattern() {}

// PathTriple is a triple template whose predicate position is a
// property-path expression.
type PathTriple struct {
	S    Term
	Path Path
	O    Term
}

func (*PathTriple) triplePattern() {}

// FilterPattern is a FILTER constraint. The expression is kept as raw
// text: structural analysis counts filters, it never evaluates them.
type FilterPattern struct {
	Expr string
}

func (*FilterPattern) triplePattern() {}

// SubQuery wraps a nested SELECT. Structural counts recurse into the
// nested query's pattern; the wrapper itself contributes nothing.
type SubQuery struct {
	Query *Query
}

func (*SubQuery) triplePattern() {}

// BindPattern is a BIND(expr AS ?var) assignment. It is excluded from
// triple, filter, and resource counts.
type BindPattern struct {
	Expr string
	Var  Variable
}

func (*BindPattern) triplePattern() {}

// InlineData is a VALUES block: a literal table of pre-bound tuples.
// Each row binds Variables positionally; UNDEF cells are nil terms.
type InlineData struct {
	Variables []Variable
	Rows      [][]Term
}

// GroupKind labels how a child pattern attaches to its parent. Structural
// counts ignore it; serialization needs it to re-emit the surface form.
type GroupKind uint8

const (
	// GroupPlain is a bare { ... } group (also the first UNION arm).
	GroupPlain GroupKind = iota
	// GroupOptional is an OPTIONAL { ... } block.
	GroupOptional
	// GroupUnion is a UNION arm after the first.
	GroupUnion
	// GroupMinus is a MINUS { ... } block.
	GroupMinus
	// GroupGraph is a GRAPH <g> { ... } block.
	GroupGraph
)

// GraphPattern is a node in the pattern tree: an ordered statement list,
// nested child groups (OPTIONAL, UNION arms, MINUS, GRAPH, plain groups),
// and an optional inline-data block.
//
// The tree is acyclic and finite. Traversal order does not affect any
// count, but every node is visited exactly once.
type GraphPattern struct {
	Kind     GroupKind
	Graph    Term // Graph name, only for GroupGraph
	Patterns []TriplePattern
	Children []*GraphPattern
	Inline   *InlineData
}
