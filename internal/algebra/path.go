package algebra

// PathOp identifies the combinator of a non-terminal path node.
type PathOp uint8

const (
	// PathSequence composes two paths left-to-right (a / b).
	PathSequence PathOp = iota
	// PathAlternative matches either side (a | b).
	PathAlternative
	// PathInverse reverses edge direction (^a).
	PathInverse
	// PathNegated matches any predicate outside the set (!a).
	PathNegated
	// PathZeroOrMore is the * closure.
	PathZeroOrMore
	// PathOneOrMore is the + closure.
	PathOneOrMore
	// PathZeroOrOne is the ? closure.
	PathZeroOrOne
	// PathGroup is an explicit parenthesized grouping.
	PathGroup
)

// Path is a sealed interface over property-path expressions.
//
// The tree shape is constrained by construction: leaves are PropertyStep
// nodes, internal nodes are PathUnary or PathBinary combinators. The
// parser guarantees this; analysis relies on it as a precondition.
type Path interface {
	path() // Marker method - seals interface to this package
}

// PathBinary is a two-child combinator: sequence (/) or alternative (|).
// Chains are built left-deep, so the newest step sits on the right.
type PathBinary struct {
	Op    PathOp // PathSequence or PathAlternative
	Left  Path
	Right Path
}

func (*PathBinary) path() {}

// PathUnary wraps a single inner path: inverse, negated set, closure,
// or grouping.
type PathUnary struct {
	Op    PathOp
	Inner Path
}

func (*PathUnary) path() {}

// PropertyStep is a terminal path element: a single predicate position.
// The step is bound when Predicate is an IRI; a variable or nil
// predicate is an unbound placeholder step.
type PropertyStep struct {
	Predicate Term
}

func (*PropertyStep) path() {}

// IsBound reports whether the step carries a bound IRI predicate.
func (s *PropertyStep) IsBound() bool {
	if s.Predicate == nil {
		return false
	}
	return s.Predicate.Kind() == KindIRI
}
