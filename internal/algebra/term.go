package algebra

import "fmt"

// TermKind identifies the concrete type behind a Term.
type TermKind uint8

const (
	// KindIRI is an IRI term.
	KindIRI TermKind = iota
	// KindLiteral is a literal term (plain, typed, or language-tagged).
	KindLiteral
	// KindVariable is an unbound query variable.
	KindVariable
	// KindBlankNode is a blank node label.
	KindBlankNode
)

// Term is a sealed interface over the values that can appear in the
// subject, predicate, or object position of a triple pattern.
//
// Only IRI, Literal, Variable, and BlankNode implement it. IRIs and
// literals are "resources" (bound terms); variables and blank nodes are
// unbound and never count toward resource metrics.
type Term interface {
	Kind() TermKind
	String() string
	term() // Marker method - seals interface to this package
}

// IRI is an absolute or prefix-expanded IRI. When the query wrote it
// as a prefixed name, Prefixed keeps that surface form (e.g. "foaf:name")
// so serialization and length normalization can reproduce it.
type IRI struct {
	Value    string
	Prefixed string // Surface form as written, empty when written as <iri>
}

func (IRI) term() {}

// Kind returns KindIRI.
func (IRI) Kind() TermKind { return KindIRI }

// String returns the IRI in angle-bracket form.
func (i IRI) String() string { return "<" + i.Value + ">" }

// Literal is an RDF literal with optional datatype or language tag.
type Literal struct {
	Lexical  string
	Datatype string // Datatype IRI, empty when untyped
	Lang     string // Language tag, empty when untagged
}

func (Literal) term() {}

// Kind returns KindLiteral.
func (Literal) Kind() TermKind { return KindLiteral }

// String returns the literal in SPARQL surface syntax.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// Variable is an unbound query variable (?name or $name).
type Variable struct {
	Name string
}

func (Variable) term() {}

// Kind returns KindVariable.
func (Variable) Kind() TermKind { return KindVariable }

// String returns the variable with its ? sigil.
func (v Variable) String() string { return "?" + v.Name }

// BlankNode is a blank node label (_:b0). Blank nodes in a query pattern
// behave like scoped variables, so they are treated as unbound.
type BlankNode struct {
	ID string
}

func (BlankNode) term() {}

// Kind returns KindBlankNode.
func (BlankNode) Kind() TermKind { return KindBlankNode }

// String returns the label with its _: sigil.
func (b BlankNode) String() string { return "_:" + b.ID }

// IsResource reports whether t is a bound term (IRI or literal).
// Nil terms and unbound terms (variables, blank nodes) are not resources.
func IsResource(t Term) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case KindIRI, KindLiteral:
		return true
	default:
		return false
	}
}
