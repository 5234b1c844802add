package sparql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veldt-io/sparqstat/internal/algebra"
)

// Well-known IRIs used when expanding shorthand tokens.
const (
	rdfType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimal = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// Parse parses a SPARQL SELECT query into an algebra tree.
// Any syntax problem is reported as a positioned *ParseError.
func Parse(input string) (*algebra.Query, error) {
	p := &parser{
		input:    input,
		length:   len(input),
		prefixes: make(map[string]string),
	}
	q, err := p.parseQueryUnit()
	if err != nil {
		return nil, err
	}
	return q, nil
}

// parser scans the raw query string with a single position cursor.
type parser struct {
	input    string
	pos      int
	length   int
	prefixes map[string]string
	base     string
	blankSeq int
}

// parseQueryUnit parses the prologue and the outermost SELECT.
func (p *parser) parseQueryUnit() (*algebra.Query, error) {
	q := algebra.NewQuery()

	for {
		if p.matchKeyword("PREFIX") {
			if err := p.parsePrefixDecl(q); err != nil {
				return nil, err
			}
			continue
		}
		if p.matchKeyword("BASE") {
			iri, err := p.parseIRIRef()
			if err != nil {
				return nil, err
			}
			p.base = iri
			q.Base = iri
			continue
		}
		break
	}

	p.skipWhitespace()
	if !p.peekKeyword("SELECT") {
		return nil, p.errf("expected SELECT query")
	}
	if err := p.parseSelectBody(q); err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if !p.eof() {
		return nil, p.errf("unexpected input after query")
	}
	return q, nil
}

// parsePrefixDecl parses "name: <iri>" after the PREFIX keyword.
// The name may be empty (default prefix).
func (p *parser) parsePrefixDecl(q *algebra.Query) error {
	p.skipWhitespace()
	start := p.pos
	for p.pos < p.length && isPrefixChar(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]
	if p.peek() != ':' {
		return p.errf("expected ':' in PREFIX declaration")
	}
	p.pos++
	iri, err := p.parseIRIRef()
	if err != nil {
		return err
	}
	p.prefixes[name] = iri
	q.Prefixes[name] = iri
	return nil
}

// parseSelectBody parses "SELECT ... {pattern} modifiers" into q.
// Shared by the outer query and sub-selects.
func (p *parser) parseSelectBody(q *algebra.Query) error {
	if !p.matchKeyword("SELECT") {
		return p.errf("expected SELECT")
	}
	if p.matchKeyword("DISTINCT") {
		q.Distinct = true
	} else {
		p.matchKeyword("REDUCED")
	}

	star := false
projection:
	for {
		p.skipWhitespace()
		switch c := p.peek(); {
		case c == '*' && !star && len(q.Variables) == 0:
			p.pos++
			star = true
		case c == '?' || c == '$':
			v, err := p.parseVariable()
			if err != nil {
				return err
			}
			q.Variables = append(q.Variables, v)
		case c == '(':
			// Projection expression: (expr AS ?var)
			raw, err := p.captureBalanced('(', ')')
			if err != nil {
				return err
			}
			v, ok := lastVarIn(raw)
			if !ok {
				return p.errf("projection expression missing AS variable")
			}
			q.Variables = append(q.Variables, v)
		default:
			if !star && len(q.Variables) == 0 {
				return p.errf("empty SELECT projection")
			}
			break projection
		}
	}

	p.matchKeyword("WHERE")
	gp, err := p.parseGroup(algebra.GroupPlain)
	if err != nil {
		return err
	}
	q.Pattern = gp

	for {
		switch {
		case p.matchKeyword("GROUP"):
			if !p.matchKeyword("BY") {
				return p.errf("expected BY after GROUP")
			}
			items, err := p.parseGroupByItems()
			if err != nil {
				return err
			}
			q.GroupBy = items
		case p.matchKeyword("HAVING"):
			items, err := p.parseHavingItems()
			if err != nil {
				return err
			}
			q.Having = items
		case p.matchKeyword("ORDER"):
			if !p.matchKeyword("BY") {
				return p.errf("expected BY after ORDER")
			}
			conds, err := p.parseOrderConditions()
			if err != nil {
				return err
			}
			q.OrderBy = conds
		case p.matchKeyword("LIMIT"):
			n, err := p.parseInt()
			if err != nil {
				return err
			}
			q.Limit = n
		case p.matchKeyword("OFFSET"):
			n, err := p.parseInt()
			if err != nil {
				return err
			}
			q.Offset = n
		default:
			return nil
		}
	}
}

// parseGroupByItems parses variables and parenthesized expressions.
func (p *parser) parseGroupByItems() ([]string, error) {
	var items []string
	for {
		p.skipWhitespace()
		switch c := p.peek(); {
		case c == '?' || c == '$':
			v, err := p.parseVariable()
			if err != nil {
				return nil, err
			}
			items = append(items, v.String())
		case c == '(':
			raw, err := p.captureBalanced('(', ')')
			if err != nil {
				return nil, err
			}
			items = append(items, raw)
		default:
			if len(items) == 0 {
				return nil, p.errf("empty GROUP BY")
			}
			return items, nil
		}
	}
}

// parseHavingItems parses one or more parenthesized constraints.
func (p *parser) parseHavingItems() ([]string, error) {
	var items []string
	for {
		p.skipWhitespace()
		if p.peek() != '(' {
			if len(items) == 0 {
				return nil, p.errf("expected '(' after HAVING")
			}
			return items, nil
		}
		raw, err := p.captureBalanced('(', ')')
		if err != nil {
			return nil, err
		}
		items = append(items, raw)
	}
}

// parseOrderConditions parses ASC(...)/DESC(...)/variable/(expr) items.
func (p *parser) parseOrderConditions() ([]algebra.OrderCondition, error) {
	var conds []algebra.OrderCondition
	for {
		switch {
		case p.matchKeyword("ASC"):
			raw, err := p.captureBalanced('(', ')')
			if err != nil {
				return nil, err
			}
			conds = append(conds, algebra.OrderCondition{Expr: raw})
		case p.matchKeyword("DESC"):
			raw, err := p.captureBalanced('(', ')')
			if err != nil {
				return nil, err
			}
			conds = append(conds, algebra.OrderCondition{Expr: raw, Descending: true})
		default:
			p.skipWhitespace()
			if c := p.peek(); c == '?' || c == '$' {
				v, err := p.parseVariable()
				if err != nil {
					return nil, err
				}
				conds = append(conds, algebra.OrderCondition{Expr: v.String()})
				continue
			} else if c == '(' {
				raw, err := p.captureBalanced('(', ')')
				if err != nil {
					return nil, err
				}
				conds = append(conds, algebra.OrderCondition{Expr: raw})
				continue
			}
			if len(conds) == 0 {
				return nil, p.errf("empty ORDER BY")
			}
			return conds, nil
		}
	}
}

// parseGroup parses a { ... } group into a GraphPattern with the given
// attachment kind.
func (p *parser) parseGroup(kind algebra.GroupKind) (*algebra.GraphPattern, error) {
	p.skipWhitespace()
	if p.peek() != '{' {
		return nil, p.errf("expected '{'")
	}
	p.pos++
	gp := &algebra.GraphPattern{Kind: kind}

	for {
		p.skipWhitespace()
		if p.eof() {
			return nil, p.errf("unterminated group pattern")
		}
		switch c := p.peek(); {
		case c == '}':
			p.pos++
			return gp, nil
		case c == '.':
			p.pos++
		case c == '{':
			if err := p.parseGroupOrSubSelect(gp); err != nil {
				return nil, err
			}
		case p.matchKeyword("OPTIONAL"):
			child, err := p.parseGroup(algebra.GroupOptional)
			if err != nil {
				return nil, err
			}
			gp.Children = append(gp.Children, child)
		case p.matchKeyword("MINUS"):
			child, err := p.parseGroup(algebra.GroupMinus)
			if err != nil {
				return nil, err
			}
			gp.Children = append(gp.Children, child)
		case p.matchKeyword("GRAPH"):
			g, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			child, err := p.parseGroup(algebra.GroupGraph)
			if err != nil {
				return nil, err
			}
			child.Graph = g
			gp.Children = append(gp.Children, child)
		case p.matchKeyword("FILTER"):
			expr, err := p.parseConstraint()
			if err != nil {
				return nil, err
			}
			gp.Patterns = append(gp.Patterns, &algebra.FilterPattern{Expr: expr})
		case p.matchKeyword("BIND"):
			raw, err := p.captureBalanced('(', ')')
			if err != nil {
				return nil, err
			}
			v, ok := lastVarIn(raw)
			if !ok {
				return nil, p.errf("BIND missing AS variable")
			}
			gp.Patterns = append(gp.Patterns, &algebra.BindPattern{Expr: raw, Var: v})
		case p.matchKeyword("VALUES"):
			if err := p.parseInlineData(gp); err != nil {
				return nil, err
			}
		default:
			if err := p.parseTriplesBlock(gp); err != nil {
				return nil, err
			}
		}
	}
}

// parseGroupOrSubSelect handles a '{' inside a group: either a nested
// sub-select or a child group followed by optional UNION arms.
func (p *parser) parseGroupOrSubSelect(gp *algebra.GraphPattern) error {
	save := p.pos
	p.pos++ // consume '{'
	p.skipWhitespace()
	if p.peekKeyword("SELECT") {
		sub := algebra.NewQuery()
		sub.Prefixes = p.prefixes
		sub.Base = p.base
		if err := p.parseSelectBody(sub); err != nil {
			return err
		}
		p.skipWhitespace()
		if p.peek() != '}' {
			return p.errf("expected '}' after subquery")
		}
		p.pos++
		gp.Patterns = append(gp.Patterns, &algebra.SubQuery{Query: sub})
		return nil
	}

	p.pos = save
	child, err := p.parseGroup(algebra.GroupPlain)
	if err != nil {
		return err
	}
	gp.Children = append(gp.Children, child)
	for p.matchKeyword("UNION") {
		arm, err := p.parseGroup(algebra.GroupUnion)
		if err != nil {
			return err
		}
		gp.Children = append(gp.Children, arm)
	}
	return nil
}

// parseConstraint captures a FILTER body as raw text: a parenthesized
// expression, an (NOT) EXISTS group, or a builtin call.
func (p *parser) parseConstraint() (string, error) {
	p.skipWhitespace()
	if p.peek() == '(' {
		return p.captureBalanced('(', ')')
	}
	if p.matchKeyword("NOT") {
		if !p.matchKeyword("EXISTS") {
			return "", p.errf("expected EXISTS after NOT in FILTER")
		}
		raw, err := p.captureBalanced('{', '}')
		if err != nil {
			return "", err
		}
		return "NOT EXISTS " + raw, nil
	}
	if p.matchKeyword("EXISTS") {
		raw, err := p.captureBalanced('{', '}')
		if err != nil {
			return "", err
		}
		return "EXISTS " + raw, nil
	}
	// Builtin call: name(args)
	start := p.pos
	for p.pos < p.length && isWordChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errf("expected FILTER expression")
	}
	name := p.input[start:p.pos]
	raw, err := p.captureBalanced('(', ')')
	if err != nil {
		return "", err
	}
	return name + raw, nil
}

// parseTriplesBlock parses one same-subject block with ';' and ','
// continuations, appending triples to gp.
func (p *parser) parseTriplesBlock(gp *algebra.GraphPattern) error {
	s, err := p.parseTerm()
	if err != nil {
		return err
	}
	for {
		p.skipWhitespace()
		var pred algebra.Term
		var path algebra.Path
		if c := p.peek(); c == '?' || c == '$' {
			pred, err = p.parseTerm()
			if err != nil {
				return err
			}
		} else {
			pth, err := p.parsePathAlternative()
			if err != nil {
				return err
			}
			if step, ok := pth.(*algebra.PropertyStep); ok {
				pred = step.Predicate
			} else {
				path = pth
			}
		}

		for {
			o, err := p.parseTerm()
			if err != nil {
				return err
			}
			if path != nil {
				gp.Patterns = append(gp.Patterns, &algebra.PathTriple{S: s, Path: path, O: o})
			} else {
				gp.Patterns = append(gp.Patterns, &algebra.BasicTriple{S: s, P: pred, O: o})
			}
			p.skipWhitespace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}

		p.skipWhitespace()
		if p.peek() == ';' {
			p.pos++
			p.skipWhitespace()
			// Trailing ';' before the block terminator is legal.
			if c := p.peek(); c == '.' || c == '}' {
				break
			}
			continue
		}
		break
	}
	p.skipWhitespace()
	if p.peek() == '.' {
		p.pos++
	}
	return nil
}

// parseInlineData parses a VALUES block into gp.Inline. A second VALUES
// block in the same group appends its rows.
func (p *parser) parseInlineData(gp *algebra.GraphPattern) error {
	p.skipWhitespace()
	var vars []algebra.Variable
	if p.peek() == '(' {
		p.pos++
		for {
			p.skipWhitespace()
			if p.peek() == ')' {
				p.pos++
				break
			}
			v, err := p.parseVariable()
			if err != nil {
				return err
			}
			vars = append(vars, v)
		}
	} else {
		v, err := p.parseVariable()
		if err != nil {
			return err
		}
		vars = append(vars, v)
	}

	p.skipWhitespace()
	if p.peek() != '{' {
		return p.errf("expected '{' in VALUES block")
	}
	p.pos++

	var rows [][]algebra.Term
	for {
		p.skipWhitespace()
		if p.eof() {
			return p.errf("unterminated VALUES block")
		}
		if p.peek() == '}' {
			p.pos++
			break
		}
		if p.peek() == '(' {
			p.pos++
			var row []algebra.Term
			for {
				p.skipWhitespace()
				if p.peek() == ')' {
					p.pos++
					break
				}
				if p.matchKeyword("UNDEF") {
					row = append(row, nil)
					continue
				}
				t, err := p.parseTerm()
				if err != nil {
					return err
				}
				row = append(row, t)
			}
			rows = append(rows, row)
			continue
		}
		if p.matchKeyword("UNDEF") {
			rows = append(rows, []algebra.Term{nil})
			continue
		}
		t, err := p.parseTerm()
		if err != nil {
			return err
		}
		rows = append(rows, []algebra.Term{t})
	}

	if gp.Inline == nil {
		gp.Inline = &algebra.InlineData{Variables: vars, Rows: rows}
	} else {
		gp.Inline.Rows = append(gp.Inline.Rows, rows...)
	}
	return nil
}

// --- property paths ---

func (p *parser) parsePathAlternative() (algebra.Path, error) {
	left, err := p.parsePathSequence()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWhitespace()
		if p.peek() != '|' {
			return left, nil
		}
		p.pos++
		right, err := p.parsePathSequence()
		if err != nil {
			return nil, err
		}
		// Chains fold left-deep: the newest step sits on the right.
		left = &algebra.PathBinary{Op: algebra.PathAlternative, Left: left, Right: right}
	}
}

func (p *parser) parsePathSequence() (algebra.Path, error) {
	left, err := p.parsePathElt()
	if err != nil {
		return nil, err
	}
	for {
		p.skipWhitespace()
		if p.peek() != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parsePathElt()
		if err != nil {
			return nil, err
		}
		left = &algebra.PathBinary{Op: algebra.PathSequence, Left: left, Right: right}
	}
}

func (p *parser) parsePathElt() (algebra.Path, error) {
	p.skipWhitespace()
	if p.peek() == '^' {
		p.pos++
		inner, err := p.parsePathElt()
		if err != nil {
			return nil, err
		}
		return &algebra.PathUnary{Op: algebra.PathInverse, Inner: inner}, nil
	}
	if p.peek() == '!' {
		p.pos++
		inner, err := p.parsePathPrimary()
		if err != nil {
			return nil, err
		}
		return &algebra.PathUnary{Op: algebra.PathNegated, Inner: inner}, nil
	}
	prim, err := p.parsePathPrimary()
	if err != nil {
		return nil, err
	}
	// Closure modifiers bind only when adjacent (no whitespace), so a
	// following "?var" object is never misread as zero-or-one.
	switch p.peek() {
	case '*':
		p.pos++
		return &algebra.PathUnary{Op: algebra.PathZeroOrMore, Inner: prim}, nil
	case '+':
		p.pos++
		return &algebra.PathUnary{Op: algebra.PathOneOrMore, Inner: prim}, nil
	case '?':
		p.pos++
		return &algebra.PathUnary{Op: algebra.PathZeroOrOne, Inner: prim}, nil
	}
	return prim, nil
}

func (p *parser) parsePathPrimary() (algebra.Path, error) {
	p.skipWhitespace()
	if p.peek() == '(' {
		p.pos++
		inner, err := p.parsePathAlternative()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if p.peek() != ')' {
			return nil, p.errf("expected ')' in property path")
		}
		p.pos++
		return &algebra.PathUnary{Op: algebra.PathGroup, Inner: inner}, nil
	}
	if p.peek() == 'a' && !p.isWordCharAt(p.pos+1) && p.byteAt(p.pos+1) != ':' {
		p.pos++
		return &algebra.PropertyStep{Predicate: algebra.IRI{Value: rdfType, Prefixed: "a"}}, nil
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if t.Kind() != algebra.KindIRI {
		return nil, p.errf("expected IRI in property path, got %s", t.String())
	}
	return &algebra.PropertyStep{Predicate: t}, nil
}

// --- terms ---

// parseTerm parses one RDF term or variable.
func (p *parser) parseTerm() (algebra.Term, error) {
	p.skipWhitespace()
	if p.eof() {
		return nil, p.errf("expected term, got end of input")
	}
	c := p.peek()
	switch {
	case c == '<':
		iri, err := p.parseIRIRef()
		if err != nil {
			return nil, err
		}
		return algebra.IRI{Value: p.resolveIRI(iri)}, nil
	case c == '?' || c == '$':
		return p.parseVariable()
	case c == '"' || c == '\'':
		return p.parseLiteral()
	case c == '_' && p.byteAt(p.pos+1) == ':':
		p.pos += 2
		name := p.scanName()
		if name == "" {
			return nil, p.errf("empty blank node label")
		}
		return algebra.BlankNode{ID: name}, nil
	case c == '[':
		p.pos++
		p.skipWhitespace()
		if p.peek() != ']' {
			return nil, p.errf("blank node property lists are not supported")
		}
		p.pos++
		p.blankSeq++
		return algebra.BlankNode{ID: fmt.Sprintf("b%d", p.blankSeq)}, nil
	case c >= '0' && c <= '9', c == '+', c == '-':
		return p.parseNumericLiteral()
	case p.peekKeyword("true"):
		p.matchKeyword("true")
		return algebra.Literal{Lexical: "true", Datatype: xsdBoolean}, nil
	case p.peekKeyword("false"):
		p.matchKeyword("false")
		return algebra.Literal{Lexical: "false", Datatype: xsdBoolean}, nil
	default:
		return p.parsePrefixedName()
	}
}

func (p *parser) parseVariable() (algebra.Variable, error) {
	if c := p.peek(); c != '?' && c != '$' {
		return algebra.Variable{}, p.errf("expected variable")
	}
	p.pos++
	name := p.scanName()
	if name == "" {
		return algebra.Variable{}, p.errf("empty variable name")
	}
	return algebra.Variable{Name: name}, nil
}

func (p *parser) parseIRIRef() (string, error) {
	p.skipWhitespace()
	if p.peek() != '<' {
		return "", p.errf("expected '<'")
	}
	p.pos++
	start := p.pos
	for p.pos < p.length && p.input[p.pos] != '>' {
		if p.input[p.pos] == '\n' {
			return "", p.errf("unterminated IRI")
		}
		p.pos++
	}
	if p.pos >= p.length {
		return "", p.errf("unterminated IRI")
	}
	iri := p.input[start:p.pos]
	p.pos++
	return iri, nil
}

// resolveIRI resolves a relative reference against the BASE declaration.
func (p *parser) resolveIRI(iri string) string {
	if p.base == "" || strings.Contains(iri, "://") {
		return iri
	}
	return p.base + iri
}

func (p *parser) parseLiteral() (algebra.Term, error) {
	quote := p.peek()
	p.pos++
	start := p.pos
	for p.pos < p.length {
		c := p.input[p.pos]
		if c == '\\' {
			p.pos += 2
			continue
		}
		if c == quote {
			break
		}
		p.pos++
	}
	if p.pos >= p.length {
		return nil, p.errf("unterminated string literal")
	}
	lex := p.input[start:p.pos]
	p.pos++

	lit := algebra.Literal{Lexical: lex}
	if p.peek() == '@' {
		p.pos++
		start := p.pos
		for p.pos < p.length && (isWordChar(p.input[p.pos]) || p.input[p.pos] == '-') {
			p.pos++
		}
		lit.Lang = p.input[start:p.pos]
	} else if p.peek() == '^' && p.byteAt(p.pos+1) == '^' {
		p.pos += 2
		dt, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		iri, ok := dt.(algebra.IRI)
		if !ok {
			return nil, p.errf("literal datatype must be an IRI")
		}
		lit.Datatype = iri.Value
	}
	return lit, nil
}

func (p *parser) parseNumericLiteral() (algebra.Term, error) {
	start := p.pos
	if c := p.peek(); c == '+' || c == '-' {
		p.pos++
	}
	decimal := false
	for p.pos < p.length {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !decimal && p.isDigitAt(p.pos+1) {
			decimal = true
			p.pos++
			continue
		}
		break
	}
	lex := p.input[start:p.pos]
	if lex == "" || lex == "+" || lex == "-" {
		return nil, p.errf("expected numeric literal")
	}
	dt := xsdInteger
	if decimal {
		dt = xsdDecimal
	}
	return algebra.Literal{Lexical: lex, Datatype: dt}, nil
}

func (p *parser) parsePrefixedName() (algebra.Term, error) {
	start := p.pos
	for p.pos < p.length && isPrefixChar(p.input[p.pos]) {
		p.pos++
	}
	if p.peek() != ':' {
		p.pos = start
		return nil, p.errf("unexpected token %q", p.tokenAt(start))
	}
	prefix := p.input[start:p.pos]
	p.pos++
	local := p.scanName()
	ns, ok := p.prefixes[prefix]
	if !ok {
		p.pos = start
		return nil, p.errf("unknown prefix %q", prefix)
	}
	return algebra.IRI{Value: ns + local, Prefixed: p.input[start : start+len(prefix)+1+len(local)]}, nil
}

// --- scanning primitives ---

func (p *parser) eof() bool { return p.pos >= p.length }

func (p *parser) peek() byte {
	if p.pos >= p.length {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) byteAt(i int) byte {
	if i < 0 || i >= p.length {
		return 0
	}
	return p.input[i]
}

func (p *parser) isWordCharAt(i int) bool {
	c := p.byteAt(i)
	return c != 0 && isWordChar(c)
}

func (p *parser) isDigitAt(i int) bool {
	c := p.byteAt(i)
	return c >= '0' && c <= '9'
}

// skipWhitespace advances past whitespace and # comments.
func (p *parser) skipWhitespace() {
	for p.pos < p.length {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '#':
			for p.pos < p.length && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// matchKeyword consumes kw (case-insensitive, word-bounded) if present.
func (p *parser) matchKeyword(kw string) bool {
	p.skipWhitespace()
	end := p.pos + len(kw)
	if end > p.length {
		return false
	}
	if !strings.EqualFold(p.input[p.pos:end], kw) {
		return false
	}
	if end < p.length && isWordChar(p.input[end]) {
		return false
	}
	p.pos = end
	return true
}

// peekKeyword is matchKeyword without consuming.
func (p *parser) peekKeyword(kw string) bool {
	p.skipWhitespace()
	end := p.pos + len(kw)
	if end > p.length {
		return false
	}
	if !strings.EqualFold(p.input[p.pos:end], kw) {
		return false
	}
	return end >= p.length || !isWordChar(p.input[end])
}

// scanName consumes a run of word characters.
func (p *parser) scanName() string {
	start := p.pos
	for p.pos < p.length && isWordChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// captureBalanced returns the raw text of a balanced open...close span,
// including the delimiters. String literals inside the span are skipped
// so quoted braces and parens never unbalance the scan.
func (p *parser) captureBalanced(open, close byte) (string, error) {
	p.skipWhitespace()
	if p.peek() != open {
		return "", p.errf("expected %q", string(open))
	}
	start := p.pos
	depth := 0
	for p.pos < p.length {
		switch c := p.input[p.pos]; c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.pos++
				return p.input[start:p.pos], nil
			}
		case '"', '\'':
			quote := c
			p.pos++
			for p.pos < p.length && p.input[p.pos] != quote {
				if p.input[p.pos] == '\\' {
					p.pos++
				}
				p.pos++
			}
		}
		p.pos++
	}
	p.pos = start
	return "", p.errf("unbalanced %q", string(open))
}

func (p *parser) parseInt() (int64, error) {
	p.skipWhitespace()
	start := p.pos
	for p.pos < p.length && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errf("expected integer")
	}
	n, err := strconv.ParseInt(p.input[start:p.pos], 10, 64)
	if err != nil {
		return 0, p.errf("invalid integer: %v", err)
	}
	return n, nil
}

// tokenAt returns a short excerpt for error messages.
func (p *parser) tokenAt(start int) string {
	end := start
	for end < p.length && !isSpace(p.input[end]) && end-start < 16 {
		end++
	}
	return p.input[start:end]
}

func (p *parser) errf(format string, args ...any) *ParseError {
	return newParseError(p.input, p.pos, format, args...)
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isPrefixChar(c byte) bool {
	return isWordChar(c) || c == '-' || c == '.'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// lastVarIn extracts the trailing "AS ?var" variable from a raw
// parenthesized expression.
func lastVarIn(raw string) (algebra.Variable, bool) {
	i := strings.LastIndexAny(raw, "?$")
	if i < 0 {
		return algebra.Variable{}, false
	}
	j := i + 1
	for j < len(raw) && isWordChar(raw[j]) {
		j++
	}
	if j == i+1 {
		return algebra.Variable{}, false
	}
	return algebra.Variable{Name: raw[i+1 : j]}, true
}
