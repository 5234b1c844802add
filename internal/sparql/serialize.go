package sparql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veldt-io/sparqstat/internal/algebra"
)

// Serialize renders a query back to SPARQL text.
//
// The output is deterministic: prefixes are emitted in sorted order, one
// clause per line, two-space indentation per nesting level. Prefixed
// names keep the surface form they were written with, so length
// normalization can substitute them afterwards. Serialize is the inverse
// the length metric needs, not a byte-exact round-trip of the input.
func Serialize(q *algebra.Query) string {
	var b strings.Builder
	if q.Base != "" {
		fmt.Fprintf(&b, "BASE <%s>\n", q.Base)
	}
	for _, name := range sortedPrefixNames(q.Prefixes) {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", name, q.Prefixes[name])
	}
	writeSelect(&b, q, 0)
	return b.String()
}

func sortedPrefixNames(prefixes map[string]string) []string {
	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// writeSelect writes the SELECT clause, pattern, and modifiers of q at
// the given nesting depth. Shared by the root query and sub-selects.
func writeSelect(b *strings.Builder, q *algebra.Query, depth int) {
	ind := strings.Repeat("  ", depth)

	b.WriteString(ind + "SELECT ")
	if q.Distinct {
		b.WriteString("DISTINCT ")
	}
	if len(q.Variables) == 0 {
		b.WriteString("*")
	} else {
		for i, v := range q.Variables {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v.String())
		}
	}
	b.WriteString("\n" + ind + "WHERE ")
	writeGroupBody(b, q.Pattern, depth)
	b.WriteByte('\n')

	if len(q.GroupBy) > 0 {
		b.WriteString(ind + "GROUP BY " + strings.Join(q.GroupBy, " ") + "\n")
	}
	if len(q.Having) > 0 {
		b.WriteString(ind + "HAVING " + strings.Join(q.Having, " ") + "\n")
	}
	if len(q.OrderBy) > 0 {
		b.WriteString(ind + "ORDER BY")
		for _, cond := range q.OrderBy {
			b.WriteByte(' ')
			b.WriteString(orderCondition(cond))
		}
		b.WriteByte('\n')
	}
	if q.HasLimit() {
		fmt.Fprintf(b, "%sLIMIT %d\n", ind, q.Limit)
	}
	if q.HasOffset() {
		fmt.Fprintf(b, "%sOFFSET %d\n", ind, q.Offset)
	}
}

func orderCondition(cond algebra.OrderCondition) string {
	if !cond.Descending {
		return cond.Expr
	}
	if strings.HasPrefix(cond.Expr, "(") {
		return "DESC" + cond.Expr
	}
	return "DESC(" + cond.Expr + ")"
}

// writeGroupBody writes "{ ... }" for gp, with the closing brace at the
// caller's depth. The caller appends its own line break.
func writeGroupBody(b *strings.Builder, gp *algebra.GraphPattern, depth int) {
	ind := strings.Repeat("  ", depth)
	b.WriteString("{\n")
	if gp != nil {
		inner := depth + 1
		ind1 := strings.Repeat("  ", inner)
		for _, pat := range gp.Patterns {
			writePattern(b, pat, inner)
		}
		for _, child := range gp.Children {
			b.WriteString(ind1 + groupPrefix(child))
			writeGroupBody(b, child, inner)
			b.WriteByte('\n')
		}
		if gp.Inline != nil {
			writeInline(b, gp.Inline, inner)
		}
	}
	b.WriteString(ind + "}")
}

func groupPrefix(gp *algebra.GraphPattern) string {
	switch gp.Kind {
	case algebra.GroupOptional:
		return "OPTIONAL "
	case algebra.GroupUnion:
		return "UNION "
	case algebra.GroupMinus:
		return "MINUS "
	case algebra.GroupGraph:
		return "GRAPH " + termText(gp.Graph) + " "
	default:
		return ""
	}
}

func writePattern(b *strings.Builder, pat algebra.TriplePattern, depth int) {
	ind := strings.Repeat("  ", depth)
	switch t := pat.(type) {
	case *algebra.BasicTriple:
		fmt.Fprintf(b, "%s%s %s %s .\n", ind, termText(t.S), termText(t.P), termText(t.O))
	case *algebra.PathTriple:
		fmt.Fprintf(b, "%s%s %s %s .\n", ind, termText(t.S), pathText(t.Path), termText(t.O))
	case *algebra.FilterPattern:
		b.WriteString(ind + "FILTER " + t.Expr + "\n")
	case *algebra.BindPattern:
		b.WriteString(ind + "BIND " + t.Expr + "\n")
	case *algebra.SubQuery:
		b.WriteString(ind + "{\n")
		writeSelect(b, t.Query, depth+1)
		b.WriteString(ind + "}\n")
	}
}

func writeInline(b *strings.Builder, inline *algebra.InlineData, depth int) {
	ind := strings.Repeat("  ", depth)
	b.WriteString(ind + "VALUES (")
	for i, v := range inline.Variables {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteString(") {")
	for _, row := range inline.Rows {
		b.WriteString(" (")
		for i, t := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(termText(t))
		}
		b.WriteByte(')')
	}
	b.WriteString(" }\n")
}

// termText renders a term in surface syntax. Prefixed IRIs keep their
// written form; nil terms (UNDEF cells) render as UNDEF.
func termText(t algebra.Term) string {
	if t == nil {
		return "UNDEF"
	}
	if iri, ok := t.(algebra.IRI); ok && iri.Prefixed != "" {
		return iri.Prefixed
	}
	return t.String()
}

func pathText(p algebra.Path) string {
	switch node := p.(type) {
	case *algebra.PropertyStep:
		return termText(node.Predicate)
	case *algebra.PathBinary:
		op := "/"
		if node.Op == algebra.PathAlternative {
			op = "|"
		}
		return pathOperand(node.Left, node.Op) + op + pathOperand(node.Right, node.Op)
	case *algebra.PathUnary:
		switch node.Op {
		case algebra.PathInverse:
			return "^" + pathAtom(node.Inner)
		case algebra.PathNegated:
			return "!" + pathAtom(node.Inner)
		case algebra.PathGroup:
			return "(" + pathText(node.Inner) + ")"
		case algebra.PathZeroOrMore:
			return pathAtom(node.Inner) + "*"
		case algebra.PathOneOrMore:
			return pathAtom(node.Inner) + "+"
		case algebra.PathZeroOrOne:
			return pathAtom(node.Inner) + "?"
		}
	}
	return ""
}

// pathOperand parenthesizes a binary child of a different operator so
// precedence survives the round trip.
func pathOperand(p algebra.Path, parentOp algebra.PathOp) string {
	if bin, ok := p.(*algebra.PathBinary); ok && bin.Op != parentOp {
		return "(" + pathText(p) + ")"
	}
	return pathText(p)
}

// pathAtom parenthesizes any binary child.
func pathAtom(p algebra.Path) string {
	if _, ok := p.(*algebra.PathBinary); ok {
		return "(" + pathText(p) + ")"
	}
	return pathText(p)
}
