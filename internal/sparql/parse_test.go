package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-io/sparqstat/internal/algebra"
)

func mustParse(t *testing.T, input string) *algebra.Query {
	t.Helper()
	q, err := Parse(input)
	require.NoError(t, err)
	return q
}

func TestParse_BasicTriple(t *testing.T) {
	q := mustParse(t, "SELECT ?s ?o WHERE { ?s <http://example.org/p> ?o . }")

	require.Len(t, q.Variables, 2)
	assert.Equal(t, "s", q.Variables[0].Name)
	assert.Equal(t, "o", q.Variables[1].Name)

	require.Len(t, q.Pattern.Patterns, 1)
	triple, ok := q.Pattern.Patterns[0].(*algebra.BasicTriple)
	require.True(t, ok)
	assert.Equal(t, algebra.Variable{Name: "s"}, triple.S)
	assert.Equal(t, algebra.IRI{Value: "http://example.org/p"}, triple.P)
	assert.Equal(t, algebra.Variable{Name: "o"}, triple.O)
}

func TestParse_PrologueAndPrefixedNames(t *testing.T) {
	q := mustParse(t, `
		PREFIX foaf: <http://xmlns.com/foaf/0.1/>
		PREFIX ex: <http://example.org/>
		SELECT ?n WHERE { ex:alice foaf:name ?n }
	`)

	assert.Equal(t, "http://xmlns.com/foaf/0.1/", q.Prefixes["foaf"])
	assert.Equal(t, "http://example.org/", q.Prefixes["ex"])

	triple := q.Pattern.Patterns[0].(*algebra.BasicTriple)
	assert.Equal(t, algebra.IRI{Value: "http://example.org/alice", Prefixed: "ex:alice"}, triple.S)
	assert.Equal(t, algebra.IRI{Value: "http://xmlns.com/foaf/0.1/name", Prefixed: "foaf:name"}, triple.P)
}

func TestParse_BaseResolution(t *testing.T) {
	q := mustParse(t, "BASE <http://example.org/> SELECT ?o WHERE { <alice> <knows> ?o }")

	assert.Equal(t, "http://example.org/", q.Base)
	triple := q.Pattern.Patterns[0].(*algebra.BasicTriple)
	assert.Equal(t, algebra.IRI{Value: "http://example.org/alice"}, triple.S)
	assert.Equal(t, algebra.IRI{Value: "http://example.org/knows"}, triple.P)
}

func TestParse_DefaultPrefix(t *testing.T) {
	q := mustParse(t, "PREFIX : <http://example.org/ns#> SELECT ?o WHERE { ?s :p ?o }")

	triple := q.Pattern.Patterns[0].(*algebra.BasicTriple)
	assert.Equal(t, algebra.IRI{Value: "http://example.org/ns#p", Prefixed: ":p"}, triple.P)
}

func TestParse_SemicolonAndCommaContinuations(t *testing.T) {
	q := mustParse(t, `SELECT * WHERE {
		?s <http://example.org/a> ?x , ?y ;
		   <http://example.org/b> ?z .
	}`)

	require.Len(t, q.Pattern.Patterns, 3)
	for _, p := range q.Pattern.Patterns {
		triple := p.(*algebra.BasicTriple)
		assert.Equal(t, algebra.Variable{Name: "s"}, triple.S)
	}
}

func TestParse_TypeShorthand(t *testing.T) {
	q := mustParse(t, "SELECT ?s WHERE { ?s a <http://example.org/Person> }")

	triple := q.Pattern.Patterns[0].(*algebra.BasicTriple)
	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", triple.P.(algebra.IRI).Value)
	assert.Equal(t, "a", triple.P.(algebra.IRI).Prefixed)
}

func TestParse_Literals(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE {
		?s <http://example.org/name> "Alice" .
		?s <http://example.org/label> "Hallo"@de .
		?s <http://example.org/age> 42 .
		?s <http://example.org/score> 3.14 .
		?s <http://example.org/active> true .
	}`)

	objects := make([]algebra.Literal, 0, 5)
	for _, p := range q.Pattern.Patterns {
		objects = append(objects, p.(*algebra.BasicTriple).O.(algebra.Literal))
	}
	assert.Equal(t, algebra.Literal{Lexical: "Alice"}, objects[0])
	assert.Equal(t, algebra.Literal{Lexical: "Hallo", Lang: "de"}, objects[1])
	assert.Equal(t, algebra.Literal{Lexical: "42", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}, objects[2])
	assert.Equal(t, algebra.Literal{Lexical: "3.14", Datatype: "http://www.w3.org/2001/XMLSchema#decimal"}, objects[3])
	assert.Equal(t, algebra.Literal{Lexical: "true", Datatype: "http://www.w3.org/2001/XMLSchema#boolean"}, objects[4])
}

func TestParse_Filter(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE {
		?s <http://example.org/age> ?age .
		FILTER (?age > 18)
		FILTER regex(?s, "^http")
		FILTER NOT EXISTS { ?s <http://example.org/banned> true }
	}`)

	var filters []*algebra.FilterPattern
	for _, p := range q.Pattern.Patterns {
		if f, ok := p.(*algebra.FilterPattern); ok {
			filters = append(filters, f)
		}
	}
	require.Len(t, filters, 3)
	assert.Equal(t, "(?age > 18)", filters[0].Expr)
	assert.Equal(t, `regex(?s, "^http")`, filters[1].Expr)
	assert.Contains(t, filters[2].Expr, "NOT EXISTS")
}

func TestParse_Bind(t *testing.T) {
	q := mustParse(t, `SELECT ?inc WHERE {
		?s <http://example.org/age> ?age .
		BIND (?age + 1 AS ?inc)
	}`)

	bind := q.Pattern.Patterns[1].(*algebra.BindPattern)
	assert.Equal(t, "(?age + 1 AS ?inc)", bind.Expr)
	assert.Equal(t, "inc", bind.Var.Name)
}

func TestParse_GroupKinds(t *testing.T) {
	q := mustParse(t, `SELECT ?s WHERE {
		?s <http://example.org/a> ?x .
		OPTIONAL { ?s <http://example.org/b> ?y }
		MINUS { ?s <http://example.org/c> ?z }
		GRAPH <http://example.org/g> { ?s <http://example.org/d> ?w }
		{ ?s <http://example.org/e> ?u } UNION { ?s <http://example.org/f> ?v }
	}`)

	require.Len(t, q.Pattern.Children, 5)
	assert.Equal(t, algebra.GroupOptional, q.Pattern.Children[0].Kind)
	assert.Equal(t, algebra.GroupMinus, q.Pattern.Children[1].Kind)
	assert.Equal(t, algebra.GroupGraph, q.Pattern.Children[2].Kind)
	assert.Equal(t, algebra.IRI{Value: "http://example.org/g"}, q.Pattern.Children[2].Graph)
	assert.Equal(t, algebra.GroupPlain, q.Pattern.Children[3].Kind)
	assert.Equal(t, algebra.GroupUnion, q.Pattern.Children[4].Kind)
}

func TestParse_SubQuery(t *testing.T) {
	q := mustParse(t, `SELECT ?name WHERE {
		?person <http://example.org/name> ?name .
		{
			SELECT ?person WHERE { ?person <http://example.org/age> ?age }
			ORDER BY ?age
			LIMIT 5
		}
	}`)

	sub, ok := q.Pattern.Patterns[1].(*algebra.SubQuery)
	require.True(t, ok)
	assert.Len(t, sub.Query.Pattern.Patterns, 1)
	assert.Len(t, sub.Query.OrderBy, 1)
	assert.Equal(t, int64(5), sub.Query.Limit)

	// Outer modifiers untouched.
	assert.False(t, q.HasLimit())
	assert.Empty(t, q.OrderBy)
}

func TestParse_Values(t *testing.T) {
	q := mustParse(t, `SELECT ?x ?y WHERE {
		VALUES (?x ?y) { ("a" "b") (UNDEF "d") }
	}`)

	require.NotNil(t, q.Pattern.Inline)
	assert.Len(t, q.Pattern.Inline.Variables, 2)
	require.Len(t, q.Pattern.Inline.Rows, 2)
	assert.Nil(t, q.Pattern.Inline.Rows[1][0])
}

func TestParse_ValuesSingleVariable(t *testing.T) {
	q := mustParse(t, `SELECT ?x WHERE { VALUES ?x { "a" "b" "c" } }`)

	require.NotNil(t, q.Pattern.Inline)
	assert.Len(t, q.Pattern.Inline.Variables, 1)
	assert.Len(t, q.Pattern.Inline.Rows, 3)
}

func TestParse_Paths(t *testing.T) {
	t.Run("sequence folds left-deep", func(t *testing.T) {
		q := mustParse(t, "SELECT ?o WHERE { ?s <http://example.org/a>/<http://example.org/b>/<http://example.org/c> ?o }")
		pt := q.Pattern.Patterns[0].(*algebra.PathTriple)

		root := pt.Path.(*algebra.PathBinary)
		assert.Equal(t, algebra.PathSequence, root.Op)
		_, rightIsStep := root.Right.(*algebra.PropertyStep)
		assert.True(t, rightIsStep, "newest step sits on the right")
		left := root.Left.(*algebra.PathBinary)
		assert.Equal(t, algebra.PathSequence, left.Op)
	})

	t.Run("alternative", func(t *testing.T) {
		q := mustParse(t, "SELECT ?o WHERE { ?s <http://example.org/a>|<http://example.org/b> ?o }")
		pt := q.Pattern.Patterns[0].(*algebra.PathTriple)
		assert.Equal(t, algebra.PathAlternative, pt.Path.(*algebra.PathBinary).Op)
	})

	t.Run("inverse", func(t *testing.T) {
		q := mustParse(t, "SELECT ?o WHERE { ?s ^<http://example.org/a> ?o }")
		pt := q.Pattern.Patterns[0].(*algebra.PathTriple)
		assert.Equal(t, algebra.PathInverse, pt.Path.(*algebra.PathUnary).Op)
	})

	t.Run("negated", func(t *testing.T) {
		q := mustParse(t, "SELECT ?o WHERE { ?s !<http://example.org/a> ?o }")
		pt := q.Pattern.Patterns[0].(*algebra.PathTriple)
		assert.Equal(t, algebra.PathNegated, pt.Path.(*algebra.PathUnary).Op)
	})

	t.Run("closure binds only when adjacent", func(t *testing.T) {
		q := mustParse(t, "SELECT ?o WHERE { ?s <http://example.org/a>+ ?o }")
		pt := q.Pattern.Patterns[0].(*algebra.PathTriple)
		assert.Equal(t, algebra.PathOneOrMore, pt.Path.(*algebra.PathUnary).Op)

		// A separated "?o" stays an object variable, not a zero-or-one.
		q = mustParse(t, "SELECT ?o WHERE { ?s <http://example.org/a> ?o }")
		_, basic := q.Pattern.Patterns[0].(*algebra.BasicTriple)
		assert.True(t, basic)
	})

	t.Run("group", func(t *testing.T) {
		q := mustParse(t, "SELECT ?o WHERE { ?s (<http://example.org/a>|<http://example.org/b>)/<http://example.org/c> ?o }")
		pt := q.Pattern.Patterns[0].(*algebra.PathTriple)
		root := pt.Path.(*algebra.PathBinary)
		assert.Equal(t, algebra.PathSequence, root.Op)
		grp := root.Left.(*algebra.PathUnary)
		assert.Equal(t, algebra.PathGroup, grp.Op)
	})

	t.Run("single step stays a basic triple", func(t *testing.T) {
		q := mustParse(t, "SELECT ?o WHERE { ?s <http://example.org/a> ?o }")
		_, ok := q.Pattern.Patterns[0].(*algebra.BasicTriple)
		assert.True(t, ok)
	})
}

func TestParse_Modifiers(t *testing.T) {
	q := mustParse(t, `SELECT DISTINCT ?s WHERE { ?s <http://example.org/p> ?o }
		GROUP BY ?s
		HAVING (COUNT(?o) > 2)
		ORDER BY DESC(?s) ?o
		LIMIT 0
		OFFSET 20`)

	assert.True(t, q.Distinct)
	assert.Equal(t, []string{"?s"}, q.GroupBy)
	assert.Equal(t, []string{"(COUNT(?o) > 2)"}, q.Having)
	require.Len(t, q.OrderBy, 2)
	assert.Equal(t, algebra.OrderCondition{Expr: "(?s)", Descending: true}, q.OrderBy[0])
	assert.Equal(t, algebra.OrderCondition{Expr: "?o", Descending: false}, q.OrderBy[1])
	assert.Equal(t, int64(0), q.Limit)
	assert.True(t, q.HasLimit())
	assert.Equal(t, int64(20), q.Offset)
}

func TestParse_ProjectionExpression(t *testing.T) {
	q := mustParse(t, "SELECT (COUNT(?o) AS ?n) ?s WHERE { ?s <http://example.org/p> ?o }")

	require.Len(t, q.Variables, 2)
	assert.Equal(t, "n", q.Variables[0].Name)
	assert.Equal(t, "s", q.Variables[1].Name)
}

func TestParse_Comments(t *testing.T) {
	q := mustParse(t, `# a query
		SELECT ?s # projection
		WHERE { ?s <http://example.org/p> ?o } # done`)

	assert.Len(t, q.Pattern.Patterns, 1)
}

func TestParse_BlankNodes(t *testing.T) {
	q := mustParse(t, "SELECT ?o WHERE { _:b <http://example.org/p> [] }")

	triple := q.Pattern.Patterns[0].(*algebra.BasicTriple)
	assert.Equal(t, algebra.BlankNode{ID: "b"}, triple.S)
	assert.IsType(t, algebra.BlankNode{}, triple.O)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"not a select", "ASK { ?s ?p ?o }"},
		{"empty projection", "SELECT WHERE { ?s ?p ?o }"},
		{"unterminated group", "SELECT ?s WHERE { ?s ?p ?o"},
		{"unknown prefix", "SELECT ?s WHERE { ?s foaf:name ?o }"},
		{"unterminated iri", "SELECT ?s WHERE { ?s <http://example.org ?o }"},
		{"unterminated string", `SELECT ?s WHERE { ?s <http://example.org/p> "abc }`},
		{"trailing input", "SELECT ?s WHERE { ?s <http://example.org/p> ?o } garbage"},
		{"missing by after order", "SELECT ?s WHERE { ?s <http://example.org/p> ?o } ORDER ?s"},
		{"variable in path", "SELECT ?s WHERE { ?s ^?p ?o }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, IsParseError(err), "want *ParseError, got %T", err)
		})
	}
}

func TestParseError_Position(t *testing.T) {
	_, err := Parse("SELECT ?s\nWHERE { ?s foaf:name ?o }")
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, pe.Message, "foaf")
}
