package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsResource(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want bool
	}{
		{"iri", IRI{Value: "http://example.org/p"}, true},
		{"plain literal", Literal{Lexical: "hello"}, true},
		{"typed literal", Literal{Lexical: "5", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}, true},
		{"tagged literal", Literal{Lexical: "hallo", Lang: "de"}, true},
		{"variable", Variable{Name: "x"}, false},
		{"blank node", BlankNode{ID: "b0"}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsResource(tt.term))
		})
	}
}

func TestTermString(t *testing.T) {
	assert.Equal(t, "<http://example.org/p>", IRI{Value: "http://example.org/p"}.String())
	assert.Equal(t, `"hello"`, Literal{Lexical: "hello"}.String())
	assert.Equal(t, `"hallo"@de`, Literal{Lexical: "hallo", Lang: "de"}.String())
	assert.Equal(t, `"5"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		Literal{Lexical: "5", Datatype: "http://www.w3.org/2001/XMLSchema#integer"}.String())
	assert.Equal(t, "?x", Variable{Name: "x"}.String())
	assert.Equal(t, "_:b0", BlankNode{ID: "b0"}.String())
}

func TestPropertyStepIsBound(t *testing.T) {
	assert.True(t, (&PropertyStep{Predicate: IRI{Value: "http://example.org/p"}}).IsBound())
	assert.False(t, (&PropertyStep{Predicate: Variable{Name: "p"}}).IsBound())
	assert.False(t, (&PropertyStep{}).IsBound())
}

func TestNewQuerySentinels(t *testing.T) {
	q := NewQuery()
	require.NotNil(t, q.Pattern)
	assert.Equal(t, Unset, q.Limit)
	assert.Equal(t, Unset, q.Offset)
	assert.False(t, q.HasLimit())
	assert.False(t, q.HasOffset())
}

func TestHasLimit(t *testing.T) {
	q := NewQuery()

	// LIMIT 0 is a real clause.
	q.Limit = 0
	assert.True(t, q.HasLimit())

	q.Limit = 10
	assert.True(t, q.HasLimit())

	q.Limit = Unset
	assert.False(t, q.HasLimit())
}

func TestHasOffset(t *testing.T) {
	q := NewQuery()

	// OFFSET 0 is the same as no offset.
	q.Offset = 0
	assert.False(t, q.HasOffset())

	q.Offset = 5
	assert.True(t, q.HasOffset())

	q.Offset = Unset
	assert.False(t, q.HasOffset())
}

func TestDistinctVariables(t *testing.T) {
	q := NewQuery()
	q.Variables = []Variable{{Name: "a"}, {Name: "b"}, {Name: "a"}, {Name: "c"}, {Name: "b"}}

	got := q.DistinctVariables()
	require.Len(t, got, 3)
	assert.Equal(t, []Variable{{Name: "a"}, {Name: "b"}, {Name: "c"}}, got)
}
