package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-io/sparqstat/internal/sparql"
)

func TestNormalizeText_NoPrefixes(t *testing.T) {
	text := "SELECT ?s ?o\nWHERE {\n  ?s <http://example.org/knows> ?o .\n}\n"
	got := NormalizeText(text, nil, "")
	assert.Equal(t, "SELECT ?s ?o WHERE { ?s <http://example.org/knows> ?o . }", got)
}

func TestNormalizeText_PrefixSubstitution(t *testing.T) {
	text := "PREFIX foaf: <http://xmlns.com/foaf/0.1/>\nSELECT ?n\nWHERE {\n  ?s foaf:name ?n .\n}\n"
	prefixes := map[string]string{"foaf": "http://xmlns.com/foaf/0.1/"}

	got := NormalizeText(text, prefixes, "")
	assert.Equal(t, "SELECT ?n WHERE { ?s p:o ?n . }", got)
}

func TestNormalizeText_DefaultPrefixStripsBase(t *testing.T) {
	text := "BASE <http://example.org/>\nPREFIX : <http://example.org/ns#>\nSELECT ?o\nWHERE {\n  ?s :p ?o .\n}\n"
	prefixes := map[string]string{"": "http://example.org/ns#"}

	got := NormalizeText(text, prefixes, "http://example.org/")
	assert.Equal(t, "SELECT ?o WHERE { ?s p:o ?o . }", got)
}

func TestNormalizeText_LongestPrefixFirst(t *testing.T) {
	// "geof" must not be rewritten as a "geo" match plus leftover "f".
	text := "PREFIX geo: <http://example.org/geo#>\nPREFIX geof: <http://example.org/geof#>\nSELECT ?x\nWHERE {\n  ?x geof:near ?y .\n  ?y geo:lat ?z .\n}\n"
	prefixes := map[string]string{
		"geo":  "http://example.org/geo#",
		"geof": "http://example.org/geof#",
	}

	got := NormalizeText(text, prefixes, "")
	assert.Equal(t, "SELECT ?x WHERE { ?x p:o ?y . ?y p:o ?z . }", got)
}

func TestNormalizedLength_FullIRIs(t *testing.T) {
	q, err := sparql.Parse("SELECT ?s ?o\nWHERE {\n  ?s <http://example.org/knows> ?o .\n}")
	require.NoError(t, err)

	// "SELECT ?s ?o WHERE { ?s <http://example.org/knows> ?o . }"
	assert.Equal(t, int64(57), NormalizedLength(q))
}

func TestNormalizedLength_PrefixedNamesCollapse(t *testing.T) {
	q, err := sparql.Parse("PREFIX foaf: <http://xmlns.com/foaf/0.1/>\nSELECT ?n WHERE { ?s foaf:name ?n . }")
	require.NoError(t, err)

	// "SELECT ?n WHERE { ?s p:o ?n . }"
	assert.Equal(t, int64(31), NormalizedLength(q))
}

func TestNormalizedLength_IdentifierVerbosityIndependent(t *testing.T) {
	verbose, err := sparql.Parse("PREFIX averylongprefixname: <http://example.org/vocabulary/terms#>\nSELECT ?n WHERE { ?s averylongprefixname:name ?n . }")
	require.NoError(t, err)

	terse, err := sparql.Parse("PREFIX v: <http://example.org/vocabulary/terms#>\nSELECT ?n WHERE { ?s v:name ?n . }")
	require.NoError(t, err)

	assert.Equal(t, NormalizedLength(terse), NormalizedLength(verbose))
}
