package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-io/sparqstat/internal/stats"
)

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{
		"zebra": int64(1),
		"apple": int64(2),
		"mango": "m",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"mango":"m","zebra":1}`, string(got))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	got, err := MarshalCanonical("SELECT ?s WHERE { ?s <http://example.org/p> ?o }")
	require.NoError(t, err)
	assert.Contains(t, string(got), "<http://example.org/p>")
	assert.NotContains(t, string(got), `\u003c`)
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	composed, err := MarshalCanonical("café")
	require.NoError(t, err)
	decomposed, err := MarshalCanonical("café")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalCanonical_LineSeparatorsStayLiteral(t *testing.T) {
	got, err := MarshalCanonical("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(got))

	// Literal backslash-u-2028 text is data, not an escape.
	got, err = MarshalCanonical(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(got))
}

func TestMarshalCanonical_Metrics(t *testing.T) {
	got, err := MarshalCanonical(stats.Metrics{
		stats.MetricTriples: 3,
		stats.MetricFilters: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"numberOfFilters":1,"numberOfTriples":3}`, string(got))
}

func TestMarshalCanonical_Forbidden(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.ErrorContains(t, err, "null is forbidden")

	_, err = MarshalCanonical(3.14)
	assert.ErrorContains(t, err, "floats are forbidden")

	_, err = MarshalCanonical([]string{"a"})
	assert.ErrorContains(t, err, "unsupported type")

	_, err = MarshalCanonical(map[string]any{"k": 1.5})
	assert.ErrorContains(t, err, `value for key "k"`)
}
