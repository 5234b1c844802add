package report

import (
	"fmt"
	"strings"

	"github.com/veldt-io/sparqstat/internal/stats"
)

// Vocabulary IRIs for the generated statements.
const (
	featureNS  = "https://veldt.io/sparqstat/vocab#"
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
)

// QueryIRI derives the subject IRI for a query from its content ID.
func QueryIRI(queryID string) string {
	return "https://veldt.io/sparqstat/query/" + queryID
}

// UpdateStatement renders a metrics mapping as a SPARQL INSERT DATA
// statement binding each metric to the query's IRI. Metrics appear in
// report order (stats.Names); names missing from the mapping are
// skipped, so a partial mapping produces a partial statement rather
// than zero-filled rows.
func UpdateStatement(queryIRI string, metrics stats.Metrics) string {
	var b strings.Builder
	b.WriteString("INSERT DATA {\n")
	for _, name := range stats.Names {
		v, ok := metrics[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  <%s> <%s%s> \"%d\"^^<%s> .\n", queryIRI, featureNS, name, v, xsdInteger)
	}
	b.WriteString("}\n")
	return b.String()
}
