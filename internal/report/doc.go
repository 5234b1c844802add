// Package report gives computed metrics a stable identity and an
// upload form.
//
// Identity is content-addressed: query text hashes to a QueryID and a
// metrics mapping hashes to a ReportID, both SHA-256 with domain
// separation over canonical JSON. Canonical here means RFC 8785
// conventions: sorted object keys, NFC-normalized strings, no HTML
// escaping, integers only. The same query text and metric values always
// produce the same IDs, across machines and runs.
//
// The upload form is a SPARQL INSERT DATA statement binding each metric
// to the query's IRI, the shape a downstream triple store ingests.
package report
