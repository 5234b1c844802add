package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/veldt-io/sparqstat/internal/stats"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration.
const (
	DomainQuery  = "sparqstat/query/v1"
	DomainReport = "sparqstat/report/v1"
)

// hashWithDomain computes SHA-256 with domain separation:
// SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// QueryID content-addresses raw query text. The text is NFC normalized
// first so byte-level encoding differences do not split identity.
// Whitespace is NOT normalized: two textually different spellings of
// the same query are different queries.
func QueryID(text string) string {
	return hashWithDomain(DomainQuery, []byte(norm.NFC.String(text)))
}

// ReportID content-addresses a metrics mapping together with the query
// it describes. Stable across runs given the same inputs.
func ReportID(queryID string, metrics stats.Metrics) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"metrics":  metrics,
		"query_id": queryID,
	})
	if err != nil {
		return "", fmt.Errorf("ReportID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainReport, canonical), nil
}

// MustReportID is like ReportID but panics on error. Use only in tests
// or when inputs are known to be valid.
func MustReportID(queryID string, metrics stats.Metrics) string {
	id, err := ReportID(queryID, metrics)
	if err != nil {
		panic(err)
	}
	return id
}
