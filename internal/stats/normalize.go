package stats

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/veldt-io/sparqstat/internal/algebra"
	"github.com/veldt-io/sparqstat/internal/sparql"
)

// placeholder replaces every prefixed-name occurrence so the length
// metric is independent of identifier verbosity.
const placeholder = "p:o"

var (
	baseLineRe = regexp.MustCompile(`(?m)^BASE <[^>]*>\n?`)
	lineRunRe  = regexp.MustCompile(`[ \t]*\n[ \t\n]*`)
)

// NormalizedLength serializes q, normalizes the text against the
// query's own prefix declarations, and returns the rune count.
func NormalizedLength(q *algebra.Query) int64 {
	text := NormalizeText(sparql.Serialize(q), q.Prefixes, q.Base)
	return int64(utf8.RuneCountInString(text))
}

// NormalizeText rewrites serialized query text for length comparison:
// for every declared prefix the PREFIX line is removed and each
// prefix:localname occurrence collapses to one placeholder token; the
// default (empty) prefix additionally strips the BASE line, since it
// governs unprefixed relative references. Line breaks and surrounding
// indentation collapse to single spaces and the result is NFC-form.
func NormalizeText(text string, prefixes map[string]string, base string) string {
	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	// Longest name first, so a prefix never rewrites inside a longer
	// one ("geo" before "geof" would).
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		text = prefixDeclRe(name).ReplaceAllString(text, "")
		if name == "" {
			text = baseLineRe.ReplaceAllString(text, "")
		}
	}
	for _, name := range names {
		if name == "" {
			text = defaultUseRe.ReplaceAllString(text, "${1}"+placeholder)
			continue
		}
		text = prefixUseRe(name).ReplaceAllString(text, placeholder)
	}

	text = lineRunRe.ReplaceAllString(text, " ")
	return norm.NFC.String(strings.TrimSpace(text))
}

const localChars = `A-Za-z0-9_.\-`

// defaultUseRe matches ":local" for the default prefix without eating
// the colon of a longer prefixed name.
var defaultUseRe = regexp.MustCompile(`(^|[^` + localChars + `]):[` + localChars + `]+`)

func prefixDeclRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^PREFIX ` + regexp.QuoteMeta(name) + `: <[^>]*>\n?`)
}

func prefixUseRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `:[` + localChars + `]*`)
}
