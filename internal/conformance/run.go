package conformance

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/veldt-io/sparqstat/internal/report"
	"github.com/veldt-io/sparqstat/internal/sparql"
	"github.com/veldt-io/sparqstat/internal/stats"
)

// Run parses the scenario's query and analyzes it. Parse failures are
// scenario failures: a conforming parser accepts every suite query.
func Run(scenario *Scenario) (stats.Metrics, error) {
	q, err := sparql.Parse(scenario.Query)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: parse: %w", scenario.Name, err)
	}
	return stats.Analyze(q), nil
}

// Verify runs the scenario and checks every expected metric. All
// mismatches are collected into one error rather than stopping at the
// first, so a failing scenario reports its full shape.
func Verify(scenario *Scenario) error {
	metrics, err := Run(scenario)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(scenario.Expect))
	for name := range scenario.Expect {
		names = append(names, name)
	}
	sort.Strings(names)

	var mismatches []string
	for _, name := range names {
		if got := metrics[name]; got != scenario.Expect[name] {
			mismatches = append(mismatches,
				fmt.Sprintf("%s = %d, expected %d", name, got, scenario.Expect[name]))
		}
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("scenario %s: %s", scenario.Name, strings.Join(mismatches, "; "))
	}
	return nil
}

// RunWithGolden runs the scenario and compares its canonical JSON
// report against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/conformance -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	metrics, err := Run(scenario)
	if err != nil {
		return err
	}

	reportJSON, err := report.MarshalCanonical(map[string]any{
		"scenario_name": scenario.Name,
		"metrics":       metrics,
	})
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, reportJSON)

	return nil
}
