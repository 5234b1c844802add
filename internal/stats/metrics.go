package stats

// Metric names, exactly as consumed by downstream storage and upload.
const (
	MetricTriples                  = "numberOfTriples"
	MetricFilters                  = "numberOfFilters"
	MetricVariables                = "numberOfVariables"
	MetricResources                = "numberOfResources"
	MetricResourcesSubjectsObjects = "numberOfResourcesSubjectsObjects"
	MetricResourcesPredicates      = "numberOfResourcesPredicates"
	MetricModifierOrderBy          = "numberOfModifierOrderBy"
	MetricModifierLimit            = "numberOfModifierLimit"
	MetricModifierHaving           = "numberOfModifierHaving"
	MetricModifierOffset           = "numberOfModifierOffset"
	MetricModifierGroupBy          = "numberOfModifierGroupBy"
	MetricModifiers                = "numberOfModifiers"
	MetricNormalizedLength         = "normalizedQueryLength"
)

// Names lists every metric in report order. Text output, update
// statements, and store reads all iterate this slice so results are
// deterministic.
var Names = []string{
	MetricTriples,
	MetricFilters,
	MetricVariables,
	MetricResources,
	MetricResourcesSubjectsObjects,
	MetricResourcesPredicates,
	MetricModifierOrderBy,
	MetricModifierLimit,
	MetricModifierHaving,
	MetricModifierOffset,
	MetricModifierGroupBy,
	MetricModifiers,
	MetricNormalizedLength,
}

// Metrics maps metric name to a non-negative integer value.
// Values are always int64, never floats.
type Metrics map[string]int64
