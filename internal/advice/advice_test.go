package advice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/bigo/internal/types"
)

func joined(suggestions []string) string {
	return strings.Join(suggestions, "\n")
}

// TestSuggest_NearOptimal tests the encouragement-only branch.
func TestSuggest_NearOptimal(t *testing.T) {
	g := New()
	record := types.FeatureRecord{Language: "cpp", HasBinarySearchSignature: true, LoopCount: 1}

	got := g.Suggest(types.OLogN, types.O1, record, false)

	assert.Contains(t, got[0], "already near-optimal")
	assert.NotContains(t, joined(got), FallbackDisclaimer)
}

// TestSuggest_SortInLoopWarning tests the sort-specific tip.
func TestSuggest_SortInLoopWarning(t *testing.T) {
	g := New()
	record := types.FeatureRecord{Language: "go", HasSortCall: true, LoopCount: 1}

	got := g.Suggest(types.ONLogN, types.ON, record, false)

	assert.Contains(t, joined(got), "not called inside a loop")
	assert.Contains(t, joined(got), "sort in place")
}

// TestSuggest_QuadraticRestructuring tests the restructuring advice.
func TestSuggest_QuadraticRestructuring(t *testing.T) {
	g := New()
	record := types.FeatureRecord{Language: "python", LoopDepthMax: 2, LoopCount: 2}

	got := g.Suggest(types.ON2, types.O1, record, false)

	text := joined(got)
	assert.Contains(t, text, "hash-based lookups")
	assert.Contains(t, text, "divide-and-conquer")
	assert.Contains(t, text, "python tip")
}

// TestSuggest_MemoizationAlwaysIncluded tests that unmemoized recursion
// always earns the memoization suggestion.
func TestSuggest_MemoizationAlwaysIncluded(t *testing.T) {
	g := New()
	record := types.FeatureRecord{
		Language:              "python",
		RecursionDetected:     true,
		RecursionBranchFactor: 2,
	}

	exponential := g.Suggest(types.OExp, types.ON, record, false)
	assert.Contains(t, joined(exponential), "memoization")

	linear := g.Suggest(types.ON, types.ON, record, false)
	assert.Contains(t, joined(linear), "memoization")
}

// TestSuggest_FallbackDisclaimer tests the low-confidence disclaimer.
func TestSuggest_FallbackDisclaimer(t *testing.T) {
	g := New()

	got := g.Suggest(types.ON, types.ON, types.FeatureRecord{Language: "generic"}, true)

	assert.Equal(t, FallbackDisclaimer, got[len(got)-1])
}

// TestSuggest_JavaScriptComparator tests the comparator tip.
func TestSuggest_JavaScriptComparator(t *testing.T) {
	g := New()
	record := types.FeatureRecord{Language: "javascript", HasSortCall: true}

	got := g.Suggest(types.ONLogN, types.ON, record, false)

	assert.Contains(t, joined(got), "numeric comparator")
}

// TestSuggest_NamedAlgorithms tests the signature table, including
// fuzzy and case/separator variants.
func TestSuggest_NamedAlgorithms(t *testing.T) {
	g := New()

	tests := []struct {
		fn   string
		want string
	}{
		{"dijkstra", "Dijkstra"},
		{"dijsktra_shortest", "Dijkstra"},
		{"fibonacci", "Fibonacci"},
		{"binarySearch", "binary search"},
		{"binary_search", "binary search"},
		{"quickSort3", "quicksort"},
		{"floyd_warshall", "Floyd-Warshall"},
	}

	for _, tt := range tests {
		record := types.FeatureRecord{Language: "python", FunctionNames: []string{tt.fn}}
		got := g.Suggest(types.ON2, types.ON, record, false)
		assert.Contains(t, joined(got), tt.want, "function %q", tt.fn)
	}
}

// TestSuggest_AlgorithmReportedOnce tests dedup across functions.
func TestSuggest_AlgorithmReportedOnce(t *testing.T) {
	g := New()
	record := types.FeatureRecord{
		FunctionNames: []string{"fibonacci", "fibonacci_helper", "fib_fibonacci"},
	}

	got := g.Suggest(types.OExp, types.ON, record, false)

	count := strings.Count(joined(got), "Fibonacci computation")
	assert.Equal(t, 1, count)
}

// TestSuggest_Deterministic tests stable output for one input.
func TestSuggest_Deterministic(t *testing.T) {
	g := New()
	record := types.FeatureRecord{
		Language:          "python",
		LoopDepthMax:      2,
		LoopCount:         2,
		RecursionDetected: true,
		FunctionNames:     []string{"quicksort", "dijkstra"},
	}

	first := g.Suggest(types.ON2, types.ON, record, false)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, g.Suggest(types.ON2, types.ON, record, false))
	}
}
