// Package advice turns the final verdict into actionable suggestions.
// Output is a pure function of the time/space classes plus the detected
// patterns, so identical requests always get identical advice.
package advice

import (
	"github.com/standardbeagle/bigo/internal/types"
)

// FallbackDisclaimer is always present when the verdict came from the
// heuristic default rule.
const FallbackDisclaimer = "complexity could not be determined with confidence; consider adding comments or renaming variables to clarify loop bounds"

// Generator holds the named-algorithm signature table.
type Generator struct {
	algorithms *algorithmTable
}

// New builds a generator with the built-in algorithm knowledge.
func New() *Generator {
	return &Generator{algorithms: newAlgorithmTable()}
}

// Suggest produces the ordered suggestion list for one result.
// fallback marks that the time class came from the heuristic default.
func (g *Generator) Suggest(time, space types.ComplexityClass, record types.FeatureRecord, fallback bool) []string {
	var out []string

	switch {
	case time <= types.OLogN:
		out = append(out, "already near-optimal; consider O(1) via precomputation or a hash lookup only if the access pattern allows it")

	case time <= types.ONLogN:
		if record.HasSortCall {
			out = append(out, "verify the library sort is not called inside a loop; one sort per element turns O(n log n) into O(n² log n)")
			if !record.HasInPlaceSort {
				out = append(out, "sorting a copy costs O(n) extra space; sort in place when the original order is not needed")
			}
		}
		if time == types.ON && record.LoopCount == 1 {
			out = append(out, "a single pass is usually as good as it gets; check that no hidden O(n) call (slicing, copying, membership scan) runs inside the loop")
		}

	default:
		if record.LoopDepthMax >= 2 {
			out = append(out, "replace inner-loop scans with hash-based lookups to drop one factor of n")
			out = append(out, "consider divide-and-conquer or sorting the input first to avoid comparing every pair")
		}
		if record.RecursionDetected && !record.HasMemoizationSignature {
			out = append(out, "add memoization: caching subproblem results collapses the branching recursion tree")
		}
		if time >= types.OExp && !record.RecursionDetected {
			out = append(out, "exponential-like growth from deep loop nesting; restructure the iteration space or precompute partial results")
		}
	}

	// Memoization advice applies whenever unmemoized recursion was seen,
	// whatever class won arbitration.
	if record.RecursionDetected && !record.HasMemoizationSignature && time < types.OExp {
		out = append(out, "recursion without memoization detected; caching results avoids recomputing identical subproblems")
	}

	if space >= types.ON && record.HasHashStructure {
		out = append(out, "hash structures grow with the input; if memory is tight, check whether the working set can be bounded or streamed")
	}

	if tip := languageTip(record); tip != "" {
		out = append(out, tip)
	}

	for _, match := range g.algorithms.matches(record.FunctionNames) {
		out = append(out, match.note)
	}

	if fallback {
		out = append(out, FallbackDisclaimer)
	}

	return out
}

// languageTip returns one idiom hint keyed by the detected language.
func languageTip(record types.FeatureRecord) string {
	switch record.Language {
	case "python":
		if record.LoopDepthMax >= 2 || record.HasHashStructure {
			return "python tip: membership tests on a set are O(1) versus O(n) on a list"
		}
	case "cpp":
		if record.LoopCount > 0 {
			return "c++ tip: prefer range-for and reserve() on vectors to avoid repeated reallocation inside loops"
		}
	case "java":
		if record.LoopCount > 0 {
			return "java tip: the enhanced for loop avoids repeated size() calls and indexed access on linked structures"
		}
	case "javascript":
		if record.HasSortCall {
			return "javascript tip: Array.prototype.sort compares as strings by default; pass a numeric comparator"
		}
	}
	return ""
}
