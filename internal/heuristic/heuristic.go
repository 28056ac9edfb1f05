// Package heuristic maps a FeatureRecord to a complexity verdict via an
// ordered decision list. First match wins; later rules are
// specializations that a coarser rule would otherwise mask, so the
// order is part of the contract and covered by tests.
package heuristic

import (
	"fmt"

	"github.com/standardbeagle/bigo/internal/types"
)

// FallbackNote is the breakdown line emitted when no rule matched. The
// arbiter and suggestion generator key off its presence.
const FallbackNote = "no strong pattern detected; heuristic default applied"

// Classifier is stateless; the zero value is ready to use.
type Classifier struct{}

// New returns a rule classifier.
func New() *Classifier {
	return &Classifier{}
}

// Classify evaluates the decision list against one record. Always
// returns a complete verdict; the final rule is a total fallback.
func (c *Classifier) Classify(record types.FeatureRecord) types.Verdict {
	v := types.Verdict{Source: types.SourceHeuristic}

	switch {
	case record.HasBinarySearchSignature:
		v.Time = types.OLogN
		v.Space = types.O1
		v.Confidence = 0.9
		v.Breakdown = []string{
			"binary search pattern: bounded loop over a shrinking index range",
			"midpoint computation detected",
		}

	case record.RecursionDetected && record.RecursionBranchFactor >= 2 && !record.HasMemoizationSignature:
		v.Time = types.OExp
		v.Space = types.ON
		v.Confidence = 0.7
		v.Breakdown = []string{
			fmt.Sprintf("branching recursion: %d self-calls per invocation without memoization", record.RecursionBranchFactor),
			"call stack grows linearly with input",
		}

	case record.RecursionDetected && record.HasMemoizationSignature:
		v.Time = types.ON
		v.Space = types.ON
		v.Confidence = 0.85
		v.Breakdown = []string{
			"recursion with memoization: each subproblem computed once",
			"memo table grows linearly with input",
		}

	case record.LoopDepthMax >= 2 && !record.HasSortCall:
		c.classifyNestedLoops(record, &v)

	case record.HasSortCall:
		v.Time = types.ONLogN
		v.Confidence = 0.8
		v.Breakdown = []string{"sort call detected: library sorts are O(n log n)"}
		if record.HasInPlaceSort {
			v.Space = types.O1
			v.Breakdown = append(v.Breakdown, "in-place sort variant detected")
		} else {
			v.Space = types.ON
			v.Breakdown = append(v.Breakdown, "sort produces or copies an auxiliary sequence")
		}

	case record.LoopCount == 1 && record.LoopDepthMax == 1:
		v.Time = types.ON
		v.Space = types.O1
		v.Confidence = 0.9
		v.Breakdown = []string{"single non-nested loop: one pass over the input"}

	case record.LoopCount == 0 && !record.RecursionDetected:
		v.Time = types.O1
		v.Space = types.O1
		v.Confidence = 0.6
		v.Breakdown = []string{"no loops or recursion detected; absence of signal is weak evidence"}

	default:
		v.Time = types.ON
		v.Space = types.ON
		v.Confidence = 0.4
		v.FallbackApplied = true
		v.Breakdown = []string{FallbackNote}
	}

	return v
}

// classifyNestedLoops handles rule 4: polynomial growth by loop depth,
// capped at cubic. Deeper nesting than cubic is reported as
// exponential-like rather than inventing higher polynomial classes.
func (c *Classifier) classifyNestedLoops(record types.FeatureRecord, v *types.Verdict) {
	depth := record.LoopDepthMax
	if depth > 3 {
		v.Time = types.OExp
		v.Confidence = 0.5
		v.Breakdown = []string{
			fmt.Sprintf("loops nested %d deep: beyond cubic, growth is effectively exponential-like", depth),
		}
	} else {
		v.Time = types.PolynomialClass(depth)
		v.Confidence = 0.95 - 0.1*float64(depth-2)
		if v.Confidence < 0.4 {
			v.Confidence = 0.4
		}
		v.Breakdown = []string{
			fmt.Sprintf("loops nested %d deep: %s iterations over the input", depth, v.Time),
		}
	}
	// Structures filled across loop bodies dominate the space estimate.
	if record.HasAuxiliaryStructures() {
		v.Space = types.ON
		v.Breakdown = append(v.Breakdown,
			fmt.Sprintf("auxiliary structures accumulate with input: %v", record.DataStructures))
	} else {
		v.Space = types.O1
	}
}
