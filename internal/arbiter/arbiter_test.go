package arbiter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/bigo/internal/types"
)

func heuristicVerdict(conf float64) types.Verdict {
	return types.Verdict{
		Time:       types.ON2,
		Space:      types.O1,
		Confidence: conf,
		Breakdown:  []string{"loops nested 2 deep"},
		Source:     types.SourceHeuristic,
	}
}

func ensembleVerdict(conf float64) types.Verdict {
	return types.Verdict{
		Time:       types.ON,
		Space:      types.ON,
		Confidence: conf,
		Breakdown:  []string{"ensemble of 5 models"},
		Source:     types.SourceEnsemble,
	}
}

// TestArbitrate_EnsembleAbsent tests verbatim heuristic promotion.
func TestArbitrate_EnsembleAbsent(t *testing.T) {
	r := Arbitrate(heuristicVerdict(0.95), nil, nil)

	assert.Equal(t, "O(n²)", r.TimeComplexity)
	assert.Equal(t, "O(1)", r.SpaceComplexity)
	assert.Equal(t, types.MethodRuleBased, r.AnalysisMethod)
	assert.Nil(t, r.ModelAgreement)
	assert.Equal(t, []string{"loops nested 2 deep"}, r.Breakdown)
}

// TestArbitrate_EnsembleWins tests ml promotion with the heuristic
// evidence preserved under the marker.
func TestArbitrate_EnsembleWins(t *testing.T) {
	e := ensembleVerdict(0.9)
	agreement := &types.ModelAgreement{TimePredictions: map[string]int{"O(n)": 5}}

	r := Arbitrate(heuristicVerdict(0.7), &e, agreement)

	assert.Equal(t, "O(n)", r.TimeComplexity)
	assert.Equal(t, types.MethodMLHigherConfidence, r.AnalysisMethod)
	assert.Same(t, agreement, r.ModelAgreement)
	assert.Contains(t, r.Breakdown[0], "ensemble of 5 models")
	assert.Contains(t, r.Breakdown[1], AlternativeMarker)
	assert.Contains(t, r.Breakdown[1], "heuristic")
	assert.Contains(t, r.Breakdown, "loops nested 2 deep")
}

// TestArbitrate_HeuristicWins tests that a losing ensemble still
// attaches its agreement and evidence.
func TestArbitrate_HeuristicWins(t *testing.T) {
	e := ensembleVerdict(0.5)
	agreement := &types.ModelAgreement{TimePredictions: map[string]int{"O(n)": 3, "O(n²)": 2}}

	r := Arbitrate(heuristicVerdict(0.95), &e, agreement)

	assert.Equal(t, "O(n²)", r.TimeComplexity)
	assert.Equal(t, types.MethodRuleBased, r.AnalysisMethod)
	assert.Same(t, agreement, r.ModelAgreement)
	assert.Contains(t, r.Breakdown[1], AlternativeMarker)
	assert.Contains(t, r.Breakdown, "ensemble of 5 models")
}

// TestArbitrate_TiePrefersEnsemble tests the equal-confidence rule.
func TestArbitrate_TiePrefersEnsemble(t *testing.T) {
	e := ensembleVerdict(0.8)

	r := Arbitrate(heuristicVerdict(0.8), &e, nil)

	assert.Equal(t, "O(n)", r.TimeComplexity)
	assert.Equal(t, types.MethodMLHigherConfidence, r.AnalysisMethod)
}
