// Package arbiter promotes exactly one of the two classifier verdicts
// to the response. The losing verdict's evidence is kept under a marker
// so callers can audit disagreement.
package arbiter

import (
	"fmt"

	"github.com/standardbeagle/bigo/internal/types"
)

// AlternativeMarker opens the non-promoted verdict's evidence block in
// the breakdown.
const AlternativeMarker = "alternative analysis"

// Arbitrate applies the confidence policy. ensemble is nil when the
// predictor was unavailable; agreement is attached whenever the
// ensemble participated, win or lose.
func Arbitrate(heuristic types.Verdict, ensemble *types.Verdict, agreement *types.ModelAgreement) types.Result {
	if ensemble == nil {
		return promote(heuristic, nil, types.MethodRuleBased, nil)
	}

	// Equal confidence prefers the ensemble: it carries richer evidence.
	if ensemble.Confidence >= heuristic.Confidence {
		return promote(*ensemble, &heuristic, types.MethodMLHigherConfidence, agreement)
	}
	return promote(heuristic, ensemble, types.MethodRuleBased, agreement)
}

func promote(winner types.Verdict, loser *types.Verdict, method string, agreement *types.ModelAgreement) types.Result {
	breakdown := make([]string, 0, len(winner.Breakdown)+8)
	breakdown = append(breakdown, winner.Breakdown...)
	if loser != nil {
		breakdown = append(breakdown, fmt.Sprintf("%s (%s, confidence %.2f):", AlternativeMarker, loser.Source, loser.Confidence))
		breakdown = append(breakdown, loser.Breakdown...)
	}

	return types.Result{
		TimeComplexity:  winner.Time.String(),
		SpaceComplexity: winner.Space.String(),
		Confidence:      winner.Confidence,
		Breakdown:       breakdown,
		AnalysisMethod:  method,
		ModelAgreement:  agreement,
	}
}
