package types

// VerdictSource identifies which classifier produced a Verdict.
type VerdictSource string

const (
	SourceHeuristic VerdictSource = "heuristic"
	SourceEnsemble  VerdictSource = "ensemble"
)

// Analysis method labels reported on the final Result.
const (
	MethodRuleBased          = "rule_based"
	MethodMLHigherConfidence = "ml_higher_confidence"
)

// Verdict is one classifier's answer. Two verdicts exist transiently per
// request; arbitration promotes exactly one into the Result.
type Verdict struct {
	Time       ComplexityClass
	Space      ComplexityClass
	Confidence float64
	Breakdown  []string
	Source     VerdictSource

	// FallbackApplied marks the heuristic default rule so the suggestion
	// generator can attach its disclaimer.
	FallbackApplied bool
}

// ModelVote is a single ensemble member's prediction for both axes.
type ModelVote struct {
	ModelID              string
	PredictedTime        ComplexityClass
	PredictedProbability float64
	PredictedSpace       ComplexityClass
	SpaceProbability     float64
}

// ModelAgreement records full per-label vote counts for transparency,
// not just the winners.
type ModelAgreement struct {
	TimePredictions  map[string]int `json:"time_predictions"`
	SpacePredictions map[string]int `json:"space_predictions"`
}

// Result is the response entity. Immutable once returned; it has no
// lifecycle beyond the request/response cycle.
type Result struct {
	TimeComplexity  string          `json:"time_complexity"`
	SpaceComplexity string          `json:"space_complexity"`
	Confidence      float64         `json:"confidence"`
	Breakdown       []string        `json:"breakdown"`
	Suggestions     []string        `json:"suggestions"`
	AnalysisMethod  string          `json:"analysis_method"`
	ModelAgreement  *ModelAgreement `json:"model_agreement,omitempty"`
}
