package types

// FeatureRecord is the structured summary of a snippet's control-flow
// shape. It is built once per request by the extractor, read by both
// classifiers, and discarded with the request. Never cached.
type FeatureRecord struct {
	Language string // grammar key that served the extraction ("generic" when degraded)
	Degraded bool   // true when the generic grammar served an unregistered language

	LoopDepthMax int // maximum simultaneous nesting of loop constructs
	LoopCount    int // distinct loop constructs (not iterations)

	RecursionDetected     bool
	RecursionBranchFactor int // self-calls per invocation body; >=2 signals branching recursion

	HasBinarySearchSignature bool
	HasSortCall              bool
	HasInPlaceSort           bool
	HasMemoizationSignature  bool

	// DataStructures is sorted so downstream output is deterministic.
	DataStructures   []string
	HasHashStructure bool

	FunctionCount    int
	ConditionalCount int
	LineCount        int

	// FunctionNames feeds named-algorithm suggestion matching only; it
	// never influences the classifiers.
	FunctionNames []string
}

// HasAuxiliaryStructures reports whether the snippet accumulates into
// heap-allocated structures, which drives the space axis.
func (r FeatureRecord) HasAuxiliaryStructures() bool {
	return len(r.DataStructures) > 0
}
