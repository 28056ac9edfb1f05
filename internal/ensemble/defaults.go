package ensemble

// Compiled-in default model set: five members across the three
// families. These are the fallback when no models directory is
// configured; a configured directory replaces them entirely. The
// members are deliberately not identical so their errors decorrelate
// and plurality voting has something to aggregate.

// vec expands sparse feature weights to a full-length slice.
func vec(vals map[int]float64) []float64 {
	out := make([]float64, VectorSize)
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// DefaultArtifacts returns the built-in model definitions.
func DefaultArtifacts() []Artifact {
	return []Artifact{
		{
			ID:            "tree-default-a",
			Family:        FamilyTree,
			FormatVersion: FormatVersion,
			TimeRules: []ArtifactRule{
				{Feature: featBinarySearch, Min: 1, Class: "O(log n)", Probability: 0.92},
				{Feature: featMemoization, Min: 1, Class: "O(n)", Probability: 0.8},
				{Feature: featRecursionBranchFactor, Min: 2, Class: "O(2ⁿ)", Probability: 0.8},
				{Feature: featLoopDepthMax, Min: 4, Class: "O(2ⁿ)", Probability: 0.55},
				{Feature: featLoopDepthMax, Min: 3, Class: "O(n³)", Probability: 0.78},
				{Feature: featLoopDepthMax, Min: 2, Class: "O(n²)", Probability: 0.85},
				{Feature: featSortCall, Min: 1, Class: "O(n log n)", Probability: 0.8},
				{Feature: featLoopCount, Min: 1, Class: "O(n)", Probability: 0.85},
			},
			TimeDefault: &ArtifactDefault{Class: "O(1)", Probability: 0.6},
			SpaceRules: []ArtifactRule{
				{Feature: featMemoization, Min: 1, Class: "O(n)", Probability: 0.8},
				{Feature: featRecursionDetected, Min: 1, Class: "O(n)", Probability: 0.75},
				{Feature: featHashStructure, Min: 1, Class: "O(n)", Probability: 0.7},
				{Feature: featDataStructureCount, Min: 1, Class: "O(n)", Probability: 0.65},
			},
			SpaceDefault: &ArtifactDefault{Class: "O(1)", Probability: 0.7},
		},
		{
			ID:            "tree-default-b",
			Family:        FamilyTree,
			FormatVersion: FormatVersion,
			TimeRules: []ArtifactRule{
				{Feature: featBinarySearch, Min: 1, Class: "O(log n)", Probability: 0.88},
				{Feature: featMemoization, Min: 1, Class: "O(n)", Probability: 0.82},
				{Feature: featRecursionBranchFactor, Min: 4, Class: "O(n!)", Probability: 0.5},
				{Feature: featRecursionBranchFactor, Min: 2, Class: "O(2ⁿ)", Probability: 0.75},
				{Feature: featSortCall, Min: 1, Class: "O(n log n)", Probability: 0.82},
				{Feature: featLoopDepthMax, Min: 3, Class: "O(n³)", Probability: 0.7},
				{Feature: featLoopDepthMax, Min: 2, Class: "O(n²)", Probability: 0.88},
				{Feature: featLoopCount, Min: 1, Class: "O(n)", Probability: 0.8},
			},
			TimeDefault: &ArtifactDefault{Class: "O(1)", Probability: 0.65},
			SpaceRules: []ArtifactRule{
				{Feature: featRecursionDetected, Min: 1, Class: "O(n)", Probability: 0.8},
				{Feature: featInPlaceSort, Min: 1, Class: "O(1)", Probability: 0.75},
				{Feature: featDataStructureCount, Min: 1, Class: "O(n)", Probability: 0.7},
			},
			SpaceDefault: &ArtifactDefault{Class: "O(1)", Probability: 0.65},
		},
		{
			ID:            "linear-default-a",
			Family:        FamilyLinear,
			FormatVersion: FormatVersion,
			TimeWeights: map[string][]float64{
				"O(1)":       vec(map[int]float64{featLoopDepthMax: -1.5, featLoopCount: -1.0, featRecursionDetected: -1.0}),
				"O(log n)":   vec(map[int]float64{featBinarySearch: 6.0}),
				"O(n)":       vec(map[int]float64{featLoopCount: 0.9, featLoopDepthMax: -1.2, featMemoization: 2.5, featRecursionDetected: 0.5}),
				"O(n log n)": vec(map[int]float64{featSortCall: 5.0}),
				"O(n²)":      vec(map[int]float64{featLoopDepthMax: 2.0}),
				"O(n³)":      vec(map[int]float64{featLoopDepthMax: 3.2}),
				"O(2ⁿ)":      vec(map[int]float64{featRecursionBranchFactor: 1.6, featRecursionDetected: 1.0, featMemoization: -5.0}),
			},
			TimeBias: map[string]float64{
				"O(1)":       0.5,
				"O(log n)":   -2.0,
				"O(n)":       -0.5,
				"O(n log n)": -2.0,
				"O(n²)":      -3.4,
				"O(n³)":      -6.7,
				"O(2ⁿ)":      -2.0,
			},
			SpaceWeights: map[string][]float64{
				"O(1)": vec(nil),
				"O(n)": vec(map[int]float64{featRecursionDetected: 1.8, featMemoization: 1.5, featHashStructure: 1.2, featDataStructureCount: 0.8}),
			},
			SpaceBias: map[string]float64{
				"O(1)": 1.0,
				"O(n)": -0.6,
			},
		},
		{
			ID:            "linear-default-b",
			Family:        FamilyLinear,
			FormatVersion: FormatVersion,
			TimeWeights: map[string][]float64{
				"O(1)":       vec(map[int]float64{featLoopDepthMax: -1.2, featLoopCount: -1.1, featRecursionDetected: -0.8}),
				"O(log n)":   vec(map[int]float64{featBinarySearch: 5.5, featConditionalCount: 0.1}),
				"O(n)":       vec(map[int]float64{featLoopCount: 1.0, featLoopDepthMax: -1.3, featMemoization: 2.8, featRecursionDetected: 0.4}),
				"O(n log n)": vec(map[int]float64{featSortCall: 4.6}),
				"O(n²)":      vec(map[int]float64{featLoopDepthMax: 2.1}),
				"O(n³)":      vec(map[int]float64{featLoopDepthMax: 3.3}),
				"O(2ⁿ)":      vec(map[int]float64{featRecursionBranchFactor: 1.5, featRecursionDetected: 1.2, featMemoization: -4.5}),
			},
			TimeBias: map[string]float64{
				"O(1)":       0.4,
				"O(log n)":   -1.8,
				"O(n)":       -0.4,
				"O(n log n)": -1.9,
				"O(n²)":      -3.6,
				"O(n³)":      -7.0,
				"O(2ⁿ)":      -2.1,
			},
			SpaceWeights: map[string][]float64{
				"O(1)": vec(nil),
				"O(n)": vec(map[int]float64{featRecursionDetected: 1.7, featMemoization: 1.6, featHashStructure: 1.1, featDataStructureCount: 0.9}),
			},
			SpaceBias: map[string]float64{
				"O(1)": 0.9,
				"O(n)": -0.5,
			},
		},
		{
			ID:            "centroid-default-a",
			Family:        FamilyCentroid,
			FormatVersion: FormatVersion,
			TimeCentroids: map[string][]float64{
				"O(1)":       vec(map[int]float64{featFunctionCount: 1}),
				"O(log n)":   vec(map[int]float64{featLoopDepthMax: 1, featLoopCount: 1, featBinarySearch: 1, featConditionalCount: 2, featFunctionCount: 1}),
				"O(n)":       vec(map[int]float64{featLoopDepthMax: 1, featLoopCount: 1, featFunctionCount: 1}),
				"O(n log n)": vec(map[int]float64{featSortCall: 1, featInPlaceSort: 0.5, featFunctionCount: 1}),
				"O(n²)":      vec(map[int]float64{featLoopDepthMax: 2, featLoopCount: 2, featFunctionCount: 1}),
				"O(n³)":      vec(map[int]float64{featLoopDepthMax: 3, featLoopCount: 3, featFunctionCount: 1}),
				"O(2ⁿ)":      vec(map[int]float64{featRecursionDetected: 1, featRecursionBranchFactor: 2, featConditionalCount: 1, featFunctionCount: 1}),
			},
			SpaceCentroids: map[string][]float64{
				"O(1)": vec(map[int]float64{featFunctionCount: 1}),
				"O(n)": vec(map[int]float64{featRecursionDetected: 0.7, featMemoization: 0.7, featHashStructure: 0.7, featDataStructureCount: 1, featFunctionCount: 1}),
			},
		},
	}
}

// defaultSet compiles the built-in artifacts. Panics only on a
// programming error in the tables above, which tests catch.
func defaultSet() *artifactSet {
	set, err := compileArtifacts(DefaultArtifacts())
	if err != nil {
		panic("ensemble: default artifacts invalid: " + err.Error())
	}
	return set
}
