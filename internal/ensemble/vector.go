package ensemble

import "github.com/standardbeagle/bigo/internal/types"

// Feature vector layout. Artifact weight arrays are indexed by these
// positions, so the order is part of the artifact format and must not
// be reordered without bumping FormatVersion.
const (
	featLoopDepthMax = iota
	featLoopCount
	featRecursionDetected
	featRecursionBranchFactor
	featBinarySearch
	featSortCall
	featInPlaceSort
	featMemoization
	featHashStructure
	featDataStructureCount
	featConditionalCount
	featFunctionCount

	// VectorSize is the fixed projection length.
	VectorSize
)

// Vector is the numeric projection of a FeatureRecord. Booleans are
// cast to 0/1, counts carried as-is.
type Vector [VectorSize]float64

// Project maps a record to its feature vector.
func Project(record types.FeatureRecord) Vector {
	var v Vector
	v[featLoopDepthMax] = float64(record.LoopDepthMax)
	v[featLoopCount] = float64(record.LoopCount)
	v[featRecursionDetected] = boolFeature(record.RecursionDetected)
	v[featRecursionBranchFactor] = float64(record.RecursionBranchFactor)
	v[featBinarySearch] = boolFeature(record.HasBinarySearchSignature)
	v[featSortCall] = boolFeature(record.HasSortCall)
	v[featInPlaceSort] = boolFeature(record.HasInPlaceSort)
	v[featMemoization] = boolFeature(record.HasMemoizationSignature)
	v[featHashStructure] = boolFeature(record.HasHashStructure)
	v[featDataStructureCount] = float64(len(record.DataStructures))
	v[featConditionalCount] = float64(record.ConditionalCount)
	v[featFunctionCount] = float64(record.FunctionCount)
	return v
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
