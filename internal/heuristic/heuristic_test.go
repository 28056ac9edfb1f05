package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/bigo/internal/types"
)

// TestClassify_BinarySearch tests rule priority: the binary search
// signature wins even when a loop is present.
func TestClassify_BinarySearch(t *testing.T) {
	c := New()
	record := types.FeatureRecord{
		Language:                 "cpp",
		LoopDepthMax:             1,
		LoopCount:                1,
		HasBinarySearchSignature: true,
	}

	v := c.Classify(record)

	assert.Equal(t, types.OLogN, v.Time)
	assert.Equal(t, types.O1, v.Space)
	assert.InDelta(t, 0.9, v.Confidence, 1e-9)
	assert.Equal(t, types.SourceHeuristic, v.Source)
	assert.False(t, v.FallbackApplied)
}

// TestClassify_BranchingRecursion tests the unmemoized exponential rule.
func TestClassify_BranchingRecursion(t *testing.T) {
	c := New()
	record := types.FeatureRecord{
		Language:              "python",
		RecursionDetected:     true,
		RecursionBranchFactor: 2,
	}

	v := c.Classify(record)

	assert.Equal(t, types.OExp, v.Time)
	assert.Equal(t, types.ON, v.Space)
	assert.InDelta(t, 0.7, v.Confidence, 1e-9)
}

// TestClassify_MemoizedRecursion tests that memoization specializes the
// recursion rule.
func TestClassify_MemoizedRecursion(t *testing.T) {
	c := New()
	record := types.FeatureRecord{
		Language:                "python",
		RecursionDetected:       true,
		RecursionBranchFactor:   2,
		HasMemoizationSignature: true,
	}

	v := c.Classify(record)

	assert.Equal(t, types.ON, v.Time)
	assert.Equal(t, types.ON, v.Space)
	assert.InDelta(t, 0.85, v.Confidence, 1e-9)
}

// TestClassify_NestedLoops tests polynomial scaling with depth.
func TestClassify_NestedLoops(t *testing.T) {
	tests := []struct {
		depth      int
		wantTime   types.ComplexityClass
		wantConf   float64
	}{
		{2, types.ON2, 0.95},
		{3, types.ON3, 0.85},
		{4, types.OExp, 0.5},
		{6, types.OExp, 0.5},
	}

	c := New()
	for _, tt := range tests {
		record := types.FeatureRecord{LoopDepthMax: tt.depth, LoopCount: tt.depth}
		v := c.Classify(record)
		assert.Equal(t, tt.wantTime, v.Time, "depth %d", tt.depth)
		assert.InDelta(t, tt.wantConf, v.Confidence, 1e-9, "depth %d", tt.depth)
		assert.Equal(t, types.O1, v.Space, "depth %d", tt.depth)
	}
}

// TestClassify_NestedLoopsWithStructures tests the space override.
func TestClassify_NestedLoopsWithStructures(t *testing.T) {
	c := New()
	record := types.FeatureRecord{
		LoopDepthMax:     2,
		LoopCount:        2,
		DataStructures:   []string{"list"},
		HasHashStructure: false,
	}

	v := c.Classify(record)

	assert.Equal(t, types.ON2, v.Time)
	assert.Equal(t, types.ON, v.Space)
}

// TestClassify_SortCall tests the sort rule and in-place space variants.
func TestClassify_SortCall(t *testing.T) {
	c := New()

	v := c.Classify(types.FeatureRecord{LoopCount: 0, HasSortCall: true})
	assert.Equal(t, types.ONLogN, v.Time)
	assert.Equal(t, types.ON, v.Space)
	assert.InDelta(t, 0.8, v.Confidence, 1e-9)

	v = c.Classify(types.FeatureRecord{HasSortCall: true, HasInPlaceSort: true})
	assert.Equal(t, types.ONLogN, v.Time)
	assert.Equal(t, types.O1, v.Space)
}

// TestClassify_NestedLoopsPlusSort tests that the nested-loop rule only
// fires when no sort call is present.
func TestClassify_NestedLoopsPlusSort(t *testing.T) {
	c := New()
	record := types.FeatureRecord{LoopDepthMax: 2, LoopCount: 2, HasSortCall: true}

	v := c.Classify(record)

	assert.Equal(t, types.ONLogN, v.Time)
}

// TestClassify_SingleLoop tests the linear rule.
func TestClassify_SingleLoop(t *testing.T) {
	c := New()
	v := c.Classify(types.FeatureRecord{LoopCount: 1, LoopDepthMax: 1})

	assert.Equal(t, types.ON, v.Time)
	assert.Equal(t, types.O1, v.Space)
	assert.InDelta(t, 0.9, v.Confidence, 1e-9)
}

// TestClassify_NoSignals tests the constant rule.
func TestClassify_NoSignals(t *testing.T) {
	c := New()
	v := c.Classify(types.FeatureRecord{})

	assert.Equal(t, types.O1, v.Time)
	assert.Equal(t, types.O1, v.Space)
	assert.InDelta(t, 0.6, v.Confidence, 1e-9)
	assert.False(t, v.FallbackApplied)
}

// TestClassify_Fallback tests that linear recursion without memoization
// lands on the visible conservative default.
func TestClassify_Fallback(t *testing.T) {
	c := New()
	record := types.FeatureRecord{
		RecursionDetected:     true,
		RecursionBranchFactor: 1,
	}

	v := c.Classify(record)

	assert.Equal(t, types.ON, v.Time)
	assert.Equal(t, types.ON, v.Space)
	assert.InDelta(t, 0.4, v.Confidence, 1e-9)
	assert.True(t, v.FallbackApplied)
	assert.Contains(t, v.Breakdown, FallbackNote)
}

// TestClassify_AlwaysTerminatesWithVerdict tests totality across a sweep
// of record shapes.
func TestClassify_AlwaysTerminatesWithVerdict(t *testing.T) {
	c := New()
	for depth := 0; depth <= 5; depth++ {
		for count := 0; count <= 5; count++ {
			for _, rec := range []bool{false, true} {
				v := c.Classify(types.FeatureRecord{
					LoopDepthMax:      depth,
					LoopCount:         count,
					RecursionDetected: rec,
				})
				assert.True(t, v.Time.Valid())
				assert.True(t, v.Space.Valid())
				assert.GreaterOrEqual(t, v.Confidence, 0.4)
				assert.LessOrEqual(t, v.Confidence, 0.95)
				assert.NotEmpty(t, v.Breakdown)
			}
		}
	}
}
