package types

import "fmt"

// ComplexityClass is an asymptotic growth bucket. The int ordering is the
// canonical total order: every comparison and "pick the larger" operation
// in the engine uses it. Extend only at the ends.
type ComplexityClass int

const (
	O1 ComplexityClass = iota
	OLogN
	OSqrtN
	ON
	ONLogN
	ON2
	ON3
	OExp
	OFactorial
)

// classLabels holds the canonical wire labels, indexed by ComplexityClass.
var classLabels = [...]string{
	O1:         "O(1)",
	OLogN:      "O(log n)",
	OSqrtN:     "O(√n)",
	ON:         "O(n)",
	ONLogN:     "O(n log n)",
	ON2:        "O(n²)",
	ON3:        "O(n³)",
	OExp:       "O(2ⁿ)",
	OFactorial: "O(n!)",
}

// String returns the canonical label (e.g. "O(n log n)").
func (c ComplexityClass) String() string {
	if c < O1 || c > OFactorial {
		return fmt.Sprintf("ComplexityClass(%d)", int(c))
	}
	return classLabels[c]
}

// Valid reports whether c is one of the defined classes.
func (c ComplexityClass) Valid() bool {
	return c >= O1 && c <= OFactorial
}

// AllClasses returns every defined class in ascending order.
func AllClasses() []ComplexityClass {
	classes := make([]ComplexityClass, 0, len(classLabels))
	for c := O1; c <= OFactorial; c++ {
		classes = append(classes, c)
	}
	return classes
}

// ParseClass converts a canonical label back to its class.
func ParseClass(label string) (ComplexityClass, error) {
	for c, l := range classLabels {
		if l == label {
			return ComplexityClass(c), nil
		}
	}
	return O1, fmt.Errorf("unknown complexity class %q", label)
}

// MaxClass returns the larger of a and b under the canonical order.
func MaxClass(a, b ComplexityClass) ComplexityClass {
	if a > b {
		return a
	}
	return b
}

// MinClass returns the smaller of a and b under the canonical order.
func MinClass(a, b ComplexityClass) ComplexityClass {
	if a < b {
		return a
	}
	return b
}

// PolynomialClass maps a loop nesting depth to its polynomial class.
// Depths beyond cubic are reported as exponential-like; the heuristic
// classifier lowers confidence accordingly.
func PolynomialClass(depth int) ComplexityClass {
	switch {
	case depth <= 0:
		return O1
	case depth == 1:
		return ON
	case depth == 2:
		return ON2
	case depth == 3:
		return ON3
	default:
		return OExp
	}
}
