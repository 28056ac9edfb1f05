package advice

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"
)

// similarityThreshold is the minimum Jaro-Winkler score for a fuzzy
// name match. High on purpose: a wrong algorithm note is worse than a
// missing one.
const similarityThreshold = 0.85

// algorithmMatch pairs a recognized algorithm with its advice note.
type algorithmMatch struct {
	name string
	note string
}

// algorithmTable maps stemmed function-name tokens to known algorithms
// with documented expected complexities.
type algorithmTable struct {
	entries []algorithmEntry
}

type algorithmEntry struct {
	// canonical token, stemmed at construction
	token string
	match algorithmMatch
}

func newAlgorithmTable() *algorithmTable {
	raw := []struct {
		token string
		name  string
		note  string
	}{
		{"dijkstra", "Dijkstra",
			"looks like Dijkstra's algorithm: expect O((V+E) log V) with a binary heap; a plain array scan degrades it to O(V²)"},
		{"fibonacci", "Fibonacci",
			"looks like a Fibonacci computation: the naive recursive form is O(2ⁿ); memoization or iteration brings it to O(n)"},
		{"fib", "Fibonacci",
			"looks like a Fibonacci computation: the naive recursive form is O(2ⁿ); memoization or iteration brings it to O(n)"},
		{"quicksort", "quicksort",
			"looks like quicksort: O(n log n) on average but O(n²) on adversarial input; a randomized pivot avoids the worst case"},
		{"mergesort", "merge sort",
			"looks like merge sort: O(n log n) guaranteed, at the cost of O(n) auxiliary space"},
		{"binarysearch", "binary search",
			"looks like binary search: O(log n) requires the input to be sorted; verify the precondition holds"},
		{"floydwarshall", "Floyd-Warshall",
			"looks like Floyd-Warshall: O(V³) is inherent to the all-pairs formulation; Dijkstra per source is faster on sparse graphs"},
	}

	t := &algorithmTable{}
	for _, r := range raw {
		t.entries = append(t.entries, algorithmEntry{
			token: porter2.Stem(r.token),
			match: algorithmMatch{name: r.name, note: r.note},
		})
	}
	return t
}

// matches scans function names for known algorithm signatures. Each
// algorithm is reported at most once however many functions reference
// it.
func (t *algorithmTable) matches(functionNames []string) []algorithmMatch {
	var out []algorithmMatch
	seen := make(map[string]bool)

	for _, fn := range functionNames {
		for _, token := range nameTokens(fn) {
			stemmed := porter2.Stem(token)
			for _, entry := range t.entries {
				if seen[entry.match.name] {
					continue
				}
				if stemmed == entry.token || fuzzyEqual(stemmed, entry.token) {
					seen[entry.match.name] = true
					out = append(out, entry.match)
				}
			}
		}
	}
	return out
}

// fuzzyEqual tolerates misspellings like "dijsktra" or "fibonaci".
func fuzzyEqual(a, b string) bool {
	if len(a) < 4 || len(b) < 4 {
		return false
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return false
	}
	return float64(score) >= similarityThreshold
}

// nameTokens splits an identifier on case and separator boundaries and
// also yields the fully joined lowercase form, so "binary_search",
// "binarySearch" and "binarysearch" all normalize the same way.
func nameTokens(name string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	var prev rune
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && prev != 0 && !unicode.IsUpper(prev):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	flush()

	if len(tokens) > 1 {
		tokens = append(tokens, strings.Join(tokens, ""))
	}
	return tokens
}
