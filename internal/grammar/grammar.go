// Package grammar holds the declarative per-language token and pattern
// tables shared by the heuristic feature extraction and the ML feature
// vector. Tables are static; registration happens once at init and the
// registry is read-only afterwards.
package grammar

import (
	"regexp"
	"sort"
	"strings"
)

// GenericKey is the registry key of the language-agnostic fallback
// grammar. Unregistered languages are downgraded to it, never rejected.
const GenericKey = "generic"

// DataStructurePattern maps a structure name to the regex that detects it.
type DataStructurePattern struct {
	Name    string
	Pattern *regexp.Regexp
	Hashed  bool // hash-backed structures give O(1) lookups and O(n) space
}

// Language is one declarative grammar: node-kind sets for the tree-sitter
// walk plus regex signature tables applied to raw code. All fields are
// immutable after registration.
type Language struct {
	Name string

	// Tree-sitter node kinds. Empty for the generic grammar, which is
	// served by the line scanner instead.
	LoopNodeKinds        map[string]bool
	FunctionNodeKinds    map[string]bool
	CallNodeKinds        map[string]bool
	ConditionalNodeKinds map[string]bool

	// Line-scanner keywords, used when no parse tree is available.
	LoopKeywords     []string
	FunctionKeywords []string

	// Signature tables. Binary search needs two independent pattern hits
	// before the signature is trusted; the others fire on one.
	BinarySearchPatterns []*regexp.Regexp
	SortCallPatterns     []*regexp.Regexp
	InPlaceSortPatterns  []*regexp.Regexp
	MemoizationPatterns  []*regexp.Regexp
	DataStructures       []DataStructurePattern
}

// registry is populated by init in tables.go and never mutated afterwards.
var registry = map[string]*Language{}

func register(lang *Language) {
	registry[lang.Name] = lang
}

// Lookup resolves a language name to its grammar. The second return is
// false when the caller must fall back to the generic grammar.
func Lookup(name string) (*Language, bool) {
	key := normalize(name)
	if lang, ok := registry[key]; ok {
		return lang, true
	}
	return registry[GenericKey], false
}

// Generic returns the language-agnostic fallback grammar.
func Generic() *Language {
	return registry[GenericKey]
}

// Registered returns all registered grammar keys in sorted order,
// excluding the generic fallback.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		if name == GenericKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalize folds common aliases onto registry keys.
func normalize(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "py", "python", "python3":
		return "python"
	case "c", "cpp", "c++", "cc", "cxx":
		return "cpp"
	case "js", "javascript", "node":
		return "javascript"
	case "ts", "typescript":
		return "typescript"
	case "java":
		return "java"
	case "go", "golang":
		return "go"
	case "rs", "rust":
		return "rust"
	case "cs", "csharp", "c#":
		return "csharp"
	case "php":
		return "php"
	case "zig":
		return "zig"
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// MatchBinarySearch reports whether code carries the binary-search shape.
// Two independent pattern hits are required: a single midpoint division or
// bound comparison alone is weak evidence.
func (l *Language) MatchBinarySearch(code string) bool {
	hits := 0
	for _, p := range l.BinarySearchPatterns {
		if p.MatchString(code) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}

// MatchSortCall reports a library or in-place sort invocation.
func (l *Language) MatchSortCall(code string) bool {
	for _, p := range l.SortCallPatterns {
		if p.MatchString(code) {
			return true
		}
	}
	return false
}

// MatchInPlaceSort reports sorts known to operate in place.
func (l *Language) MatchInPlaceSort(code string) bool {
	for _, p := range l.InPlaceSortPatterns {
		if p.MatchString(code) {
			return true
		}
	}
	return false
}

// MatchMemoization reports the lookup-before-compute-then-store shape.
func (l *Language) MatchMemoization(code string) bool {
	for _, p := range l.MemoizationPatterns {
		if p.MatchString(code) {
			return true
		}
	}
	return false
}

// MatchDataStructures returns the names of detected auxiliary structures,
// sorted, and whether any of them is hash-backed.
func (l *Language) MatchDataStructures(code string) ([]string, bool) {
	var names []string
	hashed := false
	for _, ds := range l.DataStructures {
		if ds.Pattern.MatchString(code) {
			names = append(names, ds.Name)
			if ds.Hashed {
				hashed = true
			}
		}
	}
	sort.Strings(names)
	return names, hashed
}
