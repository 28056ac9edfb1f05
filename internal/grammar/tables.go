package grammar

import "regexp"

func mustCompileRegex(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

func kindSet(kinds ...string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// Binary search needs two of these to fire: bounded loop on shrinking
// range, midpoint halving, or a bound moving past the midpoint. The
// shapes are close enough across C-family and Python syntax that one
// table serves every grammar.
var binarySearchPatterns = []*regexp.Regexp{
	mustCompileRegex(`while\s*\(?\s*\w+\s*<=?\s*\w+\s*\)?`),
	mustCompileRegex(`\b(mid|middle|m)\s*=\s*\(?\s*\w+\s*\+\s*\w+\s*\)?\s*(/\s*2|//\s*2|>>\s*1)`),
	mustCompileRegex(`\b(left|low|lo|l)\s*=\s*(mid|middle|m)\s*\+\s*1`),
	mustCompileRegex(`\b(right|high|hi|r)\s*=\s*(mid|middle|m)\s*-\s*1`),
}

// Lookup-before-compute-then-store shapes. A decorator or an explicit
// memo/cache/dp table both count.
var memoizationPatterns = []*regexp.Regexp{
	mustCompileRegex(`@(functools\.)?(lru_cache|cache|memoize)`),
	mustCompileRegex(`\b(memo|cache|dp|table|seen)\s*[\[\.]`),
	mustCompileRegex(`\bin\s+(memo|cache|dp|seen)\b`),
	mustCompileRegex(`(memo|cache)\.(has|get|containsKey|count|find|contains)\s*\(`),
}

func init() {
	registerPython()
	registerCpp()
	registerJava()
	registerJavaScript()
	registerTypeScript()
	registerGo()
	registerRust()
	registerCSharp()
	registerPHP()
	registerZig()
	registerGeneric()
}

func registerPython() {
	register(&Language{
		Name:                 "python",
		LoopNodeKinds:        kindSet("for_statement", "while_statement"),
		FunctionNodeKinds:    kindSet("function_definition"),
		CallNodeKinds:        kindSet("call"),
		ConditionalNodeKinds: kindSet("if_statement", "conditional_expression"),
		LoopKeywords:         []string{"for ", "while "},
		FunctionKeywords:     []string{"def ", "lambda "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`\.sort\s*\(`),
			mustCompileRegex(`\bsorted\s*\(`),
			mustCompileRegex(`heapq\.(heapify|heappush|heappop)`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`\.sort\s*\(`),
			mustCompileRegex(`heapq\.heapify\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "dict", Pattern: mustCompileRegex(`\bdict\s*\(|\{\s*\}|\{\s*["'\w]+\s*:`), Hashed: true},
			{Name: "set", Pattern: mustCompileRegex(`\bset\s*\(|\bfrozenset\s*\(`), Hashed: true},
			{Name: "list", Pattern: mustCompileRegex(`\blist\s*\(|\.append\s*\(|\[\s*\]`)},
			{Name: "deque", Pattern: mustCompileRegex(`\bdeque\s*\(`)},
			{Name: "heap", Pattern: mustCompileRegex(`heapq\.|PriorityQueue`)},
		},
	})
}

func registerCpp() {
	register(&Language{
		Name:                 "cpp",
		LoopNodeKinds:        kindSet("for_statement", "while_statement", "do_statement", "for_range_loop"),
		FunctionNodeKinds:    kindSet("function_definition", "lambda_expression"),
		CallNodeKinds:        kindSet("call_expression"),
		ConditionalNodeKinds: kindSet("if_statement", "conditional_expression"),
		LoopKeywords:         []string{"for ", "for(", "while ", "while(", "do "},
		FunctionKeywords:     []string{"void ", "int ", "auto "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`(std::)?sort\s*\(\s*\w+\.begin\s*\(`),
			mustCompileRegex(`(std::)?stable_sort\s*\(`),
			mustCompileRegex(`\bqsort\s*\(`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`(std::)?sort\s*\(`),
			mustCompileRegex(`\bqsort\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "map", Pattern: mustCompileRegex(`\b(std::)?(unordered_)?map\s*<`), Hashed: true},
			{Name: "set", Pattern: mustCompileRegex(`\b(std::)?(unordered_)?set\s*<`), Hashed: true},
			{Name: "vector", Pattern: mustCompileRegex(`\b(std::)?vector\s*<`)},
			{Name: "stack", Pattern: mustCompileRegex(`\b(std::)?stack\s*<`)},
			{Name: "queue", Pattern: mustCompileRegex(`\b(std::)?(priority_)?queue\s*<|\bdeque\s*<`)},
		},
	})
}

func registerJava() {
	register(&Language{
		Name:                 "java",
		LoopNodeKinds:        kindSet("for_statement", "enhanced_for_statement", "while_statement", "do_statement"),
		FunctionNodeKinds:    kindSet("method_declaration", "constructor_declaration", "lambda_expression"),
		CallNodeKinds:        kindSet("method_invocation"),
		ConditionalNodeKinds: kindSet("if_statement", "ternary_expression"),
		LoopKeywords:         []string{"for ", "for(", "while ", "while(", "do "},
		FunctionKeywords:     []string{"void ", "public ", "private "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`Arrays\.sort\s*\(`),
			mustCompileRegex(`Collections\.sort\s*\(`),
			mustCompileRegex(`\.sorted\s*\(`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`Arrays\.sort\s*\(`),
			mustCompileRegex(`Collections\.sort\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "map", Pattern: mustCompileRegex(`\b(Hash|Tree|Linked)?Map\s*<`), Hashed: true},
			{Name: "set", Pattern: mustCompileRegex(`\b(Hash|Tree|Linked)?Set\s*<`), Hashed: true},
			{Name: "list", Pattern: mustCompileRegex(`\b(Array|Linked)?List\s*<`)},
			{Name: "queue", Pattern: mustCompileRegex(`\b(Priority)?Queue\s*<|\bArrayDeque\s*<`)},
			{Name: "stack", Pattern: mustCompileRegex(`\bStack\s*<`)},
		},
	})
}

func javascriptTables() *Language {
	return &Language{
		Name: "javascript",
		LoopNodeKinds: kindSet(
			"for_statement", "for_in_statement", "for_of_statement",
			"while_statement", "do_statement",
		),
		FunctionNodeKinds: kindSet(
			"function_declaration", "function_expression", "arrow_function",
			"method_definition", "generator_function_declaration",
		),
		CallNodeKinds:        kindSet("call_expression"),
		ConditionalNodeKinds: kindSet("if_statement", "ternary_expression"),
		LoopKeywords:         []string{"for ", "for(", "while ", "while(", "do "},
		FunctionKeywords:     []string{"function ", "=> "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`\.sort\s*\(`),
			mustCompileRegex(`\.toSorted\s*\(`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`\.sort\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "map", Pattern: mustCompileRegex(`new\s+(Weak)?Map\s*\(|\{\s*\}`), Hashed: true},
			{Name: "set", Pattern: mustCompileRegex(`new\s+(Weak)?Set\s*\(`), Hashed: true},
			{Name: "array", Pattern: mustCompileRegex(`\.push\s*\(|\[\s*\]|new\s+Array`)},
		},
	}
}

func registerJavaScript() {
	register(javascriptTables())
}

func registerTypeScript() {
	// TypeScript shares the JavaScript signature tables; only the grammar
	// key differs so the tree-sitter registry picks the right parser.
	lang := javascriptTables()
	lang.Name = "typescript"
	register(lang)
}

func registerGo() {
	register(&Language{
		Name:                 "go",
		LoopNodeKinds:        kindSet("for_statement"),
		FunctionNodeKinds:    kindSet("function_declaration", "method_declaration", "func_literal"),
		CallNodeKinds:        kindSet("call_expression"),
		ConditionalNodeKinds: kindSet("if_statement"),
		LoopKeywords:         []string{"for "},
		FunctionKeywords:     []string{"func "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`sort\.(Slice|SliceStable|Ints|Strings|Float64s|Sort)\s*\(`),
			mustCompileRegex(`slices\.(Sort|SortFunc|SortStableFunc)\s*\(`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`sort\.(Slice|SliceStable|Ints|Strings|Float64s|Sort)\s*\(`),
			mustCompileRegex(`slices\.(Sort|SortFunc|SortStableFunc)\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "map", Pattern: mustCompileRegex(`\bmap\s*\[`), Hashed: true},
			{Name: "slice", Pattern: mustCompileRegex(`\bappend\s*\(|\[\]\w`)},
			{Name: "heap", Pattern: mustCompileRegex(`container/heap|heap\.(Push|Pop|Init)`)},
		},
	})
}

func registerRust() {
	register(&Language{
		Name:                 "rust",
		LoopNodeKinds:        kindSet("for_expression", "while_expression", "loop_expression"),
		FunctionNodeKinds:    kindSet("function_item", "closure_expression"),
		CallNodeKinds:        kindSet("call_expression"),
		ConditionalNodeKinds: kindSet("if_expression"),
		LoopKeywords:         []string{"for ", "while ", "loop "},
		FunctionKeywords:     []string{"fn "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`\.sort(_by|_by_key|_unstable|_unstable_by)?\s*\(`),
			mustCompileRegex(`\.binary_search\s*\(`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`\.sort(_by|_by_key|_unstable|_unstable_by)?\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "map", Pattern: mustCompileRegex(`\b(Hash|BTree)Map\s*::\s*new|\b(Hash|BTree)Map\s*<`), Hashed: true},
			{Name: "set", Pattern: mustCompileRegex(`\b(Hash|BTree)Set\s*::\s*new|\b(Hash|BTree)Set\s*<`), Hashed: true},
			{Name: "vec", Pattern: mustCompileRegex(`\bVec\s*::\s*new|vec!\s*\[|\.push\s*\(`)},
			{Name: "heap", Pattern: mustCompileRegex(`\bBinaryHeap\b`)},
		},
	})
}

func registerCSharp() {
	register(&Language{
		Name:                 "csharp",
		LoopNodeKinds:        kindSet("for_statement", "for_each_statement", "while_statement", "do_statement"),
		FunctionNodeKinds:    kindSet("method_declaration", "local_function_statement", "constructor_declaration"),
		CallNodeKinds:        kindSet("invocation_expression"),
		ConditionalNodeKinds: kindSet("if_statement", "conditional_expression"),
		LoopKeywords:         []string{"for ", "for(", "foreach ", "while ", "while(", "do "},
		FunctionKeywords:     []string{"void ", "public ", "private "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`Array\.Sort\s*\(`),
			mustCompileRegex(`\.Sort\s*\(`),
			mustCompileRegex(`\.OrderBy(Descending)?\s*\(`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`Array\.Sort\s*\(`),
			mustCompileRegex(`\.Sort\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "dictionary", Pattern: mustCompileRegex(`\bDictionary\s*<`), Hashed: true},
			{Name: "set", Pattern: mustCompileRegex(`\b(Hash|Sorted)Set\s*<`), Hashed: true},
			{Name: "list", Pattern: mustCompileRegex(`\bList\s*<`)},
			{Name: "queue", Pattern: mustCompileRegex(`\b(Priority)?Queue\s*<`)},
			{Name: "stack", Pattern: mustCompileRegex(`\bStack\s*<`)},
		},
	})
}

func registerPHP() {
	register(&Language{
		Name:                 "php",
		LoopNodeKinds:        kindSet("for_statement", "foreach_statement", "while_statement", "do_statement"),
		FunctionNodeKinds:    kindSet("function_definition", "method_declaration", "anonymous_function"),
		CallNodeKinds:        kindSet("function_call_expression", "member_call_expression"),
		ConditionalNodeKinds: kindSet("if_statement", "conditional_expression"),
		LoopKeywords:         []string{"for ", "for(", "foreach ", "while ", "while(", "do "},
		FunctionKeywords:     []string{"function "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`\b(sort|rsort|asort|ksort|usort|uasort|uksort)\s*\(`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`\b(sort|rsort|asort|ksort|usort|uasort|uksort)\s*\(`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "array", Pattern: mustCompileRegex(`\barray\s*\(|\[\s*\]`), Hashed: true},
			{Name: "map", Pattern: mustCompileRegex(`\bSplObjectStorage\b|\bArrayObject\b`), Hashed: true},
			{Name: "heap", Pattern: mustCompileRegex(`\bSpl(Min|Max)?Heap\b|\bSplPriorityQueue\b`)},
		},
	})
}

func registerZig() {
	register(&Language{
		Name:                 "zig",
		LoopNodeKinds:        kindSet("for_statement", "while_statement", "for_expression", "while_expression"),
		FunctionNodeKinds:    kindSet("function_declaration"),
		CallNodeKinds:        kindSet("call_expression"),
		ConditionalNodeKinds: kindSet("if_statement", "if_expression"),
		LoopKeywords:         []string{"for ", "for(", "while ", "while("},
		FunctionKeywords:     []string{"fn "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`std\.(sort|mem)\.sort`),
		},
		InPlaceSortPatterns: []*regexp.Regexp{
			mustCompileRegex(`std\.(sort|mem)\.sort`),
		},
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "map", Pattern: mustCompileRegex(`\b(Auto|String)?HashMap\b`), Hashed: true},
			{Name: "list", Pattern: mustCompileRegex(`\bArrayList\b`)},
			{Name: "heap", Pattern: mustCompileRegex(`\bPriorityQueue\b`)},
		},
	})
}

// registerGeneric installs the language-agnostic fallback. It has no node
// kinds: the line scanner serves it, with lower-precision features.
func registerGeneric() {
	register(&Language{
		Name:                 GenericKey,
		LoopKeywords:         []string{"for ", "for(", "foreach ", "while ", "while(", "loop ", "repeat "},
		FunctionKeywords:     []string{"def ", "func ", "fn ", "function ", "void ", "sub "},
		BinarySearchPatterns: binarySearchPatterns,
		SortCallPatterns: []*regexp.Regexp{
			mustCompileRegex(`\b\w*sort\w*\s*\(`),
		},
		InPlaceSortPatterns: nil,
		MemoizationPatterns: memoizationPatterns,
		DataStructures: []DataStructurePattern{
			{Name: "map", Pattern: mustCompileRegex(`\b(map|dict|hash)\w*\b`), Hashed: true},
			{Name: "set", Pattern: mustCompileRegex(`\b(hash)?set\s*[(<]`), Hashed: true},
			{Name: "list", Pattern: mustCompileRegex(`\b(list|vector|array)\w*\b`)},
		},
	})
}
