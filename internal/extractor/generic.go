package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/standardbeagle/bigo/internal/grammar"
	"github.com/standardbeagle/bigo/internal/types"
)

// genericFuncDef matches the common function declaration shapes across
// keyword-style languages. Used only by the fallback scanner; registered
// languages get real parse trees.
var genericFuncDef = regexp.MustCompile(`\b(?:def|func|fn|function|sub|procedure)\s+([A-Za-z_]\w*)`)

var genericConditional = regexp.MustCompile(`(?:^|\W)(?:if|elif|elsif|else\s+if|switch|case|match)\b`)

// loopFrame records where a loop opened so the scanner can tell when
// indentation or brace depth closes it.
type loopFrame struct {
	indent     int
	braceDepth int
}

// scanLines approximates the structural features without a parse tree.
// Loop nesting is tracked with a stack keyed on indentation and brace
// depth, which is noisy but monotone: it never reports deeper nesting
// than the text shows.
func scanLines(code string, lang *grammar.Language, record *types.FeatureRecord) {
	var (
		stack      []loopFrame
		braceDepth int
	)

	for _, rawLine := range strings.Split(code, "\n") {
		line := strings.TrimRight(rawLine, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || isCommentLine(trimmed) {
			continue
		}
		indent := indentWidth(line)

		// Close loops that ended by dedent or by brace balance.
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if braceDepth < top.braceDepth || (braceDepth == top.braceDepth && indent <= top.indent && !strings.HasPrefix(trimmed, "}")) {
				stack = stack[:len(stack)-1]
				continue
			}
			break
		}

		if startsLoop(trimmed, lang.LoopKeywords) {
			stack = append(stack, loopFrame{indent: indent, braceDepth: braceDepth})
			record.LoopCount++
			if len(stack) > record.LoopDepthMax {
				record.LoopDepthMax = len(stack)
			}
		}

		if genericConditional.MatchString(trimmed) {
			record.ConditionalCount++
		}

		braceDepth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
		if braceDepth < 0 {
			braceDepth = 0
		}
		for len(stack) > 0 && braceDepth < stack[len(stack)-1].braceDepth {
			stack = stack[:len(stack)-1]
		}
	}

	scanFunctions(code, record)
}

// scanFunctions finds declared names and counts how often each one is
// invoked again in the same text. Any reinvocation is treated as
// recursion since the scanner has no body boundaries to check against.
func scanFunctions(code string, record *types.FeatureRecord) {
	matches := genericFuncDef.FindAllStringSubmatch(code, -1)
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		record.FunctionCount++
		record.FunctionNames = append(record.FunctionNames, name)

		callPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`)
		calls := len(callPattern.FindAllStringIndex(code, -1)) - 1
		if calls > 0 {
			record.RecursionDetected = true
			if calls > record.RecursionBranchFactor {
				record.RecursionBranchFactor = calls
			}
		}
	}
	sort.Strings(record.FunctionNames)
}

// startsLoop matches keyword prefixes; grammar tables include the
// trailing separator ("for ", "for(") so "format(" does not count.
func startsLoop(trimmed string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.HasPrefix(trimmed, kw) || strings.TrimRight(trimmed, " {:") == strings.TrimRight(kw, " (") {
			return true
		}
	}
	return false
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "--") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}
