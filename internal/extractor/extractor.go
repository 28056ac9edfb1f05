// Package extractor turns raw source text into a FeatureRecord. For
// registered languages it walks a tree-sitter parse tree; for everything
// else it degrades to a line scanner over bracket/indentation depth.
// Extraction is a pure function of the input plus the static grammar
// tables; nothing is cached across requests.
package extractor

import (
	"sort"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/bigo/internal/debug"
	"github.com/standardbeagle/bigo/internal/grammar"
	"github.com/standardbeagle/bigo/internal/types"
)

// Extractor owns the lazily loaded tree-sitter languages. Safe for
// concurrent use; each request gets its own parser instance because
// tree-sitter parsers are not goroutine-safe.
type Extractor struct {
	langMutex sync.RWMutex
	languages map[string]*tree_sitter.Language
}

// New creates an extractor with an empty language cache.
func New() *Extractor {
	return &Extractor{
		languages: make(map[string]*tree_sitter.Language),
	}
}

// Extract builds the FeatureRecord for one request. Unregistered
// languages are served by the generic grammar with degraded precision;
// that is a logged quality event, never an error.
func (e *Extractor) Extract(code, languageName string) types.FeatureRecord {
	lang, registered := grammar.Lookup(languageName)
	if !registered {
		debug.LogAnalysis("language %q not registered, generic grammar applied", languageName)
	}

	record := types.FeatureRecord{
		Language:  lang.Name,
		Degraded:  !registered,
		LineCount: strings.Count(code, "\n") + 1,
	}

	// Signature tables run on raw code for every grammar, registered or
	// not; they do not depend on a parse tree.
	record.HasBinarySearchSignature = lang.MatchBinarySearch(code)
	record.HasSortCall = lang.MatchSortCall(code)
	record.HasInPlaceSort = lang.MatchInPlaceSort(code)
	record.HasMemoizationSignature = lang.MatchMemoization(code)
	record.DataStructures, record.HasHashStructure = lang.MatchDataStructures(code)

	if registered && e.walkTree(code, lang, &record) {
		return record
	}

	scanLines(code, lang, &record)
	return record
}

// walkTree parses code with the grammar's tree-sitter language and fills
// the structural features. Returns false when no parse tree could be
// produced, in which case the caller falls back to the line scanner.
func (e *Extractor) walkTree(code string, lang *grammar.Language, record *types.FeatureRecord) (ok bool) {
	tsLang := e.language(lang.Name)
	if tsLang == nil {
		return false
	}

	// Tree-sitter crashes must degrade the request, not kill the process.
	defer func() {
		if r := recover(); r != nil {
			debug.LogAnalysis("tree-sitter panic for %s: %v", lang.Name, r)
			ok = false
		}
	}()

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(tsLang); err != nil {
		return false
	}

	// The tree-sitter C library mutates input buffers via CGO; give it
	// its own copy.
	content := []byte(code)
	tree := parser.Parse(content, nil)
	if tree == nil {
		return false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return false
	}

	w := &treeWalker{lang: lang, content: content, record: record}
	w.visit(root, 0)
	sort.Strings(record.FunctionNames)
	return true
}

// funcFrame tracks one enclosing function during the walk.
type funcFrame struct {
	name      string
	selfCalls int
}

type treeWalker struct {
	lang    *grammar.Language
	content []byte
	record  *types.FeatureRecord
	stack   []funcFrame
}

func (w *treeWalker) visit(node *tree_sitter.Node, loopDepth int) {
	kind := node.Kind()

	if w.lang.LoopNodeKinds[kind] {
		loopDepth++
		w.record.LoopCount++
		if loopDepth > w.record.LoopDepthMax {
			w.record.LoopDepthMax = loopDepth
		}
	}

	if w.lang.ConditionalNodeKinds[kind] {
		w.record.ConditionalCount++
	}

	isFunc := w.lang.FunctionNodeKinds[kind]
	if isFunc {
		w.record.FunctionCount++
		name := w.functionName(node)
		if name != "" {
			w.record.FunctionNames = append(w.record.FunctionNames, name)
		}
		w.stack = append(w.stack, funcFrame{name: name})
	}

	if w.lang.CallNodeKinds[kind] {
		if callee := w.calleeName(node); callee != "" {
			for i := range w.stack {
				if w.stack[i].name == callee {
					w.stack[i].selfCalls++
					break
				}
			}
		}
	}

	childCount := node.ChildCount()
	for i := uint(0); i < childCount; i++ {
		if child := node.Child(i); child != nil {
			w.visit(child, loopDepth)
		}
	}

	if isFunc {
		frame := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if frame.selfCalls > 0 {
			w.record.RecursionDetected = true
			if frame.selfCalls > w.record.RecursionBranchFactor {
				w.record.RecursionBranchFactor = frame.selfCalls
			}
		}
	}
}

// functionName resolves the declared name of a function node. Most
// grammars expose a "name" field; C-family declarators nest, so we chase
// the declarator chain down to its identifier.
func (w *treeWalker) functionName(node *tree_sitter.Node) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return w.text(nameNode)
	}

	decl := node.ChildByFieldName("declarator")
	for decl != nil {
		inner := decl.ChildByFieldName("declarator")
		if inner == nil {
			break
		}
		decl = inner
	}
	if decl != nil && strings.Contains(decl.Kind(), "identifier") {
		return w.text(decl)
	}
	return ""
}

// calleeName resolves the called name of a call node, reduced to its
// last path segment so method calls compare against bare function names.
func (w *treeWalker) calleeName(node *tree_sitter.Node) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		fn = node.ChildByFieldName("name")
	}
	if fn == nil {
		return ""
	}
	name := w.text(fn)
	for _, sep := range []string{"->", "::", "."} {
		if i := strings.LastIndex(name, sep); i >= 0 {
			name = name[i+len(sep):]
		}
	}
	return strings.TrimSpace(name)
}

func (w *treeWalker) text(node *tree_sitter.Node) string {
	return string(w.content[node.StartByte():node.EndByte()])
}
