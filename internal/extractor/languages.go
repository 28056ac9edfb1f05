package extractor

import (
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// languageLoaders maps grammar keys to their tree-sitter language
// constructors. Loading is lazy: a grammar crosses CGO only the first
// time a request needs it.
var languageLoaders = map[string]func() *tree_sitter.Language{
	"python": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_python.Language())
	},
	"cpp": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_cpp.Language())
	},
	"java": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_java.Language())
	},
	"javascript": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	},
	"typescript": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	},
	"go": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_go.Language())
	},
	"rust": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_rust.Language())
	},
	"csharp": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_csharp.Language())
	},
	"php": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP())
	},
	"zig": func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_zig.Language())
	},
}

// language returns the cached tree-sitter language for a grammar key,
// loading it on first use. Returns nil for keys without a parser (the
// generic grammar), which routes extraction to the line scanner.
func (e *Extractor) language(key string) *tree_sitter.Language {
	e.langMutex.RLock()
	lang, ok := e.languages[key]
	e.langMutex.RUnlock()
	if ok {
		return lang
	}

	loader, ok := languageLoaders[key]
	if !ok {
		return nil
	}

	e.langMutex.Lock()
	defer e.langMutex.Unlock()
	if lang, ok := e.languages[key]; ok {
		return lang
	}
	lang = loader()
	e.languages[key] = lang
	return lang
}
