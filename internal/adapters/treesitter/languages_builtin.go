//go:build !lean

package treesitter

// This file registers the compiled-in grammars. It is excluded when building
// with -tags lean, which produces a binary that loads every grammar
// dynamically from .so/.dylib files.

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	ts_cuda "github.com/tree-sitter-grammars/tree-sitter-cuda/bindings/go"
	ts_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	ts_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
)

// langPtr wraps a Language() call that returns unsafe.Pointer.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// registerBuiltinLanguages adds all compiled-in grammars to the parser.
func (p *Parser) registerBuiltinLanguages() {
	p.addLang("c", langPtr(ts_c.Language()))
	p.addLang("cpp", langPtr(ts_cpp.Language()))
	p.addLang("cuda", langPtr(ts_cuda.Language()))
}
