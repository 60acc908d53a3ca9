//go:build cgo

package cmd

import (
	"github.com/corey/symfind/internal/adapters/treesitter"
	"github.com/corey/symfind/internal/ports"
)

// newParser returns a tree-sitter parser configured from cfg. System include
// and grammar directories given by the user are searched before the defaults.
func newParser(cfg parserConfig) (ports.Parser, error) {
	p := treesitter.NewParser()
	p.SetSystemIncludeDirs(append(cfg.systemDirs, treesitter.DefaultSystemIncludeDirs()...))
	p.SetGrammarPaths(append(cfg.grammarDirs, treesitter.DefaultGrammarPaths()...))
	if err := p.SetLanguage(cfg.lang); err != nil {
		p.Close()
		return nil, usageError("--lang: %v", err)
	}
	return p, nil
}
