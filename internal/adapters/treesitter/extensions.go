package treesitter

// This file maps file extensions to language names. It is included in every
// build: lean builds resolve the same names through the dynamic loader.

// registerExtensions maps file extensions to language names.
func (p *Parser) registerExtensions() {
	p.addExt("c", ".c", ".h")
	p.addExt("cpp", ".cpp", ".cc", ".cxx", ".c++", ".C", ".hpp", ".hh", ".hxx", ".h++", ".ipp", ".inl", ".tpp")
	p.addExt("cuda", ".cu", ".cuh")
	// Dynamic-only: needs a tree_sitter_objc shared library on the grammar path.
	p.addExt("objc", ".m")
}

// Languages returns the names of the compiled-in grammars.
func (p *Parser) Languages() []string {
	names := make([]string, 0, len(p.languages))
	for name := range p.languages {
		names = append(names, name)
	}
	return names
}
