package ports

// Parser is the parsing context that produces translation units. The concrete
// implementation (tree-sitter) lives in internal/adapters/treesitter.
//
// A Parser outlives every TranslationUnit it returns: units are closed first,
// then the parser.
type Parser interface {
	// ParseTranslationUnit reads and parses the file at path. It returns an
	// error when no translation unit can be produced (unreadable file, no
	// grammar for the language, parser failure).
	ParseTranslationUnit(path string) (TranslationUnit, error)

	// Close releases the parsing context and any loaded grammars.
	Close()
}
