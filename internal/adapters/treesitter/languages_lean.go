//go:build lean

package treesitter

// This file is included only when building with -tags lean. No grammar is
// compiled in; c, cpp and cuda must be provided as shared libraries on the
// grammar path (--grammar-dir).

// registerBuiltinLanguages is a no-op in lean builds.
func (p *Parser) registerBuiltinLanguages() {}
