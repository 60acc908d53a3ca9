//go:build !cgo

package cmd

import (
	"errors"

	"github.com/corey/symfind/internal/ports"
)

// newParser fails when CGo is unavailable (pure Go build): every grammar
// runtime needs the tree-sitter C library.
func newParser(_ parserConfig) (ports.Parser, error) {
	return nil, exitError{code: exitParseError, err: errors.New("built without cgo: no parser available")}
}
