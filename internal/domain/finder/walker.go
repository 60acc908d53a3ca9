package finder

import (
	"github.com/rs/zerolog/log"

	"github.com/corey/symfind/internal/ports"
)

// Match is one reported declaration. It is handed to the visitor and not
// retained by the walker.
type Match struct {
	Line     int
	Column   int
	Spelling string
	Kind     ports.CursorKind
}

// WalkResult summarizes a walk.
type WalkResult struct {
	Visited int
	Matched int
	// StoppedAt is set when the walk ended early on a cursor from a system
	// header.
	StoppedAt *ports.Location
}

// Walk visits every descendant of root depth-first, parent before children,
// calling onMatch for each cursor tc matches. The root itself is not visited.
//
// Reaching a cursor located in a system header ends the whole walk, not just
// the current branch: later siblings and their subtrees are never visited,
// even when they are user code. An error from onMatch also ends the walk and
// is returned.
func Walk(root ports.Cursor, tc *TraversalContext, onMatch func(Match) error) (WalkResult, error) {
	w := &walker{tc: tc, onMatch: onMatch}
	for _, child := range root.Children() {
		if !w.visit(child) {
			break
		}
	}
	return w.result, w.err
}

type walker struct {
	tc      *TraversalContext
	onMatch func(Match) error
	result  WalkResult
	err     error
}

// visit returns false when the walk must stop.
func (w *walker) visit(c ports.Cursor) bool {
	loc := c.Location()
	if loc.InSystemHeader {
		w.result.StoppedAt = &loc
		log.Debug().Str("file", loc.File).Int("line", loc.Line).Msg("walk: reached system header, stopping")
		return false
	}
	w.result.Visited++

	if w.tc.Matches(c) {
		w.result.Matched++
		m := Match{Line: loc.Line, Column: loc.Column, Spelling: c.Spelling(), Kind: c.Kind()}
		if err := w.onMatch(m); err != nil {
			w.err = err
			return false
		}
	}

	for _, child := range c.Children() {
		if !w.visit(child) {
			return false
		}
	}
	return true
}
