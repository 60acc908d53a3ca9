// Package finder implements the declaration search: it walks a parsed
// translation unit, filters cursors by kind and name, and prints each match
// as its source line.
package finder

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/corey/symfind/internal/ports"
)

// ErrNoTranslationUnit is returned by Find when the parser could not produce
// a translation unit for the file.
var ErrNoTranslationUnit = errors.New("unable to parse translation unit")

// Options configures a Find run.
type Options struct {
	Query
	Color bool
}

// Result summarizes a Find run.
type Result struct {
	Matches int
	// Skipped counts matches whose position fell outside the loaded lines.
	Skipped int
	// Stopped is true when the walk ended at a system header.
	Stopped bool
}

// Find parses path with p, searches it for opts.Query and writes every match
// to w in traversal order. Finding nothing is not an error.
func Find(p ports.Parser, path string, opts Options, w io.Writer) (Result, error) {
	start := time.Now()
	tu, err := p.ParseTranslationUnit(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNoTranslationUnit, err)
	}
	defer tu.Close()
	log.Debug().Str("file", path).Dur("elapsed", time.Since(start)).Msg("find: parsed translation unit")

	tc := NewTraversalContext(opts.Query, LoadLines(path))
	log.Debug().
		Str("name", tc.TargetName()).
		Int("kinds", len(tc.TargetKinds())).
		Bool("case_insensitive", tc.CaseInsensitive()).
		Int("lines", len(tc.Lines())).
		Msg("find: traversal context ready")
	r := NewRenderer(w, tc.Lines(), opts.Color)

	var res Result
	walk, err := Walk(tu.Cursor(), tc, func(m Match) error {
		err := r.Render(m)
		switch {
		case err == nil:
			res.Matches++
			return nil
		case errors.Is(err, ErrLineOutOfRange), errors.Is(err, ErrColumnOutOfRange):
			res.Skipped++
			log.Debug().Err(err).Str("spelling", m.Spelling).Msg("find: match not rendered")
			return nil
		default:
			return err
		}
	})
	res.Stopped = walk.StoppedAt != nil
	log.Debug().
		Int("visited", walk.Visited).
		Int("matches", res.Matches).
		Int("skipped", res.Skipped).
		Bool("stopped", res.Stopped).
		Msg("find: walk complete")
	if err != nil {
		return res, fmt.Errorf("write match: %w", err)
	}
	return res, nil
}
