package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/corey/symfind/internal/domain/finder"
)

// Matches go to stdout; everything else goes to stderr or the log.
const parseFailureMessage = "Unable to parse translation unit"

// reportFindError prints the outcome of a failed run and returns the error
// carrying its exit code.
func reportFindError(stderr io.Writer, err error) error {
	if errors.Is(err, finder.ErrNoTranslationUnit) {
		log.Debug().Err(err).Msg("symfind: parse failed")
		fmt.Fprintln(stderr, parseFailureMessage)
		return exitError{code: exitParseError}
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee
	}
	return exitError{code: exitParseError, err: err}
}
