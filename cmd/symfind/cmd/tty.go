package cmd

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal returns true if w is a file connected to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor determines whether to highlight positions based on flags and
// TTY status. colorFlag is the --color value: "auto", "always", or "never".
// noColorFlag is the --no-color boolean flag.
func resolveColor(colorFlag string, noColorFlag bool, out io.Writer) (bool, error) {
	if noColorFlag {
		return false, nil
	}
	switch colorFlag {
	case "always", "":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return false, nil
		}
		return isTerminal(out), nil
	}
	return false, usageError("invalid --color %q: want auto, always or never", colorFlag)
}
