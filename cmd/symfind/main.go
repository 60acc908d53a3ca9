// symfind lists the declarations of a name in a C, C++ or CUDA source file.
// Each match prints as line:column followed by the source line.
package main

import (
	"fmt"
	"os"

	"github.com/corey/symfind/cmd/symfind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(os.Stderr, "symfind: %s\n", msg)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
