package pretty

import (
	"os"

	"golang.org/x/term"
)

// AllowDynamic reports whether f is a terminal and can take colors and other
// ANSI trickery.
func AllowDynamic(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
