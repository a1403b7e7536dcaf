package git

import (
	"fmt"
	"strings"
)

// Options limiting which commits are read from the log.
type LogFilters struct {
	Since    string
	Until    string
	Authors  []string
	Nauthors []string
}

// Turn into CLI args we can pass to `git log`.
func (f LogFilters) ToArgs() []string {
	args := []string{}

	if f.Since != "" {
		args = append(args, "--since", f.Since)
	}

	if f.Until != "" {
		args = append(args, "--until", f.Until)
	}

	for _, author := range f.Authors {
		args = append(args, "--author", author)
	}

	if len(f.Nauthors) > 0 {
		// Exclusion is done by OR-ing the authors together inside a
		// negative lookahead, which needs perl-style regexps.
		regex := fmt.Sprintf(`^((?!%s).*)$`, strings.Join(f.Nauthors, "|"))
		args = append(args, "--perl-regexp", "--author", regex)
	}

	return args
}
