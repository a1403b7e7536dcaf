package git

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Number of lines in the header of each log entry, per logFormat.
const numHeaderLines = 6

var commitHashRegexp = regexp.MustCompile(`^[a-f0-9]{40}$`)

// Error describing a line of git log output we could not make sense of.
type ParseError struct {
	Line string
	Err  error
}

func (err ParseError) Error() string {
	return fmt.Sprintf(
		"could not parse git log output at line \"%s\": %v",
		err.Line,
		err.Err,
	)
}

func (err ParseError) Unwrap() error {
	return err.Err
}

// Parses one numstat line: "<added>\t<removed>\t<path>".
//
// Either count can be "-" for a binary file, which we count as zero.
func parseNumstat(line string) (added int, removed int, err error) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return 0, 0, ParseError{
			Line: line,
			Err:  fmt.Errorf("expected numstat line, got %d fields", len(parts)),
		}
	}

	if parts[0] != "-" {
		added, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, ParseError{Line: line, Err: err}
		}
	}

	if parts[1] != "-" {
		removed, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, ParseError{Line: line, Err: err}
		}
	}

	return added, removed, nil
}

func allowCommit(commit Commit) bool {
	if commit.AuthorName == "" && commit.AuthorEmail == "" {
		logger().Debug(
			"skipping commit with no author",
			"commit",
			commit.Name(),
		)

		return false
	}

	return true
}

// Turns an iterator over lines from git log into an iterator of commits.
//
// Each commit starts with a fixed-length header (see logFormat) followed by
// zero or more numstat lines. Blank lines appear between the header and
// numstat data and between entries; we treat a full-length hash line as the
// start of the next entry rather than counting on any particular blank-line
// placement.
func ParseCommits(lines iter.Seq2[string, error]) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		var commit Commit
		inCommit := false
		headerLines := 0

		flush := func() bool {
			if !inCommit {
				return true
			}

			if allowCommit(commit) {
				if !yield(commit, nil) {
					return false
				}
			}

			commit = Commit{}
			inCommit = false
			headerLines = 0
			return true
		}

		for line, err := range lines {
			if err != nil {
				yield(
					commit,
					fmt.Errorf(
						"error reading commit %s: %w",
						commit.Name(),
						err,
					),
				)
				return
			}

			if inCommit && headerLines < numHeaderLines {
				switch headerLines {
				case 1:
					commit.ShortHash = line
				case 2:
					commit.IsMerge = len(strings.Fields(line)) > 1
				case 3:
					commit.AuthorName = line
				case 4:
					commit.AuthorEmail = line
				case 5:
					sec, err := strconv.ParseInt(line, 10, 64)
					if err != nil {
						yield(commit, ParseError{Line: line, Err: err})
						return
					}

					commit.Date = time.Unix(sec, 0)
				}

				headerLines += 1
				continue
			}

			// Between entries or inside the numstat block.
			if len(line) == 0 {
				continue
			}

			if isRev(line) {
				if !flush() {
					return
				}

				commit.Hash = line
				inCommit = true
				headerLines = 1
				continue
			}

			if !inCommit {
				yield(commit, ParseError{
					Line: line,
					Err:  fmt.Errorf("expected a commit hash"),
				})
				return
			}

			added, removed, err := parseNumstat(line)
			if err != nil {
				yield(commit, fmt.Errorf(
					"error parsing line counts from commit %s: %w",
					commit.Name(),
					err,
				))
				return
			}

			commit.LinesAdded += added
			commit.LinesRemoved += removed
		}

		flush()
	}
}

// Returns true if this is a (full-length) Git revision hash, false otherwise.
func isRev(s string) bool {
	return commitHashRegexp.MatchString(s)
}
