// Handles summations over commits.
package tally

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/git-credit/git-credit/internal/git"
)

// Whether we rank authors by commits or by lines changed.
type TallyMode int

const (
	CommitMode TallyMode = iota
	LinesMode
)

type TallyOpts struct {
	Mode        TallyMode
	Key         func(c git.Commit) string // Unique ID for author
	CountMerges bool
}

// Running totals for a single author.
//
// Invariant: an author appears in the output of TallyCommits only if at least
// one commit was attributed to them, so Commits is always >= 1.
type Tally struct {
	AuthorName     string
	AuthorEmail    string
	Commits        int
	LinesAdded     int
	LinesRemoved   int
	LastCommitTime time.Time
}

func (t Tally) SortKey(mode TallyMode) int64 {
	switch mode {
	case CommitMode:
		return int64(t.Commits)
	case LinesMode:
		return int64(t.LinesAdded + t.LinesRemoved)
	default:
		panic("unrecognized mode in switch statement")
	}
}

// TallyCommits folds the commit sequence into per-author totals.
//
// The returned slice preserves the order in which each author was first
// encountered while walking the log.
func TallyCommits(
	commits iter.Seq2[git.Commit, error],
	opts TallyOpts,
) ([]Tally, error) {
	// Map of author key to index into the result slice
	index := map[string]int{}
	tallies := []Tally{}

	start := time.Now()

	for commit, err := range commits {
		if err != nil {
			return nil, fmt.Errorf("error iterating commits: %w", err)
		}

		if commit.IsMerge && !opts.CountMerges {
			continue
		}

		key := opts.Key(commit)

		i, ok := index[key]
		if !ok {
			i = len(tallies)
			index[key] = i
			tallies = append(tallies, Tally{
				AuthorName:  commit.AuthorName,
				AuthorEmail: commit.AuthorEmail,
			})
		}

		tally := tallies[i]
		tally.Commits += 1
		tally.LinesAdded += commit.LinesAdded
		tally.LinesRemoved += commit.LinesRemoved
		if commit.Date.After(tally.LastCommitTime) {
			tally.LastCommitTime = commit.Date
		}
		tallies[i] = tally
	}

	elapsed := time.Now().Sub(start)
	logger().Debug("tallied commits", "duration_ms", elapsed.Milliseconds())

	return tallies, nil
}

// Rank sorts tallies in descending order under the given mode.
//
// The sort is stable, so authors with equal totals keep their
// first-encountered order.
func Rank(tallies []Tally, mode TallyMode) []Tally {
	ranked := slices.Clone(tallies)
	slices.SortStableFunc(ranked, func(a, b Tally) int {
		aKey, bKey := a.SortKey(mode), b.SortKey(mode)
		if aKey > bKey {
			return -1
		} else if aKey < bKey {
			return 1
		}

		return 0
	})
	return ranked
}
