/*
* Wraps access to data needed from Git.
*
* We invoke Git directly as a subprocess and parse the output rather than
* linking against libgit2 or go-git; the data we need is a straight read of
* the commit log.
 */
package git

import (
	"context"
	"fmt"
	"iter"
	"time"
)

// One commit as read from the log, with its numstat block already summed.
type Commit struct {
	Hash         string
	ShortHash    string
	IsMerge      bool
	AuthorName   string
	AuthorEmail  string
	Date         time.Time
	LinesAdded   int
	LinesRemoved int
}

func (c Commit) Name() string {
	if c.ShortHash != "" {
		return c.ShortHash
	} else if c.Hash != "" {
		return c.Hash
	} else {
		return "unknown"
	}
}

func (c Commit) String() string {
	return fmt.Sprintf(
		"{ hash:%s author:%s <%s> date:%s merge:%v +%d/-%d }",
		c.Name(),
		c.AuthorName,
		c.AuthorEmail,
		c.Date.Format("Jan 2, 2006"),
		c.IsMerge,
		c.LinesAdded,
		c.LinesRemoved,
	)
}

// Returns an iterator over commits reachable from rev in the repository at
// repoPath.
//
// The iterator is lazy and single-use. Also returns a closer() function that
// reaps the subprocess; the closer must be called once iteration is finished
// and its error checked, since a failed git invocation reports its exit
// status there.
func Commits(
	ctx context.Context,
	repoPath string,
	rev string,
	filters LogFilters,
) (
	iter.Seq2[Commit, error],
	func() error,
	error,
) {
	subprocess, err := RunLog(ctx, repoPath, rev, filters)
	if err != nil {
		return nil, nil, err
	}

	lines := subprocess.StdoutLines()
	commits := ParseCommits(lines)

	closer := func() error {
		return subprocess.Wait()
	}
	return commits, closer, nil
}
