package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/git-credit/git-credit/internal/git"
	"github.com/git-credit/git-credit/internal/tally"
)

// The "rank" subcommand prints one line per author, ordered by the ranking
// mode, in the form:
//
//	{author} has made {commits} commits: {additions} additions and {removals} removals
func rank(
	targetDir string,
	rev string,
	mode tally.TallyMode,
	byEmail bool,
	countMerges bool,
	limit int,
	filters git.LogFilters,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"rank\": %w", err)
		}
	}()

	logger().Debug(
		"called rank()",
		"targetDir",
		targetDir,
		"rev",
		rev,
		"mode",
		mode,
		"byEmail",
		byEmail,
		"countMerges",
		countMerges,
		"limit",
		limit,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = git.CheckRepository(ctx, targetDir)
	if err != nil {
		return err
	}

	empty, err := git.IsEmptyRepository(ctx, targetDir)
	if err != nil {
		return err
	}
	if empty {
		logger().Info("no commits in repository", "repo", targetDir)
		return nil
	}

	tallyOpts := tally.TallyOpts{Mode: mode, CountMerges: countMerges}
	if byEmail {
		tallyOpts.Key = func(c git.Commit) string { return c.AuthorEmail }
	} else {
		tallyOpts.Key = func(c git.Commit) string { return c.AuthorName }
	}

	logger().Info("reading commit log", "repo", targetDir, "rev", rev)

	commits, closer, err := git.Commits(ctx, targetDir, rev, filters)
	if err != nil {
		return err
	}

	tallies, err := tally.TallyCommits(commits, tallyOpts)
	if err != nil {
		return fmt.Errorf("failed to tally commits: %w", err)
	}

	err = closer()
	if err != nil {
		return err
	}

	logger().Info("compiling stats", "authors", len(tallies))

	ranked := tally.Rank(tallies, mode)
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	w := bufio.NewWriter(os.Stdout)
	err = writeRanked(w, ranked, byEmail)
	if err != nil {
		return err
	}

	return w.Flush()
}

func writeRanked(w io.Writer, tallies []tally.Tally, byEmail bool) error {
	for _, t := range tallies {
		author := t.AuthorName
		if byEmail {
			author = t.AuthorEmail
		}

		_, err := fmt.Fprintf(
			w,
			"%s has made %d commits: %d additions and %d removals\n",
			author,
			t.Commits,
			t.LinesAdded,
			t.LinesRemoved,
		)
		if err != nil {
			return fmt.Errorf("error writing rankings to stdout: %w", err)
		}
	}

	return nil
}
