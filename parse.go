package main

import (
	"context"
	"fmt"

	"github.com/git-credit/git-credit/internal/git"
)

// Just prints out a simple representation of the commits parsed from
// `git log` for debugging.
func parse(
	targetDir string,
	rev string,
	filters git.LogFilters,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"parse\": %w", err)
		}
	}()

	logger().Debug("called parse()", "targetDir", targetDir, "rev", rev)

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
		return nil
	}

	commits, closer, err := git.Commits(ctx, targetDir, rev, filters)
	if err != nil {
		return err
	}

	defer func() {
		if err == nil {
			err = closer()
		}
	}()

	for commit, err := range commits {
		if err != nil {
			return fmt.Errorf("error iterating commits: %w", err)
		}

		fmt.Printf("%s\n", commit)
	}

	return nil
}
