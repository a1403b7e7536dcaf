package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/git-credit/git-credit/internal/git"
)

// Just prints out the output of git log as seen by git-credit.
func dump(
	targetDir string,
	rev string,
	filters git.LogFilters,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"dump\": %w", err)
		}
	}()

	logger().Debug("called dump()", "targetDir", targetDir, "rev", rev)

	start := time.Now()

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

	subprocess, err := git.RunLog(ctx, targetDir, rev, filters)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)

	for line, err := range subprocess.StdoutLines() {
		if err != nil {
			return err
		}

		fmt.Fprintln(w, line)
	}

	err = w.Flush()
	if err != nil {
		return err
	}

	err = subprocess.Wait()
	if err != nil {
		return err
	}

	elapsed := time.Now().Sub(start)
	logger().Debug("finished dump", "duration_ms", elapsed.Milliseconds())

	return nil
}
