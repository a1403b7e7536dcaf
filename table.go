package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/git-credit/git-credit/internal/format"
	"github.com/git-credit/git-credit/internal/git"
	"github.com/git-credit/git-credit/internal/pretty"
	"github.com/git-credit/git-credit/internal/tally"
)

const narrowWidth = 55
const wideWidth = 80

func pickWidth(mode tally.TallyMode, showEmail bool) int {
	if mode == tally.LinesMode || showEmail {
		return wideWidth
	}

	return narrowWidth
}

// The "table" subcommand summarizes the authorship history of the repository
// in a table printed to stdout.
func table(
	targetDir string,
	rev string,
	mode tally.TallyMode,
	useCsv bool,
	showEmail bool,
	countMerges bool,
	limit int,
	filters git.LogFilters,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running \"table\": %w", err)
		}
	}()

	logger().Debug(
		"called table()",
		"targetDir",
		targetDir,
		"rev",
		rev,
		"mode",
		mode,
		"useCsv",
		useCsv,
		"showEmail",
		showEmail,
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
	if showEmail {
		tallyOpts.Key = func(c git.Commit) string { return c.AuthorEmail }
	} else {
		tallyOpts.Key = func(c git.Commit) string { return c.AuthorName }
	}

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

	ranked := tally.Rank(tallies, mode)

	numFilteredOut := 0
	if limit > 0 && limit < len(ranked) {
		numFilteredOut = len(ranked) - limit
		ranked = ranked[:limit]
	}

	if useCsv {
		return writeCsv(ranked, showEmail)
	}

	pretty.SetColorEnabled(pretty.AllowDynamic(os.Stdout))
	colwidth := pickWidth(mode, showEmail)
	writeTable(ranked, colwidth, showEmail, mode, numFilteredOut)
	return nil
}

func toRecord(t tally.Tally, showEmail bool) []string {
	record := []string{t.AuthorName}

	if showEmail {
		record = append(record, t.AuthorEmail)
	}

	return append(
		record,
		strconv.Itoa(t.Commits),
		strconv.Itoa(t.LinesAdded),
		strconv.Itoa(t.LinesRemoved),
		t.LastCommitTime.Format(time.RFC3339),
	)
}

func writeCsv(tallies []tally.Tally, showEmail bool) error {
	w := csv.NewWriter(os.Stdout)

	// Write header
	columnHeaders := []string{"name"}
	if showEmail {
		columnHeaders = append(columnHeaders, "email")
	}

	columnHeaders = append(
		columnHeaders,
		"commits",
		"lines added",
		"lines removed",
		"last commit time",
	)
	w.Write(columnHeaders)

	for _, tally := range tallies {
		record := toRecord(tally, showEmail)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record to stdout: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return nil
}

func writeTable(
	tallies []tally.Tally,
	colwidth int,
	showEmail bool,
	mode tally.TallyMode,
	numFilteredOut int,
) {
	if len(tallies) == 0 {
		return
	}

	var build strings.Builder
	for _ = range colwidth - 2 {
		build.WriteRune('─')
	}
	rule := build.String()

	// -- Write header --
	fmt.Printf("┌%s┐\n", rule)

	if mode == tally.CommitMode {
		fmt.Printf(
			"│%-*s %-11s %7s│\n",
			colwidth-22,
			"Author",
			"Last Edit",
			"Commits",
		)
	} else {
		fmt.Printf(
			"│%-*s %-11s %7s  %17s│\n",
			colwidth-41,
			"Author",
			"Last Edit",
			"Commits",
			"Lines (+/-)",
		)
	}
	fmt.Printf("├%s┤\n", rule)

	// -- Write table rows --
	for _, t := range tallies {
		lines := fmt.Sprintf(
			"%s%7s%s / %s%7s%s",
			pretty.Green(),
			format.Number(t.LinesAdded),
			pretty.Reset(),
			pretty.Red(),
			format.Number(t.LinesRemoved),
			pretty.Reset(),
		)

		var author string
		if showEmail {
			author = fmt.Sprintf(
				"%s %s",
				t.AuthorName,
				format.GitEmail(t.AuthorEmail),
			)
		} else {
			author = t.AuthorName
		}

		if mode == tally.CommitMode {
			fmt.Printf(
				"│%-*s %-11s %7s│\n",
				colwidth-22,
				format.Abbrev(author, colwidth-22),
				format.RelativeTime(progStart, t.LastCommitTime),
				format.Number(t.Commits),
			)
		} else {
			fmt.Printf(
				"│%-*s %-11s %7s  %17s│\n",
				colwidth-41,
				format.Abbrev(author, colwidth-41),
				format.RelativeTime(progStart, t.LastCommitTime),
				format.Number(t.Commits),
				lines,
			)
		}
	}

	if numFilteredOut > 0 {
		msg := fmt.Sprintf("...%s more...", format.Number(numFilteredOut))
		fmt.Printf("│%-*s│\n", colwidth-2, msg)
	}

	fmt.Printf("└%s┘\n", rule)
}
