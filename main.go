package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/git-credit/git-credit/internal/flagutils"
	"github.com/git-credit/git-credit/internal/git"
	"github.com/git-credit/git-credit/internal/tally"
)

var Commit = "unknown"
var Version = "unknown"

var progStart time.Time

type command struct {
	flagSet     *flag.FlagSet
	run         func(args []string) error
	description string
}

// Main examines the args and delegates to the specified subcommand.
//
// If no subcommand was specified, we default to the "rank" subcommand.
func main() {
	subcommands := map[string]command{ // Available subcommands
		"rank":  rankCmd(),
		"table": tableCmd(),
		"dump":  dumpCmd(),
		"parse": parseCmd(),
	}

	// --- Handle top-level flags ---
	mainFlagSet := flag.NewFlagSet("git-credit", flag.ExitOnError)

	versionFlag := mainFlagSet.Bool("version", false, "Print version and exit")
	verboseFlag := mainFlagSet.Bool("v", false, "Enables debug logging")

	mainFlagSet.Usage = func() {
		fmt.Println("Usage: git-credit [-v] [subcommand] [subcommand options...]")
		fmt.Println("git-credit reports commit counts and line totals by author")

		fmt.Println()
		fmt.Println("Top-level options:")
		mainFlagSet.PrintDefaults()

		fmt.Println()
		fmt.Println("Subcommands:")

		helpSubcommands := []string{"rank", "table"}
		for _, name := range helpSubcommands {
			cmd := subcommands[name]

			fmt.Printf("  %s\n", name)
			fmt.Printf("\t%s\n", cmd.description)
		}
	}

	// Look for the index of the first arg not intended as a top-level flag.
	// We handle this manually so that specifying the default subcommand is
	// optional even when providing subcommand flags.
	subcmdIndex := 1
loop:
	for subcmdIndex < len(os.Args) {
		switch os.Args[subcmdIndex] {
		case "-version", "--version", "-v", "--v", "-h", "--help":
			subcmdIndex += 1
		default:
			break loop
		}
	}

	mainFlagSet.Parse(os.Args[1:subcmdIndex])

	if *versionFlag {
		fmt.Printf("%s %s\n", Version, Commit)
		return
	}

	if *verboseFlag {
		configureLogging(slog.LevelDebug)
		logger().Debug("log level set to DEBUG")
	} else {
		configureLogging(slog.LevelInfo)
	}

	args := os.Args[subcmdIndex:]

	// --- Handle subcommands ---
	cmd := subcommands["rank"] // Default to "rank"
	if len(args) > 0 {
		first := args[0]
		if subcommand, ok := subcommands[first]; ok {
			cmd = subcommand
			args = args[1:]
		}
	}

	cmd.flagSet.Parse(args)
	subargs := cmd.flagSet.Args()

	progStart = time.Now()
	if err := cmd.run(subargs); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// -v- Subcommand definitions --------------------------------------------------

func rankCmd() command {
	flagSet := flag.NewFlagSet("git-credit rank", flag.ExitOnError)

	repoFlags := addRepoFlags(flagSet)
	byEmail := flagSet.Bool("e", false, "Group authors by email instead of name")
	countMerges := flagSet.Bool("merges", false, "Count merge commits toward commit total")
	linesMode := flagSet.Bool("l", false, "Order by lines added + removed")

	var limit int
	flagSet.IntVar(&limit, "n", 0, "Only print the top <n> authors")
	flagSet.IntVar(&limit, "limit", 0, "Only print the top <n> authors")

	filterFlags := addFilterFlags(flagSet)

	description := "Print per-author commit counts and line-change totals"

	flagSet.Usage = func() {
		fmt.Println(strings.TrimSpace(`
Usage: git-credit rank -t <dir> [options...]
		`))
		fmt.Println(description)
		fmt.Println()
		flagSet.PrintDefaults()
	}

	return command{
		flagSet:     flagSet,
		description: description,
		run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			targetDir, err := repoFlags.TargetDir()
			if err != nil {
				return err
			}

			limitGiven := false
			flagSet.Visit(func(f *flag.Flag) {
				if f.Name == "n" || f.Name == "limit" {
					limitGiven = true
				}
			})
			if limitGiven && limit <= 0 {
				return fmt.Errorf("-n must be a positive integer, got %d", limit)
			}

			mode := tally.CommitMode
			if *linesMode {
				mode = tally.LinesMode
			}

			return rank(
				targetDir,
				*repoFlags.branch,
				mode,
				*byEmail,
				*countMerges,
				limit,
				filterFlags.Filters(),
			)
		},
	}
}

func tableCmd() command {
	flagSet := flag.NewFlagSet("git-credit table", flag.ExitOnError)

	repoFlags := addRepoFlags(flagSet)
	useCsv := flagSet.Bool("csv", false, "Output as csv")
	showEmail := flagSet.Bool("e", false, "Show email address of each author")
	countMerges := flagSet.Bool("merges", false, "Count merge commits toward commit total")
	linesMode := flagSet.Bool("l", false, "Order by lines added + removed")
	limit := flagSet.Int("n", 10, "Limit rows in table (set to 0 for no limit)")

	filterFlags := addFilterFlags(flagSet)

	description := "Print out a table showing total contributions by author"

	flagSet.Usage = func() {
		fmt.Println(strings.TrimSpace(`
Usage: git-credit table -t <dir> [options...]
		`))
		fmt.Println(description)
		fmt.Println()
		flagSet.PrintDefaults()
	}

	return command{
		flagSet:     flagSet,
		description: description,
		run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			targetDir, err := repoFlags.TargetDir()
			if err != nil {
				return err
			}

			if *limit < 0 {
				return fmt.Errorf("-n flag must be a positive integer")
			}

			mode := tally.CommitMode
			if *linesMode {
				mode = tally.LinesMode
			}

			return table(
				targetDir,
				*repoFlags.branch,
				mode,
				*useCsv,
				*showEmail,
				*countMerges,
				*limit,
				filterFlags.Filters(),
			)
		},
	}
}

func dumpCmd() command {
	flagSet := flag.NewFlagSet("git-credit dump", flag.ExitOnError)

	repoFlags := addRepoFlags(flagSet)
	filterFlags := addFilterFlags(flagSet)

	return command{
		flagSet: flagSet,
		run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			targetDir, err := repoFlags.TargetDir()
			if err != nil {
				return err
			}

			return dump(targetDir, *repoFlags.branch, filterFlags.Filters())
		},
	}
}

func parseCmd() command {
	flagSet := flag.NewFlagSet("git-credit parse", flag.ExitOnError)

	repoFlags := addRepoFlags(flagSet)
	filterFlags := addFilterFlags(flagSet)

	return command{
		flagSet: flagSet,
		run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}

			targetDir, err := repoFlags.TargetDir()
			if err != nil {
				return err
			}

			return parse(targetDir, *repoFlags.branch, filterFlags.Filters())
		},
	}
}

// -^---------------------------------------------------------------------------

type repoFlags struct {
	targetDir *string
	branch    *string
}

// TargetDir returns the target directory flag, which is required.
func (rf *repoFlags) TargetDir() (string, error) {
	if *rf.targetDir == "" {
		return "", fmt.Errorf("must specify a repository with -t/--target-dir")
	}

	return *rf.targetDir, nil
}

func addRepoFlags(set *flag.FlagSet) *repoFlags {
	var targetDir string
	set.StringVar(&targetDir, "t", "", "Path to the repository to analyze (required)")
	set.StringVar(&targetDir, "target-dir", "", "Path to the repository to analyze (required)")

	var branch string
	set.StringVar(&branch, "b", "HEAD", "Revision to walk when reading the log")
	set.StringVar(&branch, "branch", "HEAD", "Revision to walk when reading the log")

	return &repoFlags{
		targetDir: &targetDir,
		branch:    &branch,
	}
}

type filterFlags struct {
	since    *string
	until    *string
	authors  flagutils.SliceFlag
	nauthors flagutils.SliceFlag
}

func (ff *filterFlags) Filters() git.LogFilters {
	return git.LogFilters{
		Since:    *ff.since,
		Until:    *ff.until,
		Authors:  ff.authors,
		Nauthors: ff.nauthors,
	}
}

func addFilterFlags(set *flag.FlagSet) *filterFlags {
	flags := filterFlags{
		since: set.String("since", "", strings.TrimSpace(`
Only count commits after the given date. See git-commit(1) for valid date formats
		`)),
		until: set.String("until", "", strings.TrimSpace(`
Only count commits before the given date
		`)),
	}

	set.Var(&flags.authors, "author", strings.TrimSpace(`
Only count commits by these authors. Can be specified multiple times
	`))

	set.Var(&flags.nauthors, "nauthor", strings.TrimSpace(`
Exclude commits by these authors. Can be specified multiple times
	`))

	return &flags
}
