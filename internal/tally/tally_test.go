package tally_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/git-credit/git-credit/internal/git"
	"github.com/git-credit/git-credit/internal/iterutils"
	"github.com/git-credit/git-credit/internal/tally"
)

func byName(c git.Commit) string { return c.AuthorName }

func commit(
	hash string,
	author string,
	added int,
	removed int,
) git.Commit {
	return git.Commit{
		Hash:         hash,
		ShortHash:    hash,
		AuthorName:   author,
		AuthorEmail:  author + "@mail.com",
		LinesAdded:   added,
		LinesRemoved: removed,
	}
}

func TestTallyCommits(t *testing.T) {
	commits := []git.Commit{
		commit("baa", "alice", 10, 2),
		commit("bab", "bob", 3, 1),
		commit("bac", "alice", 5, 0),
	}

	seq := iterutils.WithoutErrors(slices.Values(commits))
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	expected := []tally.Tally{
		{
			AuthorName:   "alice",
			AuthorEmail:  "alice@mail.com",
			Commits:      2,
			LinesAdded:   15,
			LinesRemoved: 2,
		},
		{
			AuthorName:   "bob",
			AuthorEmail:  "bob@mail.com",
			Commits:      1,
			LinesAdded:   3,
			LinesRemoved: 1,
		},
	}
	if diff := cmp.Diff(expected, tallies); diff != "" {
		t.Errorf("tallies are wrong:\n%s", diff)
	}
}

func TestTallyCommitsEmpty(t *testing.T) {
	seq := iterutils.WithoutErrors(slices.Values([]git.Commit{}))
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	if len(tallies) != 0 {
		t.Errorf("expected no tallies, got %v", tallies)
	}
}

func TestTallyCommitsSkipsMerges(t *testing.T) {
	merge := commit("bad", "alice", 0, 0)
	merge.IsMerge = true

	commits := []git.Commit{
		commit("baa", "alice", 10, 2),
		merge,
	}

	seq := iterutils.WithoutErrors(slices.Values(commits))
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	if tallies[0].Commits != 1 {
		t.Errorf("merge commit should not be counted, got %d commits",
			tallies[0].Commits)
	}

	seq = iterutils.WithoutErrors(slices.Values(commits))
	tallies, err = tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName, CountMerges: true},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	if tallies[0].Commits != 2 {
		t.Errorf("merge commit should be counted with CountMerges, got %d",
			tallies[0].Commits)
	}
}

func TestTallyCommitsLastCommitTime(t *testing.T) {
	older := commit("baa", "alice", 1, 0)
	older.Date = time.Unix(1735304504, 0)
	newer := commit("bab", "alice", 1, 0)
	newer.Date = time.Unix(1735304599, 0)

	// Newest first, like git log
	seq := iterutils.WithoutErrors(
		slices.Values([]git.Commit{newer, older}),
	)
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	if !tallies[0].LastCommitTime.Equal(newer.Date) {
		t.Errorf("expected last commit time %v, got %v",
			newer.Date, tallies[0].LastCommitTime)
	}
}

func TestTallyCommitsError(t *testing.T) {
	seq := iterutils.ThenFail(
		slices.Values([]git.Commit{commit("baa", "alice", 1, 0)}),
		errors.New("exploded"),
	)

	_, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName},
	)
	if err == nil {
		t.Fatal("expected error from commit iterator to propagate")
	}
}

func TestRank(t *testing.T) {
	commits := []git.Commit{
		commit("baa", "bob", 3, 1),
		commit("bab", "alice", 10, 2),
		commit("bac", "alice", 5, 0),
	}

	seq := iterutils.WithoutErrors(slices.Values(commits))
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	ranked := tally.Rank(tallies, tally.CommitMode)

	names := []string{}
	for _, r := range ranked {
		names = append(names, r.AuthorName)
	}

	expected := []string{"alice", "bob"}
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Errorf("ranking is wrong:\n%s", diff)
	}

	// Commit counts never increase down the list
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Commits > ranked[i-1].Commits {
			t.Errorf("ranking not in descending order at index %d", i)
		}
	}
}

func TestRankStableTieBreak(t *testing.T) {
	// carol and dave both have one commit; carol was seen first and should
	// stay ahead
	commits := []git.Commit{
		commit("baa", "carol", 1, 1),
		commit("bab", "dave", 100, 100),
	}

	seq := iterutils.WithoutErrors(slices.Values(commits))
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.CommitMode, Key: byName},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	ranked := tally.Rank(tallies, tally.CommitMode)
	if ranked[0].AuthorName != "carol" || ranked[1].AuthorName != "dave" {
		t.Errorf("tie should preserve first-seen order, got %v", ranked)
	}
}

func TestRankLinesMode(t *testing.T) {
	commits := []git.Commit{
		commit("baa", "carol", 1, 1),
		commit("bab", "carol", 1, 0),
		commit("bac", "dave", 100, 100),
	}

	seq := iterutils.WithoutErrors(slices.Values(commits))
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{Mode: tally.LinesMode, Key: byName},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	ranked := tally.Rank(tallies, tally.LinesMode)
	if ranked[0].AuthorName != "dave" {
		t.Errorf("expected dave first in lines mode, got %v", ranked)
	}
}

func TestTallyCommitsByEmail(t *testing.T) {
	a := commit("baa", "alice", 1, 0)
	b := commit("bab", "alice2", 2, 0)
	b.AuthorEmail = "alice@mail.com" // Same email, different name

	seq := iterutils.WithoutErrors(slices.Values([]git.Commit{a, b}))
	tallies, err := tally.TallyCommits(
		seq,
		tally.TallyOpts{
			Mode: tally.CommitMode,
			Key:  func(c git.Commit) string { return c.AuthorEmail },
		},
	)
	if err != nil {
		t.Fatalf("TallyCommits() returned error: %v", err)
	}

	if len(tallies) != 1 {
		t.Fatalf("expected commits grouped by email, got %v", tallies)
	}

	if tallies[0].Commits != 2 || tallies[0].LinesAdded != 3 {
		t.Errorf("wrong totals for grouped tally: %v", tallies[0])
	}
}
