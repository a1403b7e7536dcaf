// Helpers for building throwaway git repositories in tests.
package repotest

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// An author identity used when committing to a scratch repository.
type Author struct {
	Name  string
	Email string
}

// RequireGit skips the test when there is no git binary on the PATH.
func RequireGit(t *testing.T) {
	t.Helper()

	_, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git not found on PATH; skipping")
	}
}

// InitRepo creates an empty git repository under a temp directory and returns
// its path. The directory is cleaned up with the test.
func InitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.name", "repotest")
	runGit(t, dir, "config", "user.email", "repotest@example.com")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

// Commit writes the given files into the repository at dir and commits them
// as the given author.
func Commit(
	t *testing.T,
	dir string,
	author Author,
	msg string,
	files map[string]string,
) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			t.Fatalf("could not create dir for %s: %v", name, err)
		}

		err = os.WriteFile(path, []byte(content), 0o644)
		if err != nil {
			t.Fatalf("could not write %s: %v", name, err)
		}

		runGit(t, dir, "add", name)
	}

	runGit(
		t,
		dir,
		"commit",
		"--allow-empty",
		"-m", msg,
		"--author", author.Name+" <"+author.Email+">",
	)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(
		os.Environ(),
		"GIT_COMMITTER_NAME=repotest",
		"GIT_COMMITTER_EMAIL=repotest@example.com",
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
