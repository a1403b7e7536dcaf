package git

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// The target directory does not contain a git repository.
var ErrNotRepository = errors.New("not a git repository")

// CheckRepository confirms that the directory at path exists and holds a git
// repository.
//
// We let git itself make the call by running rev-parse rather than poking
// around for a .git directory, which would miss worktrees and submodules.
func CheckRepository(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotRepository, path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s: not a directory", ErrNotRepository, path)
	}

	subprocess, err := RunRevParse(ctx, path, []string{"--git-dir"})
	if err != nil {
		return err
	}

	_, err = subprocess.StdoutText()
	if err != nil {
		return err
	}

	err = subprocess.Wait()
	if err != nil {
		var subprocessErr SubprocessErr
		if errors.As(err, &subprocessErr) {
			return fmt.Errorf("%w: %s", ErrNotRepository, path)
		}

		return err
	}

	return nil
}

// IsEmptyRepository reports whether the repository at path has no commits
// yet. Running git log against such a repository is an error, so callers
// check this first and treat an empty repository as an empty result.
func IsEmptyRepository(ctx context.Context, path string) (bool, error) {
	subprocess, err := RunRevParse(
		ctx,
		path,
		[]string{"--verify", "--quiet", "HEAD^{commit}"},
	)
	if err != nil {
		return false, err
	}

	_, err = subprocess.StdoutText()
	if err != nil {
		return false, err
	}

	err = subprocess.Wait()
	if err != nil {
		var subprocessErr SubprocessErr
		if errors.As(err, &subprocessErr) {
			return true, nil
		}

		return false, err
	}

	return false, nil
}
