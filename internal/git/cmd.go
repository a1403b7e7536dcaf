package git

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"os/exec"
	"slices"
	"strings"
)

const logFormat = "--pretty=format:%H%n%h%n%p%n%an%n%ae%n%ad"

// Error from a git subprocess that exited with a non-zero status.
type SubprocessErr struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (err SubprocessErr) Error() string {
	if err.Stderr != "" {
		return fmt.Sprintf(
			"git subprocess exited with code %d. Error output:\n%s",
			err.ExitCode,
			err.Stderr,
		)
	}

	return fmt.Sprintf("git subprocess exited with code %d", err.ExitCode)
}

func (err SubprocessErr) Unwrap() error {
	return err.Err
}

type Subprocess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// Returns a single-use iterator over the output of the command, line by line.
func (s *Subprocess) StdoutLines() iter.Seq2[string, error] {
	scanner := bufio.NewScanner(s.stdout)

	return func(yield func(string, error) bool) {
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("error while scanning: %w", err))
		}
	}
}

func (s *Subprocess) StdoutText() (string, error) {
	b, err := io.ReadAll(s.stdout)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

// Wait must be called after the stdout of the subprocess has been consumed.
//
// A non-zero exit status is reported as a SubprocessErr carrying whatever the
// subprocess wrote to stderr.
func (s *Subprocess) Wait() error {
	stderr, err := io.ReadAll(s.stderr)
	if err != nil {
		return fmt.Errorf("could not read stderr: %w", err)
	}

	err = s.cmd.Wait()
	logger().Debug(
		"subprocess exited",
		"code",
		s.cmd.ProcessState.ExitCode(),
	)

	if err != nil {
		return SubprocessErr{
			ExitCode: s.cmd.ProcessState.ExitCode(),
			Stderr:   strings.TrimSpace(string(stderr)),
			Err:      err,
		}
	}

	return nil
}

// Invokes git against the repository at repoPath.
func run(
	ctx context.Context,
	repoPath string,
	args []string,
) (*Subprocess, error) {
	cmd := exec.CommandContext(
		ctx,
		"git",
		slices.Concat([]string{"-C", repoPath}, args)...,
	)
	logger().Debug("running subprocess", "cmd", cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to start subprocess: %w", err)
	}

	return &Subprocess{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// Runs git log with --numstat against the given revision.
//
// Author identities are reported exactly as recorded on each commit, so we
// pass --no-mailmap to keep git from collapsing them.
func RunLog(
	ctx context.Context,
	repoPath string,
	rev string,
	filters LogFilters,
) (*Subprocess, error) {
	baseArgs := []string{
		"log",
		logFormat,
		"--date=unix",
		"--numstat",
		"--no-show-signature",
		"--no-mailmap",
	}

	args := slices.Concat(baseArgs, filters.ToArgs(), []string{rev})

	subprocess, err := run(ctx, repoPath, args)
	if err != nil {
		return nil, fmt.Errorf("failed to run git log: %w", err)
	}

	return subprocess, nil
}

// Runs git rev-parse.
func RunRevParse(
	ctx context.Context,
	repoPath string,
	args []string,
) (*Subprocess, error) {
	subprocess, err := run(
		ctx,
		repoPath,
		slices.Concat([]string{"rev-parse"}, args),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run git rev-parse: %w", err)
	}

	return subprocess, nil
}
