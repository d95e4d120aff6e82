package gitio

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// StagedDiff returns the diff of index vs HEAD.
func StagedDiff(contextLines int) (string, error) {
	out, err := gitOutput("diff", "--cached", "--no-ext-diff",
		"-U"+strconv.Itoa(contextLines), "--minimal")
	if err != nil {
		return "", fmt.Errorf("git diff --cached: %w", err)
	}
	return out, nil
}

// RangeDiff returns the combined diff for a revision range.
func RangeDiff(revRange string, contextLines int) (string, error) {
	out, err := gitOutput("diff", revRange, "--no-ext-diff",
		"-U"+strconv.Itoa(contextLines), "--minimal")
	if err != nil {
		return "", fmt.Errorf("git diff %s: %w", revRange, err)
	}
	return out, nil
}

// Branch returns the current branch name, or "" in a detached/empty repo.
func Branch() string {
	out, err := gitOutput("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// RepoName returns the base name of the repository root directory.
func RepoName() string {
	out, err := gitOutput("rev-parse", "--show-toplevel")
	if err != nil {
		return ""
	}
	return filepath.Base(strings.TrimSpace(out))
}

// RecentSubjects returns the last n commit subject lines, newest first.
// A repo with no commits yields nil.
func RecentSubjects(n int) []string {
	out, err := gitOutput("log", "--format=%s", "-n", strconv.Itoa(n))
	if err != nil {
		return nil
	}
	var subjects []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			subjects = append(subjects, line)
		}
	}
	return subjects
}

// Commit runs git commit -m with the given message.
func Commit(message string) error {
	cmd := exec.Command("git", "commit", "-m", message)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git commit: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// HooksDir returns the repository's hooks directory.
func HooksDir() (string, error) {
	out, err := gitOutput("rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func gitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
