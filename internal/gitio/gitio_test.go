package gitio

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// initRepo creates a throwaway git repo with one commit and chdirs into it.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-b", "main")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	run("add", "a.txt")
	run("commit", "-m", "feat: initial import")
	return dir
}

func TestStagedDiff(t *testing.T) {
	dir := initRepo(t)

	// Nothing staged yet
	diff, err := StagedDiff(3)
	if err != nil {
		t.Fatalf("StagedDiff error: %v", err)
	}
	if strings.TrimSpace(diff) != "" {
		t.Errorf("expected empty staged diff, got:\n%s", diff)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	out, err := exec.Command("git", "add", "a.txt").CombinedOutput()
	if err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	diff, err = StagedDiff(3)
	if err != nil {
		t.Fatalf("StagedDiff error: %v", err)
	}
	if !strings.Contains(diff, "+two") {
		t.Errorf("staged diff missing added line:\n%s", diff)
	}
}

func TestBranchAndSubjects(t *testing.T) {
	initRepo(t)

	if got := Branch(); got != "main" {
		t.Errorf("Branch = %q, want main", got)
	}

	subjects := RecentSubjects(5)
	if len(subjects) != 1 || subjects[0] != "feat: initial import" {
		t.Errorf("RecentSubjects = %v", subjects)
	}
}

func TestHooksDir(t *testing.T) {
	initRepo(t)

	dir, err := HooksDir()
	if err != nil {
		t.Fatalf("HooksDir error: %v", err)
	}
	if !strings.Contains(dir, "hooks") {
		t.Errorf("HooksDir = %q", dir)
	}
}
