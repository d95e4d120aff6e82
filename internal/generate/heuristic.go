package generate

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/comet-cli/comet/internal/diffparse"
)

// Heuristic is the offline fallback strategy. It builds a message purely
// from file and line counts plus the status distribution, with no external
// dependency, and always succeeds for a non-empty change set.
type Heuristic struct{}

func (Heuristic) Name() string { return "offline" }

func (Heuristic) Generate(_ context.Context, in Input) (string, error) {
	cs := in.ChangeSet
	files, added, removed := cs.Stats()

	verb := changeVerb(cs)
	noun := "files"
	if files == 1 {
		noun = "file"
	}

	var subject string
	if in.Request.Style == "casual" {
		subject = fmt.Sprintf("%s %d %s (+%d/-%d)",
			strings.ToUpper(verb[:1])+verb[1:], files, noun, added, removed)
	} else {
		subject = fmt.Sprintf("%s: %s %d %s (+%d/-%d)",
			commitType(cs), verb, files, noun, added, removed)
	}

	body := statusBody(cs)
	if body == "" {
		return subject, nil
	}
	return subject + "\n\n" + body, nil
}

func changeVerb(cs *diffparse.ChangeSet) string {
	allAdded, allDeleted := true, true
	for _, f := range cs.Files {
		if f.Status != diffparse.StatusAdded {
			allAdded = false
		}
		if f.Status != diffparse.StatusDeleted {
			allDeleted = false
		}
	}
	switch {
	case allAdded:
		return "add"
	case allDeleted:
		return "remove"
	default:
		return "update"
	}
}

func commitType(cs *diffparse.ChangeSet) string {
	allDocs, allTests, anyAdded := true, true, false
	for _, f := range cs.Files {
		ext := path.Ext(f.Path)
		if ext != ".md" && ext != ".rst" && ext != ".txt" && !strings.HasPrefix(f.Path, "docs/") {
			allDocs = false
		}
		if !strings.Contains(f.Path, "_test.") && !strings.Contains(f.Path, "test_") &&
			!strings.Contains(f.Path, "/tests/") {
			allTests = false
		}
		if f.Status == diffparse.StatusAdded {
			anyAdded = true
		}
	}
	switch {
	case allDocs:
		return "docs"
	case allTests:
		return "test"
	case anyAdded:
		return "feat"
	default:
		return "chore"
	}
}

const maxBodyFiles = 10

func statusBody(cs *diffparse.ChangeSet) string {
	if len(cs.Files) == 0 {
		return ""
	}
	letters := map[diffparse.FileStatus]string{
		diffparse.StatusAdded:    "A",
		diffparse.StatusModified: "M",
		diffparse.StatusDeleted:  "D",
		diffparse.StatusRenamed:  "R",
		diffparse.StatusBinary:   "B",
	}
	var b strings.Builder
	for i, f := range cs.Files {
		if i == maxBodyFiles {
			fmt.Fprintf(&b, "  ... and %d more\n", len(cs.Files)-maxBodyFiles)
			break
		}
		name := f.Path
		if f.Status == diffparse.StatusRenamed && f.OldPath != "" {
			name = f.OldPath + " -> " + f.Path
		}
		fmt.Fprintf(&b, "  %s %s\n", letters[f.Status], name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// genericSubjects are low-information phrases a large change should not be
// summarized with. Used by the write guard for very large diffs.
var genericSubjects = []string{
	"update files",
	"add .env",
	"misc changes",
	"wip",
}

// GenericSubject reports whether a subject line is too vague to describe a
// very large change.
func GenericSubject(subject string) bool {
	s := strings.ToLower(strings.TrimSpace(subject))
	for _, g := range genericSubjects {
		if strings.Contains(s, g) {
			return true
		}
	}
	// A bare one-word action with no object says nothing either.
	words := strings.Fields(s)
	if len(words) <= 2 {
		for _, w := range []string{"update", "add", "change", "modify", "fix"} {
			if strings.Contains(s, w) {
				return true
			}
		}
	}
	return false
}
