package diffparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// FileStatus classifies how a file changed.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
	StatusBinary   FileStatus = "binary"
)

// Hunk is one contiguous range edit with its literal added/removed text.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Added    []string
	Removed  []string
}

// Size returns the total character length of the hunk's changed lines.
func (h *Hunk) Size() int {
	n := 0
	for _, l := range h.Added {
		n += len(l) + 1
	}
	for _, l := range h.Removed {
		n += len(l) + 1
	}
	return n
}

// FileChange is the parsed representation of a single file in a diff.
type FileChange struct {
	Path    string
	OldPath string // set when Status is renamed
	Status  FileStatus
	Added   int
	Removed int
	Hunks   []Hunk
}

// ChangeSet holds all files parsed from a diff, in diff order.
type ChangeSet struct {
	Files  []FileChange
	RawLen int
}

// Stats returns aggregate file and line counts.
func (cs *ChangeSet) Stats() (files, added, removed int) {
	files = len(cs.Files)
	for _, f := range cs.Files {
		added += f.Added
		removed += f.Removed
	}
	return
}

// ParseError indicates the diff text could not be read at all.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "diff parse: " + e.Reason
}

// Parse reads a unified diff and returns a ChangeSet. A non-empty input that
// yields no recognizable file is a *ParseError, never an empty result.
func Parse(raw string) (*ChangeSet, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Reason: "empty diff"}
	}

	cs := &ChangeSet{RawLen: len(raw)}

	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err == nil && len(parsed) > 0 {
		for _, f := range parsed {
			cs.Files = append(cs.Files, fromGitdiff(f))
		}
		return cs, nil
	}

	// go-gitdiff is strict. Fall back to a lenient scan so malformed hunks
	// cost partial hunk data, not the whole parse.
	files := lenientParse(raw)
	if len(files) == 0 {
		return nil, &ParseError{Reason: "no file headers found"}
	}
	cs.Files = files
	return cs, nil
}

func fromGitdiff(f *gitdiff.File) FileChange {
	fc := FileChange{}
	switch {
	case f.IsBinary:
		fc.Status = StatusBinary
	case f.IsNew:
		fc.Status = StatusAdded
	case f.IsDelete:
		fc.Status = StatusDeleted
	case f.IsRename:
		fc.Status = StatusRenamed
	default:
		fc.Status = StatusModified
	}

	fc.Path = f.NewName
	if fc.Status == StatusDeleted || fc.Path == "" {
		fc.Path = f.OldName
	}
	if fc.Status == StatusRenamed {
		fc.OldPath = f.OldName
	}

	for _, frag := range f.TextFragments {
		h := Hunk{
			OldStart: int(frag.OldPosition),
			OldCount: int(frag.OldLines),
			NewStart: int(frag.NewPosition),
			NewCount: int(frag.NewLines),
		}
		for _, line := range frag.Lines {
			text := strings.TrimSuffix(line.Line, "\n")
			switch line.Op {
			case gitdiff.OpAdd:
				h.Added = append(h.Added, text)
				fc.Added++
			case gitdiff.OpDelete:
				h.Removed = append(h.Removed, text)
				fc.Removed++
			}
		}
		fc.Hunks = append(fc.Hunks, h)
	}

	return fc
}

var (
	diffHeaderRe = regexp.MustCompile(`^diff --git (?:a/)?(\S+) (?:b/)?(\S+)`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
)

// lenientParse scans the diff line by line. File headers always open a new
// file; hunk headers that fail to parse are skipped but the file survives
// with whatever hunks did parse.
func lenientParse(raw string) []FileChange {
	var files []FileChange
	var cur *FileChange
	var hunk *Hunk
	inHunk := false

	closeHunk := func() {
		if cur != nil && hunk != nil {
			cur.Hunks = append(cur.Hunks, *hunk)
		}
		hunk = nil
		inHunk = false
	}
	closeFile := func() {
		closeHunk()
		if cur != nil {
			files = append(files, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := diffHeaderRe.FindStringSubmatch(line); m != nil {
			closeFile()
			cur = &FileChange{Path: m[2], Status: StatusModified}
			continue
		}
		if cur == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "new file mode"):
			cur.Status = StatusAdded
		case strings.HasPrefix(line, "deleted file mode"):
			cur.Status = StatusDeleted
		case strings.HasPrefix(line, "rename from "):
			cur.Status = StatusRenamed
			cur.OldPath = strings.TrimPrefix(line, "rename from ")
		case strings.HasPrefix(line, "rename to "):
			cur.Status = StatusRenamed
			cur.Path = strings.TrimPrefix(line, "rename to ")
		case strings.HasPrefix(line, "Binary files ") || strings.HasPrefix(line, "GIT binary patch"):
			cur.Status = StatusBinary
			closeHunk()
		case strings.HasPrefix(line, "@@"):
			closeHunk()
			m := hunkHeaderRe.FindStringSubmatch(line)
			if m == nil {
				// Malformed hunk header: drop lines until the next
				// recognizable boundary.
				continue
			}
			hunk = &Hunk{
				OldStart: atoiDefault(m[1], 0),
				OldCount: atoiDefault(m[2], 1),
				NewStart: atoiDefault(m[3], 0),
				NewCount: atoiDefault(m[4], 1),
			}
			inHunk = true
		case inHunk && strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			hunk.Added = append(hunk.Added, line[1:])
			cur.Added++
		case inHunk && strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			hunk.Removed = append(hunk.Removed, line[1:])
			cur.Removed++
		}
	}
	closeFile()

	return files
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
