package group

import (
	"fmt"
	"path"
	"strings"

	"github.com/comet-cli/comet/internal/diffparse"
)

// DefaultSoftCap is the per-group size limit in characters. It is a policy
// default: large enough that one oversized config file does not shatter into
// meaningless single-file groups, small enough to keep groups reviewable.
const DefaultSoftCap = 32000

// Group is one suggested commit: a disjoint subset of the change set's files.
type Group struct {
	Files      []string `json:"files"`
	ApproxSize int      `json:"approxSize"`
	Subject    string   `json:"subject"`
}

// Needed reports whether the diff is large enough to benefit from splitting.
func Needed(rawLen, threshold int) bool {
	return rawLen > threshold
}

type builder struct {
	files []diffparse.FileChange
	size  int
}

func (b *builder) topDirs() map[string]bool {
	m := make(map[string]bool)
	for _, f := range b.files {
		m[topDir(f.Path)] = true
	}
	return m
}

func (b *builder) exts() map[string]bool {
	m := make(map[string]bool)
	for _, f := range b.files {
		m[path.Ext(f.Path)] = true
	}
	return m
}

// Split partitions the change set into groups under softCap characters each
// (soft: a single file may exceed it alone). An empty change set yields nil.
func Split(cs *diffparse.ChangeSet, softCap int) []Group {
	if cs == nil || len(cs.Files) == 0 {
		return nil
	}
	if softCap <= 0 {
		softCap = DefaultSoftCap
	}

	var builders []*builder
	for _, f := range cs.Files {
		size := fileSize(f)
		placed := false
		for _, b := range builders {
			if b.size+size > softCap {
				continue
			}
			if b.topDirs()[topDir(f.Path)] || b.exts()[path.Ext(f.Path)] {
				b.files = append(b.files, f)
				b.size += size
				placed = true
				break
			}
		}
		if !placed {
			builders = append(builders, &builder{files: []diffparse.FileChange{f}, size: size})
		}
	}

	groups := make([]Group, 0, len(builders))
	for _, b := range builders {
		g := Group{ApproxSize: b.size, Subject: subjectFor(b.files)}
		for _, f := range b.files {
			g.Files = append(g.Files, f.Path)
		}
		groups = append(groups, g)
	}
	return groups
}

func fileSize(f diffparse.FileChange) int {
	n := 0
	for i := range f.Hunks {
		n += f.Hunks[i].Size()
	}
	// Binary files carry no hunks; charge a nominal size so they still
	// count against the cap.
	if f.Status == diffparse.StatusBinary && n == 0 {
		n = 64
	}
	return n
}

func topDir(p string) string {
	if i := strings.IndexByte(p, '/'); i > 0 {
		return p[:i]
	}
	return "."
}

// subjectFor derives a short label from the group's dominant directory or
// extension. It is a staging hint, not a full commit message.
func subjectFor(files []diffparse.FileChange) string {
	dirs := make(map[string]int)
	exts := make(map[string]int)
	for _, f := range files {
		dirs[topDir(f.Path)]++
		exts[path.Ext(f.Path)]++
	}

	dir, dirCount := dominant(dirs)
	if dir != "." && dirCount*2 >= len(files) {
		return fmt.Sprintf("Update %s/", dir)
	}
	ext, extCount := dominant(exts)
	if ext != "" && extCount*2 >= len(files) {
		return fmt.Sprintf("Update %s files", ext)
	}
	if dir != "." {
		return fmt.Sprintf("Update %s/", dir)
	}
	return "Update project files"
}

// dominant returns the most frequent key, breaking ties lexicographically so
// output is deterministic.
func dominant(counts map[string]int) (string, int) {
	best, bestCount := "", 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best, bestCount
}
