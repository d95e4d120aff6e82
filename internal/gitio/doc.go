// Package gitio shells out to git for diffs and repository context.
//
// It collects the staged diff (or a revision range), the current branch,
// repository name, and recent commit subjects used as tone context for the
// model prompt, and writes the final commit when asked.
package gitio
