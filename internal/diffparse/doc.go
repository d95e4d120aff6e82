// Package diffparse turns raw unified-diff text into a structured change set.
//
// Parsing is a two-stage affair: go-gitdiff handles well-formed diffs, and a
// lenient line scanner takes over when go-gitdiff rejects the input. The
// scanner records every file it can identify from file headers and skips
// malformed hunk headers, so partial information is preserved rather than
// failing the whole parse. Input that contains no recognizable file header at
// all produces a ParseError.
package diffparse
