// Package group partitions a large change set into commit-sized groups.
//
// Files are walked in diff order and clustered greedily: a file joins the
// first group that shares its top-level directory or extension and still has
// room under the per-group soft cap; otherwise it starts a new group. Every
// file lands in exactly one group, and group order follows the first
// appearance of each group's files in the diff. A single file larger than the
// soft cap still gets a group of its own.
//
// Suggested subjects come from the dominant path segment or extension of the
// group; no model call is involved, so grouping is fully local and
// deterministic.
package group
