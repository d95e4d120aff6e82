// Package cache is a content-addressed store mapping a diff fingerprint to a
// previously generated commit message.
//
// The fingerprint is a SHA-256 hash over the redacted diff text and every
// generation-affecting option (style, explain flag, target model), so two
// invocations with identical inputs hit the same entry and the external model
// is called at most once per fingerprint. Entries are immutable JSON files,
// one per key, written atomically via a temp file and rename; concurrent
// writers to the same key settle on last-write-wins without ever exposing a
// partial entry. Expired or evicted entries behave exactly like a miss.
//
// The default directory is $XDG_CACHE_HOME/comet (or the OS equivalent). All
// cached payloads have already been through secret redaction.
package cache
