// Package redact replaces secrets in diff content with typed placeholders
// before anything is sent to an LLM provider.
//
// Detection uses an ordered registry of regex detectors, each tagged with a
// secret kind: cloud access keys, API key and token assignments, JWTs, PEM
// private key blocks, database connection URIs with embedded credentials,
// .env-style assignments, and provider-specific token shapes (GitHub, Slack,
// Anthropic, OpenAI). Detectors run per line; overlapping matches resolve by
// longest match. Matched spans are substituted in place, so redaction never
// removes or reorders lines, and re-running it on already-redacted text is a
// no-op.
//
// This is best-effort pattern matching, not a security boundary.
package redact
