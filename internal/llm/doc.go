// Package llm adapts hosted and local language models behind a single Client
// interface for commit message generation.
//
// The adapter contract is deliberately thin: the caller supplies an
// already-redacted diff plus style options and gets plain message text back.
// No provider-specific request body ever leaves this package.
//
// Failures are typed: *QuotaError for rate/quota rejections (retried with
// exponential backoff), *TransportError for network and server-side failures
// (retryable by the caller), and auth errors which are never retried. The
// pipeline never writes a cache entry for a failed call.
package llm
