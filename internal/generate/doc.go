// Package generate runs the local diff-intelligence pipeline and produces a
// commit message.
//
// The flow is: parse -> redact -> risk assessment and cost estimation (run
// concurrently; both are pure) -> cache lookup by fingerprint -> on miss,
// the cost ceiling check, then a generation strategy produces the message ->
// write-through cache. A cache hit costs nothing, so the ceiling only gates
// actual model calls. The strategy is an interface with two variants: the
// external-model client and the offline heuristic, which keeps the cache
// fully decoupled from which generator produced the message.
//
// The cost ceiling is enforced strictly before any network-bound step, and no
// cache entry is ever written for a failed model call. Cache IO failures
// degrade to uncached operation instead of failing the run.
package generate
