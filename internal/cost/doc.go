// Package cost estimates the token count and dollar cost of sending a
// redacted diff to a hosted model, and enforces a caller-supplied spending
// ceiling before any network call happens.
//
// Token counts derive from payload length via a characters-per-token ratio
// chosen by model family; dollar estimates multiply by a per-1K-token price
// table. Both tables are policy defaults, not provider-published truth, and
// are documented on the values themselves.
package cost
