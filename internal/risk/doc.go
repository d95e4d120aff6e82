// Package risk scores a change set for safety and operational risk.
//
// Each signal is an independent predicate over the parsed change set or the
// redaction findings. Fired signals contribute fixed weights; the total is
// clamped to [0, 1], so the score is monotonically non-decreasing as more
// signals fire. The checklist maps each fired signal to one fixed review
// prompt, in signal evaluation order, with duplicates collapsed.
//
// Weights and thresholds are policy, carried in a Weights/Thresholds pair so
// tests and callers can pin them; DefaultWeights documents the shipped values.
package risk
