// Comet is a CLI that turns staged git changes into commit messages.
//
// It parses the staged diff, redacts secrets before anything leaves the
// machine, scores the change for risk, estimates the LLM spend against a
// hard ceiling, and generates a message with an LLM provider or an offline
// heuristic. Results are cached by content fingerprint so repeated runs on
// the same staged state cost nothing.
//
// Usage:
//
//	comet generate                    # message for staged changes
//	comet generate "fix login bug"    # with a stated purpose
//	comet generate --no-llm           # offline heuristic only
//	comet risk --check                # gate a commit on risk score
//	comet groups                      # split a sprawling diff into commits
//	comet hook install                # prepare-commit-msg integration
//
// See https://github.com/comet-cli/comet for full documentation.
package main
