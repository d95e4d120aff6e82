// Package cli wires together the Cobra command tree for the comet binary.
//
// It defines the root command and all subcommands (generate, risk, groups,
// config, cache, hook, version), binds flags, reads configuration, invokes
// the generation pipeline, and returns deterministic exit codes for hooks
// and scripting.
package cli
