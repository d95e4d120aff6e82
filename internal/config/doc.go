// Package config builds the effective comet configuration.
//
// Merge order is defaults <- config file <- COMET_* environment variables <-
// CLI flag overrides. The result is an explicit Config struct passed into
// each component's entry point; nothing reads ambient state after Load
// returns, which keeps the pipeline deterministic under test.
//
// The config file is JSON at $XDG_CONFIG_HOME/comet/config.json (or the OS
// equivalent).
package config
