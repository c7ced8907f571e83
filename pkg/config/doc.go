// Package config handles configuration management for retarget.
// It layers embedded defaults, an optional user file (TOML or YAML),
// RETARGET_ environment variables and command-line overrides.
package config
