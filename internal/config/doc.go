// Package config loads and validates the dragonfly configuration file.
//
// Configuration is TOML, resolved from an explicit path,
// ~/.config/dragonfly/config.toml, or a project-local dragonfly.toml. Loading
// always starts from repository defaults, then normalizes paths (tilde
// expansion, absolute cleanup) and validates the result so the rest of the
// pipeline can assume well-formed values.
package config
