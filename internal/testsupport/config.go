// Package testsupport provides shared helpers for package tests: temp-dir
// configs, fixture files, and stub engine binaries.
package testsupport

import (
	"path/filepath"
	"testing"

	"dragonfly/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The media root and log dir live under t.TempDir; library subdirectories
// are not created so scanner edge cases stay reachable.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MediaRoot = filepath.Join(base, "media")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Transcode.Concurrency = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithConcurrency sets the worker pool size on the test config.
func WithConcurrency(n int) ConfigOption {
	return func(c *config.Config) {
		c.Transcode.Concurrency = n
	}
}

// WithFFmpegBinary points the engine invocation at the given binary.
func WithFFmpegBinary(path string) ConfigOption {
	return func(c *config.Config) {
		c.Transcode.FFmpegBinary = path
	}
}
