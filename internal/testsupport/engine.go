package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// EngineBehavior selects what a stub engine binary does when invoked.
type EngineBehavior int

const (
	// EngineSucceed writes a non-empty output file and exits zero.
	EngineSucceed EngineBehavior = iota
	// EngineFail writes diagnostics to stderr and exits non-zero without
	// creating an output file.
	EngineFail
	// EngineFailPartial writes a partial output file before exiting non-zero.
	EngineFailPartial
	// EngineEmptyOutput exits zero but leaves a zero-byte output file.
	EngineEmptyOutput
)

// StubEngine writes a shell script that mimics the transcoding engine. The
// script treats its final argument as the output path, matching the real
// invocation shape. It returns the script path for use as the engine binary.
func StubEngine(t testing.TB, behavior EngineBehavior) string {
	t.Helper()

	var body string
	switch behavior {
	case EngineSucceed:
		body = "for out; do :; done\nprintf converted > \"$out\"\nexit 0\n"
	case EngineFail:
		body = "echo \"Invalid data found when processing input\" >&2\nexit 1\n"
	case EngineFailPartial:
		body = "for out; do :; done\nprintf partial > \"$out\"\necho \"muxing failed\" >&2\nexit 1\n"
	case EngineEmptyOutput:
		body = "for out; do :; done\n: > \"$out\"\nexit 0\n"
	default:
		t.Fatalf("unknown engine behavior %d", behavior)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub engine: %v", err)
	}
	return path
}
