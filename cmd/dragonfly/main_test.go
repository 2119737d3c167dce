package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dragonfly/internal/library"
	"dragonfly/internal/testsupport"
)

func TestConvertCommandBatch(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)
	source := seedSource(t, env.cfg, "heat.mkv")

	out, _, err := runCLI(t, []string{"convert"}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Converted")

	if _, err := os.Stat(library.TargetPath(source)); err != nil {
		t.Fatalf("expected converted output: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("expected source removed, stat err = %v", err)
	}
}

func TestConvertCommandReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineFail)),
	)
	seedSource(t, env.cfg, "broken.avi")

	out, _, err := runCLI(t, []string{"convert"}, env.configPath)
	if err == nil {
		t.Fatal("expected convert to report failure")
	}
	requireContains(t, out, "error:")
	requireContains(t, err.Error(), "1 of 1 conversions failed")
}

func TestConvertCommandFollow(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)
	seedSource(t, env.cfg, "ronin.mkv")

	out, _, err := runCLI(t, []string{"convert", "--follow"}, env.configPath)
	if err != nil {
		t.Fatalf("convert --follow: %v", err)
	}
	requireContains(t, out, "found 1 file(s) to convert")
	requireContains(t, out, "[1/1] converting ronin.mkv")
	requireContains(t, out, "done: ronin.mkv")
	requireContains(t, out, "removed source: ronin.mkv")
	requireContains(t, out, "complete: 1 converted, 1 deleted, 0 error(s)")
}

func TestScanCommandListsCandidatesAndDeletable(t *testing.T) {
	env := setupCLITestEnv(t)
	seedSource(t, env.cfg, "pending.mkv")
	superseded := seedSource(t, env.cfg, "finished.avi")
	testsupport.WriteFile(t, library.TargetPath(superseded), 32)

	out, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "To convert:")
	requireContains(t, out, "pending.mkv")
	requireContains(t, out, "safe to delete")
	requireContains(t, out, "finished.avi")

	// Dry run leaves everything in place.
	if _, err := os.Stat(superseded); err != nil {
		t.Fatalf("scan must not touch files: %v", err)
	}
}

func TestScanCommandEmptyLibrary(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "nothing to do")
}

func TestStatusCommandReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Transcoding engine")
	requireContains(t, out, "yes")
}

func TestStatusCommandFailsWithoutEngine(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithFFmpegBinary(filepath.Join(t.TempDir(), "missing-engine")),
	)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err == nil {
		t.Fatal("expected status to fail when the engine binary is missing")
	}
	requireContains(t, out, "no")
	requireContains(t, err.Error(), "not ready")
}

func TestConvertCommandJobsFlag(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)
	seedSource(t, env.cfg, "a.mkv")
	seedSource(t, env.cfg, "b.mkv")

	out, _, err := runCLI(t, []string{"convert", "--jobs", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("convert --jobs: %v", err)
	}
	requireContains(t, out, "Converted")

	entries, err := os.ReadDir(env.cfg.MoviesRoot())
	if err != nil {
		t.Fatalf("read movies dir: %v", err)
	}
	var targets int
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".mp4") {
			targets++
		}
	}
	if targets != 2 {
		t.Fatalf("expected 2 converted files, found %d", targets)
	}
}
