package api

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"dragonfly/internal/logging"
	"dragonfly/internal/testsupport"
	"dragonfly/internal/transcode"
)

func TestScanLibraryPartitionsCandidates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	pending := filepath.Join(cfg.MoviesRoot(), "new.mkv")
	superseded := filepath.Join(cfg.MoviesRoot(), "old.avi")
	testsupport.WriteFile(t, pending, 100)
	testsupport.WriteFile(t, superseded, 50)
	testsupport.WriteFile(t, filepath.Join(cfg.MoviesRoot(), "old.mp4"), 40)
	testsupport.WriteFile(t, filepath.Join(cfg.TVRoot(), "show", "e1.mkv"), 25)

	result, err := ScanLibrary(cfg)
	if err != nil {
		t.Fatalf("ScanLibrary: %v", err)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("candidates: %+v", result.Candidates)
	}
	if result.CandidateBytes != 125 {
		t.Fatalf("candidate bytes = %d", result.CandidateBytes)
	}
	if len(result.Deletable) != 1 || result.Deletable[0].Path != superseded {
		t.Fatalf("deletable: %+v", result.Deletable)
	}
	if result.DeletableBytes != 50 {
		t.Fatalf("deletable bytes = %d", result.DeletableBytes)
	}
}

func TestScanLibraryEmptyRoots(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	result, err := ScanLibrary(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Candidates) != 0 || len(result.Deletable) != 0 {
		t.Fatalf("expected empty result: %+v", result)
	}
}

func TestSessionConvert(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)
	testsupport.WriteFile(t, filepath.Join(cfg.MoviesRoot(), "a.mkv"), 64)

	session, err := NewSession(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	report, err := session.Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if report.Total != 1 || report.Converted != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if session.State() != transcode.StateComplete {
		t.Fatalf("state = %s", session.State())
	}
}

func TestSessionLockExcludesConcurrentRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := NewSession(cfg, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := first.acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer first.release()

	second, err := NewSession(cfg, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := second.Convert(context.Background()); !errors.Is(err, ErrLibraryLocked) {
		t.Fatalf("expected ErrLibraryLocked, got %v", err)
	}
}

func TestSessionConvertStreamReleasesLock(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)
	testsupport.WriteFile(t, filepath.Join(cfg.MoviesRoot(), "a.mkv"), 64)

	session, err := NewSession(cfg, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	events, err := session.ConvertStream(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var sawComplete bool
	for ev := range events {
		if _, ok := ev.(transcode.CompleteEvent); ok {
			sawComplete = true
		}
	}
	if !sawComplete {
		t.Fatal("missing complete event")
	}

	// Feed closed; the lock must be free for the next run.
	if _, err := session.Convert(context.Background()); err != nil {
		t.Fatalf("lock not released after stream: %v", err)
	}
}
