package transcode

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"dragonfly/internal/config"
	"dragonfly/internal/logging"
	"dragonfly/internal/testsupport"
)

func seedLibrary(t *testing.T, cfg *config.Config, movies, episodes int) []string {
	t.Helper()
	var files []string
	for i := 0; i < movies; i++ {
		path := filepath.Join(cfg.MoviesRoot(), filepath.Base(t.Name())+"-movie-"+string(rune('a'+i))+".mkv")
		testsupport.WriteFile(t, path, 64)
		files = append(files, path)
	}
	for i := 0; i < episodes; i++ {
		path := filepath.Join(cfg.TVRoot(), "show", "season 1", "episode-"+string(rune('a'+i))+".avi")
		testsupport.WriteFile(t, path, 64)
		files = append(files, path)
	}
	return files
}

func TestConvertAllReport(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithConcurrency(2),
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)
	seedLibrary(t, cfg, 2, 1)

	coordinator := NewCoordinator(cfg, logging.NewNop())
	report, err := coordinator.ConvertAll(context.Background())
	if err != nil {
		t.Fatalf("ConvertAll: %v", err)
	}

	if report.Total != 3 || report.Converted != 3 || report.Failed != 0 || report.Skipped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
	if report.RunID == "" {
		t.Fatal("report missing run ID")
	}
	if coordinator.State() != StateComplete {
		t.Fatalf("state = %s", coordinator.State())
	}
}

func TestConvertAllIdempotentSecondRun(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineSucceed)),
	)
	seedLibrary(t, cfg, 1, 1)

	coordinator := NewCoordinator(cfg, logging.NewNop())
	first, err := coordinator.ConvertAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Converted != 2 || first.Skipped != 0 {
		t.Fatalf("first run: %+v", first)
	}

	// Sources were deleted, so the second scan finds nothing at all.
	second, err := coordinator.ConvertAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Total != 0 || second.Converted != 0 {
		t.Fatalf("second run: %+v", second)
	}
}

func TestConvertAllCountsSkipsAsConverted(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineFail)),
	)
	files := seedLibrary(t, cfg, 1, 0)
	// Pre-existing target: the worker must skip without invoking the failing
	// engine.
	testsupport.WriteFile(t, files[0][:len(files[0])-len(".mkv")]+".mp4", 64)

	coordinator := NewCoordinator(cfg, logging.NewNop())
	report, err := coordinator.ConvertAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Total != 1 || report.Converted != 1 || report.Skipped != 1 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Deleted() != 0 {
		t.Fatalf("skip must not count as deleted: %+v", report)
	}
}

func TestConvertAllAggregatesFailuresWithoutAborting(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithConcurrency(2),
		testsupport.WithFFmpegBinary(testsupport.StubEngine(t, testsupport.EngineFail)),
	)
	seedLibrary(t, cfg, 3, 0)

	coordinator := NewCoordinator(cfg, logging.NewNop())
	report, err := coordinator.ConvertAll(context.Background())
	if err != nil {
		t.Fatalf("a per-file failure must not fail the run: %v", err)
	}
	if report.Total != 3 || report.Failed != 3 || report.Converted != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Errors) != 3 {
		t.Fatalf("expected 3 bounded error entries, got %v", report.Errors)
	}
}

func TestConvertAllEmptyLibrary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	// Library roots never created: scanner returns nothing.
	coordinator := NewCoordinator(cfg, logging.NewNop())
	report, err := coordinator.ConvertAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Total != 0 || report.Converted != 0 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if coordinator.State() != StateComplete {
		t.Fatalf("state = %s", coordinator.State())
	}
}

func TestConvertAllHonorsConcurrencyLimit(t *testing.T) {
	const limit = 2
	cfg := testsupport.NewConfig(t, testsupport.WithConcurrency(limit))
	seedLibrary(t, cfg, 4, 4)

	coordinator := NewCoordinator(cfg, logging.NewNop())

	var active, peak int64
	coordinator.convert = func(_ context.Context, file string) Outcome {
		now := atomic.AddInt64(&active, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if now <= old || atomic.CompareAndSwapInt64(&peak, old, now) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return Outcome{Source: file, Kind: OutcomeSuccess}
	}

	report, err := coordinator.ConvertAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Total != 8 || report.Converted != 8 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if got := atomic.LoadInt64(&peak); got > limit {
		t.Fatalf("observed %d simultaneous workers, limit %d", got, limit)
	}
}

func TestConvertAllRejectsOverlappingRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedLibrary(t, cfg, 1, 0)

	coordinator := NewCoordinator(cfg, logging.NewNop())
	release := make(chan struct{})
	started := make(chan struct{})
	coordinator.convert = func(_ context.Context, file string) Outcome {
		close(started)
		<-release
		return Outcome{Source: file, Kind: OutcomeSuccess}
	}

	done := make(chan error, 1)
	go func() {
		_, err := coordinator.ConvertAll(context.Background())
		done <- err
	}()

	<-started
	if _, err := coordinator.ConvertAll(context.Background()); err != ErrRunActive {
		t.Fatalf("expected ErrRunActive, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotDuringRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedLibrary(t, cfg, 2, 0)

	coordinator := NewCoordinator(cfg, logging.NewNop())
	if snap := coordinator.Snapshot(); snap.Total != 0 {
		t.Fatalf("expected zero snapshot before any run: %+v", snap)
	}

	inWorker := make(chan struct{}, 2)
	release := make(chan struct{})
	coordinator.convert = func(_ context.Context, file string) Outcome {
		inWorker <- struct{}{}
		<-release
		return Outcome{Source: file, Kind: OutcomeSuccess}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := coordinator.ConvertAll(context.Background()); err != nil {
			t.Error(err)
		}
	}()

	<-inWorker
	snap := coordinator.Snapshot()
	if snap.Total != 2 {
		t.Fatalf("snapshot total = %d", snap.Total)
	}
	if len(snap.InFlight) == 0 {
		t.Fatal("expected at least one in-flight file")
	}
	close(release)
	<-done

	final := coordinator.Snapshot()
	if len(final.InFlight) != 0 {
		t.Fatalf("in-flight set not cleared at run end: %v", final.InFlight)
	}
	if final.Percent != 100 {
		t.Fatalf("final percent = %v", final.Percent)
	}
}
