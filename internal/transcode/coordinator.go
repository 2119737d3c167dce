package transcode

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"dragonfly/internal/config"
	"dragonfly/internal/ffmpeg"
	"dragonfly/internal/library"
	"dragonfly/internal/logging"
)

// State describes where a run currently is in its lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateScanning    State = "scanning"
	StateDispatching State = "dispatching"
	StateDraining    State = "draining"
	StateComplete    State = "complete"
)

// ErrRunActive is returned when a second run is started while one is still
// in progress. A coordinator owns at most one run at a time.
var ErrRunActive = errors.New("a conversion run is already active")

// Coordinator dispatches conversion workers over the configured library
// roots with a bounded slot pool and aggregates their outcomes.
type Coordinator struct {
	cfg    *config.Config
	logger *slog.Logger
	worker *Worker

	// convert is the per-file conversion entry point; tests substitute it to
	// exercise dispatch behavior without shelling out.
	convert func(context.Context, string) Outcome

	mu      sync.Mutex
	state   State
	tracker *Tracker
	runID   string
}

// NewCoordinator builds a coordinator from configuration. The worker pool
// size comes from transcode.concurrency; zero selects one less than the CPU
// count, minimum one.
func NewCoordinator(cfg *config.Config, logger *slog.Logger) *Coordinator {
	runner := ffmpeg.NewRunner(cfg.Transcode.FFmpegBinary, cfg.Transcode.AudioBitrate)
	c := &Coordinator{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "coordinator"),
		worker: NewWorker(runner, logger),
		state:  StateIdle,
	}
	c.convert = c.worker.Convert
	return c
}

// State returns the lifecycle state of the current (or last) run.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns progress of the active run, or a zero snapshot when no
// run has started.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	tracker := c.tracker
	c.mu.Unlock()
	if tracker == nil {
		return Snapshot{}
	}
	return tracker.Snapshot()
}

// PoolSize resolves the configured concurrency limit to the effective number
// of slots.
func (c *Coordinator) PoolSize() int {
	if n := c.cfg.Transcode.Concurrency; n > 0 {
		return n
	}
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

// Candidates scans both library roots and merges the results: movies one
// level deep, TV recursively.
func (c *Coordinator) Candidates() ([]string, error) {
	movies, err := library.Scan(c.cfg.MoviesRoot(), false)
	if err != nil {
		return nil, err
	}
	episodes, err := library.Scan(c.cfg.TVRoot(), true)
	if err != nil {
		return nil, err
	}
	return append(movies, episodes...), nil
}

// beginRun transitions Idle -> Scanning and claims the coordinator for one
// run. It returns the run ID.
func (c *Coordinator) beginRun() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateIdle, StateComplete:
	default:
		return "", ErrRunActive
	}
	c.state = StateScanning
	c.runID = uuid.NewString()
	c.tracker = nil
	return c.runID, nil
}

func (c *Coordinator) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Coordinator) setTracker(tracker *Tracker) {
	c.mu.Lock()
	c.tracker = tracker
	c.mu.Unlock()
}

// ConvertAll runs the full batch under the configured concurrency limit and
// blocks until every file has a terminal outcome. One worker's failure never
// aborts its siblings; failures surface only in the report's aggregate
// counts and bounded error list.
func (c *Coordinator) ConvertAll(ctx context.Context) (Report, error) {
	runID, err := c.beginRun()
	if err != nil {
		return Report{}, err
	}
	logger := c.logger.With(logging.String(logging.FieldRunID, runID))
	started := time.Now()

	files, err := c.Candidates()
	if err != nil {
		c.setState(StateComplete)
		return Report{}, err
	}

	tracker := newTracker(len(files))
	c.setTracker(tracker)
	report := Report{RunID: runID, Total: len(files)}

	logger.Info("starting conversion run",
		logging.Int(logging.FieldTotal, len(files)),
		logging.Int("pool_size", c.PoolSize()),
	)

	c.setState(StateDispatching)

	var (
		wg       sync.WaitGroup
		reportMu sync.Mutex
		slots    = make(chan struct{}, c.PoolSize())
	)
	for _, file := range files {
		slots <- struct{}{} // admission: blocks until a pool slot frees
		wg.Add(1)
		go func(file string) {
			defer wg.Done()
			defer func() { <-slots }()

			tracker.begin(file)
			outcome := c.convert(ctx, file)
			tracker.finish(outcome)

			reportMu.Lock()
			report.record(outcome)
			reportMu.Unlock()
		}(file)
	}

	c.setState(StateDraining)
	wg.Wait()

	tracker.clear()
	report.Elapsed = time.Since(started)
	c.setState(StateComplete)

	logger.Info("conversion run complete",
		logging.Int(logging.FieldTotal, report.Total),
		logging.Int(logging.FieldConverted, report.Converted),
		logging.Int(logging.FieldFailed, report.Failed),
		logging.Int(logging.FieldSkipped, report.Skipped),
		logging.Duration(logging.FieldDuration, report.Elapsed),
	)
	return report, nil
}

// ConvertAllStreaming runs the batch sequentially and returns a finite,
// non-restartable event feed in strict chronological order. Processing one
// file at a time trades throughput for a deterministic interleaving: every
// ConvertingEvent is immediately followed by its own terminal event before
// the next file begins. The channel is unbuffered so a slow consumer
// back-pressures the run; it is closed after the CompleteEvent. If the
// context is cancelled the feed stops early without a CompleteEvent.
func (c *Coordinator) ConvertAllStreaming(ctx context.Context) (<-chan Event, error) {
	runID, err := c.beginRun()
	if err != nil {
		return nil, err
	}
	logger := c.logger.With(logging.String(logging.FieldRunID, runID))

	files, err := c.Candidates()
	if err != nil {
		c.setState(StateComplete)
		return nil, err
	}

	tracker := newTracker(len(files))
	c.setTracker(tracker)

	events := make(chan Event)
	go func() {
		defer close(events)
		defer c.setState(StateComplete)
		defer tracker.clear()

		emit := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit(StartEvent{Total: len(files)}) {
			return
		}

		c.setState(StateDispatching)
		var converted, deleted, failed int
		for i, file := range files {
			if !emit(ConvertingEvent{File: file, Index: i + 1, Total: len(files)}) {
				return
			}

			tracker.begin(file)
			outcome := c.convert(ctx, file)
			tracker.finish(outcome)

			switch outcome.Kind {
			case OutcomeFailed:
				failed++
				if !emit(ErrorEvent{File: file, Error: outcome.Message}) {
					return
				}
			case OutcomeSkipped:
				converted++
				if !emit(ConvertedEvent{File: file}) {
					return
				}
			case OutcomeSuccess:
				converted++
				deleted++
				if !emit(ConvertedEvent{File: file}) {
					return
				}
				if !emit(DeletedEvent{File: file}) {
					return
				}
			}
		}

		c.setState(StateDraining)
		logger.Info("streaming run complete",
			logging.Int(logging.FieldConverted, converted),
			logging.Int(logging.FieldFailed, failed),
		)
		emit(CompleteEvent{Converted: converted, Deleted: deleted, Errors: failed})
	}()

	return events, nil
}
