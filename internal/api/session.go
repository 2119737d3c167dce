package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"dragonfly/internal/config"
	"dragonfly/internal/transcode"
)

// ErrLibraryLocked is returned when another process already holds the
// conversion lock for this library.
var ErrLibraryLocked = errors.New("another conversion run holds the library lock")

// Session binds one caller to one coordinator and the cross-process library
// lock. Create a session per logical consumer; its Progress and State
// methods observe whatever run the session has started.
type Session struct {
	cfg         *config.Config
	coordinator *transcode.Coordinator
	lock        *flock.Flock
}

// NewSession prepares a conversion session. The log directory is created
// eagerly because it hosts the lock file.
func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("session requires configuration")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return &Session{
		cfg:         cfg,
		coordinator: transcode.NewCoordinator(cfg, logger),
		lock:        flock.New(filepath.Join(cfg.Paths.LogDir, "dragonfly.lock")),
	}, nil
}

// Convert runs the full batch under the library lock and blocks until the
// run completes.
func (s *Session) Convert(ctx context.Context) (transcode.Report, error) {
	if err := s.acquire(); err != nil {
		return transcode.Report{}, err
	}
	defer s.release()
	return s.coordinator.ConvertAll(ctx)
}

// ConvertStream runs the sequential streaming conversion under the library
// lock. The lock is released when the event feed closes.
func (s *Session) ConvertStream(ctx context.Context) (<-chan transcode.Event, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	events, err := s.coordinator.ConvertAllStreaming(ctx)
	if err != nil {
		s.release()
		return nil, err
	}

	relay := make(chan transcode.Event)
	go func() {
		defer close(relay)
		defer s.release()
		for ev := range events {
			relay <- ev
		}
	}()
	return relay, nil
}

// Progress returns a consistent snapshot of the session's active run.
func (s *Session) Progress() transcode.Snapshot {
	return s.coordinator.Snapshot()
}

// State returns the lifecycle state of the session's run.
func (s *Session) State() transcode.State {
	return s.coordinator.State()
}

func (s *Session) acquire() error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return ErrLibraryLocked
	}
	return nil
}

func (s *Session) release() {
	_ = s.lock.Unlock()
}
