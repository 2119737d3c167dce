package transcode

import (
	"sort"
	"sync"
)

// Tracker holds the live state of one run. All mutation happens through the
// coordinator and its workers under the single internal mutex; no I/O is
// ever performed while it is held.
type Tracker struct {
	mu        sync.Mutex
	total     int
	completed int
	failed    int
	inFlight  map[string]struct{}
	errors    []string
}

// Snapshot is a consistent read-only copy of run progress.
type Snapshot struct {
	Total     int
	Completed int
	Failed    int
	InFlight  []string
	Errors    []string
	// Percent is (completed+failed)/total expressed as 0..100, zero when the
	// run has no files.
	Percent float64
}

func newTracker(total int) *Tracker {
	return &Tracker{
		total:    total,
		inFlight: make(map[string]struct{}),
	}
}

// begin records that a worker is starting on file.
func (t *Tracker) begin(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight[file] = struct{}{}
}

// finish records a worker's outcome. The in-flight entry and the counter
// update happen under one lock acquisition so no reader can observe a file
// both in flight and counted.
func (t *Tracker) finish(outcome Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, outcome.Source)
	if outcome.Kind == OutcomeFailed {
		t.failed++
		if outcome.Message != "" {
			t.errors = append(t.errors, outcome.Source+": "+outcome.Message)
		}
		return
	}
	t.completed++
}

// clear empties the in-flight set at run end.
func (t *Tracker) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = make(map[string]struct{})
}

// Snapshot returns a consistent copy of the current progress.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	inFlight := make([]string, 0, len(t.inFlight))
	for file := range t.inFlight {
		inFlight = append(inFlight, file)
	}
	sort.Strings(inFlight)

	snap := Snapshot{
		Total:     t.total,
		Completed: t.completed,
		Failed:    t.failed,
		InFlight:  inFlight,
		Errors:    append([]string(nil), t.errors...),
	}
	if t.total > 0 {
		snap.Percent = float64(t.completed+t.failed) / float64(t.total) * 100
	}
	return snap
}
