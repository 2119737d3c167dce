package transcode

import "time"

// Report is the terminal aggregate of one run. It is a snapshot: nothing
// mutates it after the coordinator returns it.
type Report struct {
	RunID string
	Total int
	// Converted counts successes plus skips so that Converted+Failed always
	// equals Total.
	Converted int
	Failed    int
	// Skipped is the subset of Converted whose target already existed.
	Skipped int
	Errors  []string
	Elapsed time.Duration
}

// Deleted returns how many source files were removed: every success, never
// a skip.
func (r Report) Deleted() int {
	return r.Converted - r.Skipped
}

func (r *Report) record(outcome Outcome) {
	switch outcome.Kind {
	case OutcomeSuccess:
		r.Converted++
	case OutcomeSkipped:
		r.Converted++
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
		if outcome.Message != "" {
			r.Errors = append(r.Errors, outcome.Source+": "+outcome.Message)
		}
	}
}
