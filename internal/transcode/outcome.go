package transcode

// OutcomeKind classifies the terminal result of one file's conversion
// attempt.
type OutcomeKind string

const (
	// OutcomeSuccess means the output was created and the source deleted.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeSkipped means the target already existed; the source is left
	// untouched. Skips count as converted in aggregate totals so re-running
	// a batch over converted files is a no-op.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeFailed means the engine failed, the output did not verify, or a
	// filesystem operation failed. The source is never deleted on failure.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the immutable record of one conversion attempt.
type Outcome struct {
	Source string
	Target string
	Kind   OutcomeKind
	// Err carries the classified error for failed outcomes, nil otherwise.
	Err error
	// Message is the bounded-length diagnostic used in reports and events.
	Message string
}
