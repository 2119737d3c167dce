package transcode

// Event is one entry in the streaming conversion feed. The type is sealed:
// every variant is declared in this file, so consumers can switch over the
// concrete types exhaustively.
//
// For a run over n files the feed is: one StartEvent, then per file (in
// attempt order) a ConvertingEvent followed by exactly one of ConvertedEvent
// or ErrorEvent, a DeletedEvent after each successful conversion, and one
// final CompleteEvent. A run over zero files emits StartEvent{Total: 0}
// immediately followed by CompleteEvent{}.
type Event interface {
	event()
}

// StartEvent opens the feed and announces how many files will be attempted.
type StartEvent struct {
	Total int
}

// ConvertingEvent announces that a file's conversion is beginning. Index is
// the 1-based attempt position within the run.
type ConvertingEvent struct {
	File  string
	Index int
	Total int
}

// ConvertedEvent reports that a file converted successfully. Skipped files
// (target already present) also emit ConvertedEvent, without a following
// DeletedEvent.
type ConvertedEvent struct {
	File string
}

// DeletedEvent reports that a successfully converted source file was removed.
type DeletedEvent struct {
	File string
}

// ErrorEvent reports a per-file failure. Error is the bounded diagnostic
// text, not a full stack of detail.
type ErrorEvent struct {
	File  string
	Error string
}

// CompleteEvent terminates the feed with aggregate counts.
type CompleteEvent struct {
	Converted int
	Deleted   int
	Errors    int
}

func (StartEvent) event()      {}
func (ConvertingEvent) event() {}
func (ConvertedEvent) event()  {}
func (DeletedEvent) event()    {}
func (ErrorEvent) event()      {}
func (CompleteEvent) event()   {}
