package logging

// Shared attribute keys. Using constants keeps field names stable across
// packages so log consumers can filter reliably.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldFile      = "file"
	FieldTarget    = "target"
	FieldOutcome   = "outcome"
	FieldTotal     = "total"
	FieldConverted = "converted"
	FieldFailed    = "failed"
	FieldSkipped   = "skipped"
	FieldDuration  = "duration"
)
