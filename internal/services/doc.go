// Package services defines the shared error taxonomy for the transcode
// pipeline.
//
// Errors are tagged with sentinel markers so callers can classify a failure
// without string matching: engine invocation failures, output validation
// failures, filesystem failures, and configuration failures each carry their
// own marker. Wrap builds a contextual message while preserving the marker
// for errors.Is checks.
package services
