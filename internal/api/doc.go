// Package api is the programmatic surface the presentation layer calls.
//
// It exposes a scan-only dry run, a blocking batch conversion, a streaming
// conversion feed, and a progress snapshot query. Conversion entry points
// hold a file lock in the log directory so two processes cannot convert the
// same library concurrently; the dry run takes no lock because it never
// mutates anything.
package api
