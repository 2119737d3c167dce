// Package transcode converts library files to the target container under a
// bounded degree of parallelism.
//
// The Coordinator owns one run at a time: it scans the configured library
// roots, dispatches one Worker per candidate file into a fixed-size slot
// pool, and aggregates outcomes into a Report. Two consumption modes share
// the same worker logic: ConvertAll runs files in parallel and blocks until
// the run completes, while ConvertAllStreaming processes files one at a time
// and emits a strictly ordered event feed for live progress consumers.
//
// A single Tracker guards all shared counters; every worker updates it under
// one mutex immediately before starting and after finishing a file, so
// progress snapshots are exact at any observation point.
package transcode
