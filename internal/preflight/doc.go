// Package preflight verifies the environment before a conversion run: the
// engine binary must resolve, library directories must be accessible, and
// the media filesystem needs headroom for new output files.
package preflight
