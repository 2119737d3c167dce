// Package logging builds the slog logger used across the transcode pipeline.
//
// Two output formats are supported: a console handler that renders one
// compact line per record with component prefixes and key=value attributes,
// and a JSON handler for log files and machine consumers. Attribute helpers
// and shared field-name constants keep log output consistent between the
// scanner, the workers, and the coordinator.
package logging
