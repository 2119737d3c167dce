package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEngine marks a transcoding engine failure: the subprocess could not
	// be started or exited with a non-zero status.
	ErrEngine = errors.New("engine error")
	// ErrValidation marks an output that failed verification after the engine
	// reported success (missing or zero-byte target file).
	ErrValidation = errors.New("validation error")
	// ErrFilesystem marks permission, disk, or path failures during scanning,
	// replacement, or cleanup.
	ErrFilesystem = errors.New("filesystem error")
	// ErrConfiguration marks malformed configuration. It is the only class
	// that aborts a run before dispatch; the others are recovered per file.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether an error only affects a single file's outcome.
// Configuration errors abort the run; everything else is absorbed into the
// file's failure record.
func Recoverable(err error) bool {
	return !errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
