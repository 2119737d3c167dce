package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"dragonfly/internal/services"
)

// Result holds the outcome of a single engine invocation.
type Result struct {
	ExitCode int
	Stderr   string
}

// Runner invokes the engine binary. The zero value is not usable; construct
// with NewRunner.
type Runner struct {
	binary       string
	audioBitrate string
}

// NewRunner returns a runner bound to the given engine binary and audio
// bitrate policy.
func NewRunner(binary, audioBitrate string) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	audioBitrate = strings.TrimSpace(audioBitrate)
	if audioBitrate == "" {
		audioBitrate = "192k"
	}
	return &Runner{binary: binary, audioBitrate: audioBitrate}
}

// Binary returns the engine command the runner executes.
func (r *Runner) Binary() string { return r.binary }

// Command renders the full invocation for logging.
func (r *Runner) Command(input, output string) string {
	return r.binary + " " + strings.Join(Args(input, output, r.audioBitrate), " ")
}

// Convert runs the engine for one file. A non-zero exit status is returned
// as a services.ErrEngine carrying the captured stderr; a process that could
// not be started at all is reported the same way. The Result is populated in
// both cases so callers can inspect diagnostics.
func (r *Runner) Convert(ctx context.Context, input, output string) (Result, error) {
	cmd := exec.CommandContext(ctx, r.binary, Args(input, output, r.audioBitrate)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = err.Error()
		}
		return result, services.Wrap(services.ErrEngine, "ffmpeg", "convert", detail, err)
	}

	result.ExitCode = -1
	return result, services.Wrap(services.ErrEngine, "ffmpeg", "start", r.binary, err)
}
