package transcode

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"dragonfly/internal/ffmpeg"
	"dragonfly/internal/fileutil"
	"dragonfly/internal/library"
	"dragonfly/internal/logging"
	"dragonfly/internal/services"
	"dragonfly/internal/textutil"
)

// errMessageLimit bounds the diagnostic text carried by failed outcomes.
const errMessageLimit = 300

// Worker converts a single file end to end: engine invocation, output
// verification, and source replacement. Every failure mode is captured into
// a failed Outcome; Convert never lets an error escape its boundary.
type Worker struct {
	runner *ffmpeg.Runner
	logger *slog.Logger
}

// NewWorker constructs a worker around the given engine runner.
func NewWorker(runner *ffmpeg.Runner, logger *slog.Logger) *Worker {
	return &Worker{
		runner: runner,
		logger: logging.NewComponentLogger(logger, "transcode"),
	}
}

// Convert produces exactly one Outcome for source. Files whose target
// already exists are skipped without touching the source; otherwise the
// engine runs, the output is verified non-empty, and only then is the
// source deleted. No partial state is left on disk on any failure path
// beyond a best-effort cleanup of a broken output file.
func (w *Worker) Convert(ctx context.Context, source string) Outcome {
	target := library.TargetPath(source)

	if fileutil.Exists(target) {
		w.logger.Debug("target already exists, skipping",
			logging.String(logging.FieldFile, source),
			logging.String(logging.FieldTarget, target),
		)
		return Outcome{Source: source, Target: target, Kind: OutcomeSkipped}
	}

	w.logger.Info("converting",
		logging.String(logging.FieldFile, source),
		logging.String(logging.FieldTarget, target),
	)

	result, err := w.runner.Convert(ctx, source, target)
	if err != nil {
		// Engine failed: drop any partial output so a later run retries the
		// file instead of skipping a corrupt target.
		if cleanupErr := fileutil.RemoveIfExists(target); cleanupErr != nil {
			w.logger.Warn("failed to remove partial output",
				logging.String(logging.FieldTarget, target),
				logging.Error(cleanupErr),
			)
		}
		return w.failed(source, target, err, engineDetail(result, err))
	}

	ok, err := fileutil.NonEmpty(target)
	if err != nil {
		return w.failed(source, target,
			services.Wrap(services.ErrFilesystem, "transcode", "verify output", target, err),
			err.Error())
	}
	if !ok {
		_ = fileutil.RemoveIfExists(target)
		verr := services.Wrap(services.ErrValidation, "transcode", "verify output", "engine exited cleanly but produced no usable file", nil)
		return w.failed(source, target, verr, "output missing or empty")
	}

	if err := os.Remove(source); err != nil {
		// The converted file is valid; only the source replacement failed.
		// Report the failure and leave both files for the operator.
		ferr := services.Wrap(services.ErrFilesystem, "transcode", "delete source", source, err)
		return w.failed(source, target, ferr, err.Error())
	}

	w.logger.Info("conversion finished",
		logging.String(logging.FieldFile, source),
		logging.String(logging.FieldOutcome, string(OutcomeSuccess)),
	)
	return Outcome{Source: source, Target: target, Kind: OutcomeSuccess}
}

func (w *Worker) failed(source, target string, err error, detail string) Outcome {
	message := textutil.Truncate(detail, errMessageLimit)
	w.logger.Error("conversion failed",
		logging.String(logging.FieldFile, source),
		logging.Error(err),
	)
	return Outcome{
		Source:  source,
		Target:  target,
		Kind:    OutcomeFailed,
		Err:     err,
		Message: message,
	}
}

func engineDetail(result ffmpeg.Result, err error) string {
	if detail := strings.TrimSpace(result.Stderr); detail != "" {
		return detail
	}
	if err != nil {
		return err.Error()
	}
	return "engine failed"
}
