package config

import (
	"path/filepath"
	"regexp"
	"strings"

	"dragonfly/internal/services"
)

var bitratePattern = regexp.MustCompile(`^[0-9]+[km]?$`)

// Validate checks the normalized configuration for values the pipeline
// cannot run with. All failures carry services.ErrConfiguration so a run is
// aborted before any dispatch happens.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.MediaRoot) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "paths.media_root must not be empty", nil)
	}
	if !filepath.IsAbs(c.Paths.MediaRoot) {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "paths.media_root must be absolute after expansion", nil)
	}
	for name, value := range map[string]string{
		"paths.movies_dir": c.Paths.MoviesDir,
		"paths.tv_dir":     c.Paths.TVDir,
	} {
		if strings.ContainsRune(value, filepath.Separator) {
			return services.Wrap(services.ErrConfiguration, "config", "validate", name+" must be a directory name, not a path", nil)
		}
	}
	if c.Transcode.Concurrency < 0 {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "transcode.concurrency must not be negative", nil)
	}
	if !bitratePattern.MatchString(c.Transcode.AudioBitrate) {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "transcode.audio_bitrate must look like 192k", nil)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return services.Wrap(services.ErrConfiguration, "config", "validate", "logging.format must be console or json", nil)
	}
	return nil
}
