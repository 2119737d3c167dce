package config

const (
	defaultMediaRoot    = "~/media"
	defaultMoviesDir    = "movies"
	defaultTVDir        = "tv"
	defaultLogDir       = "~/.local/share/dragonfly/logs"
	defaultFFmpegBinary = "ffmpeg"
	defaultAudioBitrate = "192k"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaRoot: defaultMediaRoot,
			MoviesDir: defaultMoviesDir,
			TVDir:     defaultTVDir,
			LogDir:    defaultLogDir,
		},
		Transcode: Transcode{
			Concurrency:  0,
			FFmpegBinary: defaultFFmpegBinary,
			AudioBitrate: defaultAudioBitrate,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
