package config

const (
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultRequestTimeout  = 15
	defaultAnalysisTimeout = 120
	defaultMinTempo        = 30.0
	defaultMaxTempo        = 240.0
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
)

// Default returns a Config populated with repository defaults. Credentials
// have no defaults; they come from the config file or the environment.
func Default() Config {
	return Config{
		Spotify: Spotify{
			RequestTimeout: defaultRequestTimeout,
		},
		Analysis: Analysis{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			Timeout:       defaultAnalysisTimeout,
			MinTempo:      defaultMinTempo,
			MaxTempo:      defaultMaxTempo,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
