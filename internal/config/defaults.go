package config

const (
	defaultStagingDir      = "~/.local/share/heatcut/staging"
	defaultClipsDir        = "~/clips"
	defaultLogDir          = "~/.local/share/heatcut/logs"
	defaultCacheDir        = "~/.cache/heatcut"
	defaultYtDlpBinary     = "yt-dlp"
	defaultYtDlpFormat     = "bestvideo*+bestaudio/best"
	defaultInfoTimeout     = 60
	defaultDownloadTimeout = 1800
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFmpegPreset    = "ultrafast"
	defaultVideoCodec      = "h264"
	defaultRenderTimeout   = 900
	defaultCacheTTLHours   = 24
	defaultAlign           = "left"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			ClipsDir:   defaultClipsDir,
			LogDir:     defaultLogDir,
			CacheDir:   defaultCacheDir,
		},
		YtDlp: YtDlp{
			Binary:          defaultYtDlpBinary,
			Format:          defaultYtDlpFormat,
			InfoTimeout:     defaultInfoTimeout,
			DownloadTimeout: defaultDownloadTimeout,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			Preset:        defaultFFmpegPreset,
			VideoCodec:    defaultVideoCodec,
			RenderTimeout: defaultRenderTimeout,
		},
		Signal: Signal{
			CacheEnabled:  true,
			CacheTTLHours: defaultCacheTTLHours,
		},
		Selection: Selection{
			Align: defaultAlign,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
