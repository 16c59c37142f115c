package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBinaries()
	c.normalizeSelection()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		c.Paths.StagingDir = defaultStagingDir
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ClipsDir) == "" {
		c.Paths.ClipsDir = defaultClipsDir
	}
	if c.Paths.ClipsDir, err = expandPath(c.Paths.ClipsDir); err != nil {
		return fmt.Errorf("paths.clips_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBinaries() {
	c.YtDlp.Binary = strings.TrimSpace(c.YtDlp.Binary)
	if c.YtDlp.Binary == "" {
		c.YtDlp.Binary = defaultYtDlpBinary
	}
	c.YtDlp.Format = strings.TrimSpace(c.YtDlp.Format)
	if c.YtDlp.Format == "" {
		c.YtDlp.Format = defaultYtDlpFormat
	}
	if c.YtDlp.InfoTimeout <= 0 {
		c.YtDlp.InfoTimeout = defaultInfoTimeout
	}
	if c.YtDlp.DownloadTimeout <= 0 {
		c.YtDlp.DownloadTimeout = defaultDownloadTimeout
	}
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.Preset = strings.TrimSpace(c.FFmpeg.Preset)
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = defaultFFmpegPreset
	}
	c.FFmpeg.VideoCodec = strings.TrimSpace(c.FFmpeg.VideoCodec)
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = defaultVideoCodec
	}
	if c.FFmpeg.RenderTimeout <= 0 {
		c.FFmpeg.RenderTimeout = defaultRenderTimeout
	}
}

func (c *Config) normalizeSelection() {
	c.Selection.Align = strings.ToLower(strings.TrimSpace(c.Selection.Align))
	if c.Selection.Align == "" {
		c.Selection.Align = defaultAlign
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
