package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	ClipsDir   string `toml:"clips_dir"`
	LogDir     string `toml:"log_dir"`
	CacheDir   string `toml:"cache_dir"`
}

// YtDlp contains configuration for video download and metadata inspection.
type YtDlp struct {
	Binary          string `toml:"binary"`
	Format          string `toml:"format"`
	InfoTimeout     int    `toml:"info_timeout"`
	DownloadTimeout int    `toml:"download_timeout"`
}

// FFmpeg contains configuration for clip rendering.
type FFmpeg struct {
	Binary        string `toml:"binary"`
	Preset        string `toml:"preset"`
	VideoCodec    string `toml:"video_codec"`
	RenderTimeout int    `toml:"render_timeout"`
}

// Signal contains configuration for signal aggregation and caching.
type Signal struct {
	// CoverageTolerance is the widest coverage gap (seconds) accepted in a
	// heatmap or chapter signal. Zero derives it from the signal itself.
	CoverageTolerance float64 `toml:"coverage_tolerance"`
	CacheEnabled      bool    `toml:"cache_enabled"`
	CacheTTLHours     int     `toml:"cache_ttl_hours"`
}

// Selection contains default clip selection settings, overridable per run by
// CLI flags.
type Selection struct {
	ClipLength  float64 `toml:"clip_length"`
	ClipCount   int     `toml:"clip_count"`
	Align       string  `toml:"align"`
	MostIntense bool    `toml:"most_intense"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for heatcut.
type Config struct {
	Paths     Paths     `toml:"paths"`
	YtDlp     YtDlp     `toml:"ytdlp"`
	FFmpeg    FFmpeg    `toml:"ffmpeg"`
	Signal    Signal    `toml:"signal"`
	Selection Selection `toml:"selection"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/heatcut/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("heatcut.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.ClipsDir, c.Paths.LogDir, c.Paths.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SignalCachePath returns the location of the signal cache database.
func (c *Config) SignalCachePath() string {
	return filepath.Join(c.Paths.CacheDir, "signals.db")
}

// CreateSample writes the embedded sample configuration to target.
func CreateSample(target string) error {
	return os.WriteFile(target, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
