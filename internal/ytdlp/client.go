package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Metadata captures the subset of yt-dlp's JSON output the pipeline needs.
type Metadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Ext      string  `json:"ext"`
	Duration float64 `json:"duration"`
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary          string
	format          string
	infoTimeout     time.Duration
	downloadTimeout time.Duration
	exec            Executor
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// New constructs a yt-dlp client.
func New(binary, format string, infoTimeoutSeconds, downloadTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:          binary,
		format:          strings.TrimSpace(format),
		infoTimeout:     time.Duration(infoTimeoutSeconds) * time.Second,
		downloadTimeout: time.Duration(downloadTimeoutSeconds) * time.Second,
		exec:            commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Inspect fetches video metadata without downloading.
func (c *Client) Inspect(ctx context.Context, videoURL string) (*Metadata, error) {
	if strings.TrimSpace(videoURL) == "" {
		return nil, errors.New("video url required")
	}

	infoCtx := ctx
	if c.infoTimeout > 0 {
		var cancel context.CancelFunc
		infoCtx, cancel = context.WithTimeout(ctx, c.infoTimeout)
		defer cancel()
	}

	args := []string{"--dump-json", "--no-download", "--no-warnings", videoURL}
	var builder strings.Builder
	err := c.exec.Run(infoCtx, c.binary, args, func(line string) {
		builder.WriteString(line)
		builder.WriteByte('\n')
	})
	if err != nil {
		return nil, fmt.Errorf("yt-dlp inspect: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(builder.String()), &meta); err != nil {
		return nil, fmt.Errorf("yt-dlp inspect: decode metadata: %w", err)
	}
	if meta.ID == "" {
		return nil, errors.New("yt-dlp inspect: metadata missing video id")
	}
	if meta.Duration <= 0 {
		return nil, fmt.Errorf("yt-dlp inspect: video %s has no duration", meta.ID)
	}
	return &meta, nil
}

// Download fetches the video into destDir and returns the downloaded file
// path, as printed by yt-dlp after any post-processing move.
func (c *Client) Download(ctx context.Context, videoURL, destDir string) (string, error) {
	if strings.TrimSpace(videoURL) == "" {
		return "", errors.New("video url required")
	}
	if strings.TrimSpace(destDir) == "" {
		return "", errors.New("destination directory required")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	downloadCtx := ctx
	if c.downloadTimeout > 0 {
		var cancel context.CancelFunc
		downloadCtx, cancel = context.WithTimeout(ctx, c.downloadTimeout)
		defer cancel()
	}

	args := []string{
		"--no-warnings",
		"--no-progress",
		"--print", "after_move:filepath",
		"--no-simulate",
		"-o", filepath.Join(destDir, "%(id)s.%(ext)s"),
	}
	if c.format != "" {
		args = append(args, "-f", c.format)
	}
	args = append(args, videoURL)

	var lastLine string
	err := c.exec.Run(downloadCtx, c.binary, args, func(line string) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lastLine = trimmed
		}
	})
	if err != nil {
		return "", fmt.Errorf("yt-dlp download: %w", err)
	}
	if lastLine == "" {
		return "", errors.New("yt-dlp download: no output path reported")
	}
	if _, err := os.Stat(lastLine); err != nil {
		return "", fmt.Errorf("yt-dlp download: reported file missing: %w", err)
	}
	return lastLine, nil
}
