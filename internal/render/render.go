package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"heatcut/internal/logging"
	"heatcut/internal/selector"
)

// verticalFilter reframes a landscape source into a 1080x1920 canvas: the
// full frame is cropped to 9:16, scaled up, and blurred to fill the
// background, with a center square crop of the original overlaid on top.
const verticalFilter = "split [original][copy]; " +
	"[copy] crop=ih*9/16:ih:iw/2-ow/2:0, scale=1080:1920, gblur=sigma=50[blurred]; " +
	"[original] scale=-1:1080, crop=1080:1080:iw/2-ow/2:ih/2-oh/2 [scaled]; " +
	"[blurred][scaled] overlay=(main_w-overlay_w)/2:(main_h-overlay_h)/2"

// Client wraps ffmpeg clip rendering.
type Client struct {
	binary     string
	preset     string
	videoCodec string
	timeout    time.Duration
	exec       Executor
	logger     *slog.Logger
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

// WithLogger attaches a logger for per-clip progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "render")
		}
	}
}

// New constructs an ffmpeg render client.
func New(binary, preset, videoCodec string, renderTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary:     binary,
		preset:     strings.TrimSpace(preset),
		videoCodec: strings.TrimSpace(videoCodec),
		timeout:    time.Duration(renderTimeoutSeconds) * time.Second,
		exec:       commandExecutor{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Render cuts one clip window out of inputPath into destDir, reframed
// through the vertical filtergraph, and returns the rendered file path.
func (c *Client) Render(ctx context.Context, inputPath, destDir string, window selector.Window) (string, error) {
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New("input path required")
	}
	if strings.TrimSpace(destDir) == "" {
		return "", errors.New("destination directory required")
	}
	if window.Duration() <= 0 {
		return "", fmt.Errorf("window [%s, %s) has no duration", formatSeconds(window.Start), formatSeconds(window.End))
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}

	outputPath := filepath.Join(destDir, fmt.Sprintf("%02d-%s.mp4", window.Rank, clipFileName(window.Source.Label)))

	renderCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-ss", formatSeconds(window.Start),
		"-t", formatSeconds(window.Duration()),
		"-i", inputPath,
		"-filter_complex", verticalFilter,
		"-auto-alt-ref", "0",
		"-c:a", "copy",
	}
	if c.videoCodec != "" {
		args = append(args, "-c:v", c.videoCodec)
	}
	if c.preset != "" {
		args = append(args, "-preset", c.preset)
	}
	args = append(args, outputPath)

	c.logger.Info("rendering clip",
		logging.String("output", filepath.Base(outputPath)),
		logging.Float64("start", window.Start),
		logging.Float64("duration", window.Duration()))

	err := c.exec.Run(renderCtx, c.binary, args, func(line string) {
		c.logger.Debug("ffmpeg output", logging.String("line", line))
	})
	if err != nil {
		return "", fmt.Errorf("ffmpeg render: %w", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("ffmpeg render: output missing: %w", err)
	}
	return outputPath, nil
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}
