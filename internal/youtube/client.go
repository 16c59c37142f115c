package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"heatcut/internal/logging"
	"heatcut/internal/signal"
)

// ErrNoInitialData indicates the watch page did not contain the ytInitialData
// blob, usually a consent wall or an unavailable video.
var ErrNoInitialData = errors.New("ytInitialData not found in watch page")

// maxBodyBytes bounds how much of a watch page is read. Pages with markers
// sit well under this.
const maxBodyBytes = 32 << 20

var initialDataPattern = regexp.MustCompile(`(?s)var ytInitialData = (\{.*?\});</script>`)

// Markers is the raw interest data scraped for one video.
type Markers struct {
	Heatmap  []signal.RawSample `json:"samples,omitempty"`
	Chapters []signal.Chapter   `json:"chapters,omitempty"`
}

// Client fetches watch pages. The zero value is not usable; construct with
// New.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (primarily for tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "youtube")
		}
	}
}

// New constructs a watch-page client.
func New(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Markers fetches the watch page and decodes its interest markers.
// videoDuration closes the final chapter, whose end YouTube leaves open.
func (c *Client) Markers(ctx context.Context, videoURL string, videoDuration float64) (*Markers, error) {
	html, err := c.fetchPage(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	match := initialDataPattern.FindSubmatch(html)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoInitialData, videoURL)
	}

	markers, err := parseMarkers(match[1], videoDuration)
	if err != nil {
		return nil, fmt.Errorf("parse markers: %w", err)
	}

	c.logger.Debug("fetched markers",
		logging.String("url", videoURL),
		logging.Int("heat_markers", len(markers.Heatmap)),
		logging.Int("chapters", len(markers.Chapters)))
	return markers, nil
}

func (c *Client) fetchPage(ctx context.Context, videoURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch watch page: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}
	return body, nil
}

// VideoID extracts the canonical video identifier from a watch URL. It
// understands watch?v=, youtu.be/, shorts/, and embed/ forms.
func VideoID(videoURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(videoURL))
	if err != nil {
		return "", fmt.Errorf("parse video url: %w", err)
	}

	if id := parsed.Query().Get("v"); id != "" {
		return id, nil
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	path := strings.Trim(parsed.Path, "/")
	segments := strings.Split(path, "/")

	if host == "youtu.be" && len(segments) > 0 && segments[0] != "" {
		return segments[0], nil
	}
	if len(segments) >= 2 {
		switch segments[0] {
		case "shorts", "embed", "live", "v":
			return segments[1], nil
		}
	}
	return "", fmt.Errorf("no video id in url %q", videoURL)
}
