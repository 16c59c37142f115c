package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"heatcut/internal/config"
	"heatcut/internal/logging"
	"heatcut/internal/planner"
	"heatcut/internal/render"
	"heatcut/internal/selector"
	"heatcut/internal/services"
	"heatcut/internal/signal"
	"heatcut/internal/signalcache"
	"heatcut/internal/youtube"
	"heatcut/internal/ytdlp"
)

// Inspector reports video metadata without downloading.
type Inspector interface {
	Inspect(ctx context.Context, videoURL string) (*ytdlp.Metadata, error)
}

// Downloader fetches the video file into a destination directory.
type Downloader interface {
	Download(ctx context.Context, videoURL, destDir string) (string, error)
}

// MarkerSource provides the raw interest signal for a video.
type MarkerSource interface {
	Markers(ctx context.Context, videoURL string, videoDuration float64) (*youtube.Markers, error)
}

// Renderer produces one clip file per planned window.
type Renderer interface {
	Render(ctx context.Context, inputPath, destDir string, window selector.Window) (string, error)
}

// SignalStore caches marker payloads between runs.
type SignalStore interface {
	Get(ctx context.Context, videoID string, kind signal.Kind, maxAge time.Duration) (*signalcache.Entry, bool, error)
	Put(ctx context.Context, entry signalcache.Entry) error
	Close() error
}

// Request describes one clip run.
type Request struct {
	VideoURL  string
	Kind      signal.Kind
	Selection selector.Config
	DryRun    bool
}

// Result reports what a run produced. ClipPaths is empty for dry runs.
type Result struct {
	VideoID         string
	Title           string
	VideoDuration   float64
	Plan            *planner.Plan
	VideoPath       string
	ClipPaths       []string
	SignalFromCache bool
}

// Pipeline wires the collaborators for clip runs. Construct with New.
type Pipeline struct {
	cfg        *config.Config
	logger     *slog.Logger
	inspector  Inspector
	downloader Downloader
	markers    MarkerSource
	renderer   Renderer
	store      SignalStore
}

// Option overrides a collaborator, primarily for tests.
type Option func(*Pipeline)

// WithInspector replaces the metadata inspector.
func WithInspector(inspector Inspector) Option {
	return func(p *Pipeline) {
		if inspector != nil {
			p.inspector = inspector
		}
	}
}

// WithDownloader replaces the video downloader.
func WithDownloader(downloader Downloader) Option {
	return func(p *Pipeline) {
		if downloader != nil {
			p.downloader = downloader
		}
	}
}

// WithMarkerSource replaces the signal provider.
func WithMarkerSource(source MarkerSource) Option {
	return func(p *Pipeline) {
		if source != nil {
			p.markers = source
		}
	}
}

// WithRenderer replaces the clip renderer.
func WithRenderer(renderer Renderer) Option {
	return func(p *Pipeline) {
		if renderer != nil {
			p.renderer = renderer
		}
	}
}

// WithSignalStore replaces the signal cache. Passing nil disables caching.
func WithSignalStore(store SignalStore) Option {
	return func(p *Pipeline) {
		p.store = store
	}
}

// New builds a pipeline from configuration. The signal cache is opened here
// when enabled; call Close when done.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "new", "configuration required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	ytClient, err := ytdlp.New(cfg.YtDlp.Binary, cfg.YtDlp.Format, cfg.YtDlp.InfoTimeout, cfg.YtDlp.DownloadTimeout)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "new", "yt-dlp client", err)
	}
	renderClient, err := render.New(cfg.FFmpeg.Binary, cfg.FFmpeg.Preset, cfg.FFmpeg.VideoCodec, cfg.FFmpeg.RenderTimeout, render.WithLogger(logger))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "new", "ffmpeg client", err)
	}

	pipeline := &Pipeline{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		inspector:  ytClient,
		downloader: ytClient,
		markers:    youtube.New(youtube.WithLogger(logger)),
		renderer:   renderClient,
	}
	if cfg.Signal.CacheEnabled {
		store, err := signalcache.Open(cfg.SignalCachePath())
		if err != nil {
			return nil, services.Wrap(services.ErrInternal, "pipeline", "new", "open signal cache", err)
		}
		pipeline.store = store
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	return pipeline, nil
}

// Close releases the signal cache, if any.
func (p *Pipeline) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// Run executes one clip run end to end. Exactly one run may use the staging
// directory at a time.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if _, err := signal.ParseKind(string(req.Kind)); err != nil {
		return nil, err
	}
	if err := req.Selection.Validate(); err != nil {
		return nil, err
	}

	videoID, err := youtube.VideoID(req.VideoURL)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "run", "parse video url", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.StagingDir, "heatcut.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrInternal, "pipeline", "run", "acquire staging lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrInternal, "pipeline", "run", "another heatcut run is using the staging directory", nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			p.logger.Warn("failed to release staging lock", logging.Error(unlockErr))
		}
	}()

	meta, err := p.inspector.Inspect(ctx, req.VideoURL)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "inspect", videoID, err)
	}
	p.logger.Info("inspected video",
		logging.String("video_id", meta.ID),
		logging.String("title", meta.Title),
		logging.Float64("duration", meta.Duration))

	markers, fromCache, err := p.resolveMarkers(ctx, videoID, req.VideoURL, req.Kind, meta.Duration)
	if err != nil {
		return nil, err
	}

	plan, err := planner.Build(planner.Request{
		VideoDuration: meta.Duration,
		Signal:        markerSignal(req.Kind, markers),
		Tolerance:     p.cfg.Signal.CoverageTolerance,
		Selection:     req.Selection,
	})
	if err != nil {
		return nil, err
	}
	p.logger.Info("built clip plan",
		logging.String("video_id", meta.ID),
		logging.String("signal", string(req.Kind)),
		logging.Int("windows", len(plan.Windows)),
		logging.Bool("cached_signal", fromCache))

	result := &Result{
		VideoID:         meta.ID,
		Title:           meta.Title,
		VideoDuration:   meta.Duration,
		Plan:            plan,
		SignalFromCache: fromCache,
	}
	if req.DryRun {
		return result, nil
	}

	videoPath, err := p.downloader.Download(ctx, req.VideoURL, p.cfg.Paths.StagingDir)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "ytdlp", "download", videoID, err)
	}
	result.VideoPath = videoPath

	for _, window := range plan.Windows {
		clipPath, err := p.renderer.Render(ctx, videoPath, p.cfg.Paths.ClipsDir, window)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "render", "clip",
				fmt.Sprintf("window %d of %d", window.Rank, len(plan.Windows)), err)
		}
		result.ClipPaths = append(result.ClipPaths, clipPath)
		p.logger.Info("rendered clip",
			logging.Int("rank", window.Rank),
			logging.String("path", clipPath))
	}
	return result, nil
}

// resolveMarkers checks the signal cache before scraping the watch page.
// Cache misses and decode failures both fall through to a live fetch.
func (p *Pipeline) resolveMarkers(ctx context.Context, videoID, videoURL string, kind signal.Kind, videoDuration float64) (*youtube.Markers, bool, error) {
	maxAge := time.Duration(p.cfg.Signal.CacheTTLHours) * time.Hour
	if p.store != nil {
		entry, ok, err := p.store.Get(ctx, videoID, kind, maxAge)
		if err != nil {
			p.logger.Warn("signal cache read failed", logging.String("video_id", videoID), logging.Error(err))
		} else if ok {
			var cached youtube.Markers
			if err := json.Unmarshal(entry.Payload, &cached); err != nil {
				p.logger.Warn("discarding undecodable cache entry", logging.String("video_id", videoID), logging.Error(err))
			} else {
				return &cached, true, nil
			}
		}
	}

	markers, err := p.markers.Markers(ctx, videoURL, videoDuration)
	if err != nil {
		return nil, false, services.Wrap(services.ErrExternalTool, "youtube", "markers", videoID, err)
	}

	if p.store != nil {
		payload, err := json.Marshal(markers)
		if err == nil {
			err = p.store.Put(ctx, signalcache.Entry{
				VideoID:   videoID,
				Kind:      kind,
				Duration:  videoDuration,
				Payload:   payload,
				FetchedAt: time.Now().UTC(),
			})
		}
		if err != nil {
			p.logger.Warn("signal cache write failed", logging.String("video_id", videoID), logging.Error(err))
		}
	}
	return markers, false, nil
}

func markerSignal(kind signal.Kind, markers *youtube.Markers) signal.Signal {
	if kind == signal.KindChapters {
		return signal.Signal{Kind: kind, Chapters: markers.Chapters}
	}
	return signal.Signal{Kind: kind, Samples: markers.Heatmap}
}
