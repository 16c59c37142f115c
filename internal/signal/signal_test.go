package signal_test

import (
	"errors"
	"testing"

	"heatcut/internal/interval"
	"heatcut/internal/signal"
)

func TestHeatmapPassesThroughContiguousSamples(t *testing.T) {
	samples := []signal.RawSample{
		{Start: 0, End: 10, Value: 0.2},
		{Start: 10, End: 20, Value: 0.9},
		{Start: 20, End: 30, Value: 0.5},
	}
	intervals, err := signal.Heatmap(samples, 30, 0)
	if err != nil {
		t.Fatalf("Heatmap returned error: %v", err)
	}
	if len(intervals) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(intervals))
	}
	if intervals[1].Score != 0.9 {
		t.Fatalf("score not carried through: %v", intervals[1].Score)
	}
	if intervals[0].Label != "heat-000" {
		t.Fatalf("expected index label, got %q", intervals[0].Label)
	}
	assertOrderedNonOverlapping(t, intervals)
}

func TestHeatmapClampsTrailingSample(t *testing.T) {
	samples := []signal.RawSample{
		{Start: 0, End: 50, Value: 0.3},
		{Start: 50, End: 110, Value: 0.7},
	}
	intervals, err := signal.Heatmap(samples, 100, 0)
	if err != nil {
		t.Fatalf("Heatmap returned error: %v", err)
	}
	if got := intervals[len(intervals)-1].End; got != 100 {
		t.Fatalf("expected final end clamped to 100, got %v", got)
	}
}

func TestHeatmapSkipsDegenerateSamples(t *testing.T) {
	samples := []signal.RawSample{
		{Start: 0, End: 10, Value: 0.1},
		{Start: 10, End: 10, Value: 0.2}, // zero-length
		{Start: 10, End: 20, Value: 0.3},
		{Start: 5, End: 25, Value: 0.4}, // out of order
		{Start: 20, End: 30, Value: 0.5},
	}
	intervals, err := signal.Heatmap(samples, 30, 0)
	if err != nil {
		t.Fatalf("Heatmap returned error: %v", err)
	}
	if len(intervals) != 3 {
		t.Fatalf("expected degenerate samples skipped, got %d intervals", len(intervals))
	}
	assertOrderedNonOverlapping(t, intervals)
}

func TestHeatmapReconcilesOverlap(t *testing.T) {
	samples := []signal.RawSample{
		{Start: 0, End: 12, Value: 0.1},
		{Start: 10, End: 20, Value: 0.2},
	}
	intervals, err := signal.Heatmap(samples, 20, 0)
	if err != nil {
		t.Fatalf("Heatmap returned error: %v", err)
	}
	if intervals[1].Start != 12 {
		t.Fatalf("expected overlapping start shifted to 12, got %v", intervals[1].Start)
	}
}

func TestHeatmapRejectsGapBeyondTolerance(t *testing.T) {
	samples := []signal.RawSample{
		{Start: 0, End: 10, Value: 0.1},
		{Start: 12, End: 22, Value: 0.2}, // 2s gap
	}
	_, err := signal.Heatmap(samples, 22, 1)
	if !errors.Is(err, signal.ErrNonCoveringSignal) {
		t.Fatalf("expected ErrNonCoveringSignal, got %v", err)
	}

	// Within tolerance the same gap is accepted.
	if _, err := signal.Heatmap(samples, 22, 3); err != nil {
		t.Fatalf("gap within tolerance should pass: %v", err)
	}
}

func TestHeatmapDefaultToleranceIsOneSamplingUnit(t *testing.T) {
	samples := []signal.RawSample{
		{Start: 0, End: 5, Value: 0.1},
		{Start: 9, End: 14, Value: 0.2}, // 4s gap, sampling unit is 5s
	}
	if _, err := signal.Heatmap(samples, 14, 0); err != nil {
		t.Fatalf("gap within one sampling unit should pass: %v", err)
	}

	samples[1].Start = 11 // 6s gap
	samples[1].End = 16
	_, err := signal.Heatmap(samples, 16, 0)
	if !errors.Is(err, signal.ErrNonCoveringSignal) {
		t.Fatalf("expected ErrNonCoveringSignal, got %v", err)
	}
}

func TestHeatmapEmptyInput(t *testing.T) {
	_, err := signal.Heatmap(nil, 100, 0)
	if !errors.Is(err, signal.ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal, got %v", err)
	}

	// All samples degenerate is also an empty signal.
	_, err = signal.Heatmap([]signal.RawSample{{Start: 5, End: 5, Value: 0.1}}, 100, 0)
	if !errors.Is(err, signal.ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal for all-degenerate input, got %v", err)
	}
}

func TestHeatmapRejectsNegativeValue(t *testing.T) {
	_, err := signal.Heatmap([]signal.RawSample{{Start: 0, End: 10, Value: -1}}, 10, 0)
	if !errors.Is(err, interval.ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
}

func TestChaptersScoreByDurationByDefault(t *testing.T) {
	chapters := []signal.Chapter{
		{Start: 0, End: 30, Title: "Intro"},
		{Start: 30, End: 120, Title: "Main"},
		{Start: 120, End: 150, Title: "Outro"},
	}
	intervals, err := signal.Chapters(chapters, 150, 0, nil)
	if err != nil {
		t.Fatalf("Chapters returned error: %v", err)
	}
	if len(intervals) != 3 {
		t.Fatalf("expected 3 intervals, got %d", len(intervals))
	}
	if intervals[1].Score != 90 {
		t.Fatalf("expected duration score 90, got %v", intervals[1].Score)
	}
	if intervals[1].Label != "Main" {
		t.Fatalf("expected chapter title label, got %q", intervals[1].Label)
	}
}

func TestChaptersCustomScoreFunc(t *testing.T) {
	chapters := []signal.Chapter{
		{Start: 0, End: 60, Title: "A"},
		{Start: 60, End: 90, Title: "B"},
	}
	intervals, err := signal.Chapters(chapters, 90, 0, func(c signal.Chapter) float64 {
		if c.Title == "B" {
			return 99
		}
		return 1
	})
	if err != nil {
		t.Fatalf("Chapters returned error: %v", err)
	}
	if intervals[1].Score != 99 {
		t.Fatalf("custom score not applied: %v", intervals[1].Score)
	}
}

func TestChaptersRejectGap(t *testing.T) {
	chapters := []signal.Chapter{
		{Start: 0, End: 30, Title: "A"},
		{Start: 40, End: 60, Title: "B"},
	}
	_, err := signal.Chapters(chapters, 60, 0, nil)
	if !errors.Is(err, signal.ErrNonCoveringSignal) {
		t.Fatalf("expected ErrNonCoveringSignal, got %v", err)
	}
}

func TestSignalAggregateDispatch(t *testing.T) {
	heat := signal.Signal{Kind: signal.KindHeatmap, Samples: []signal.RawSample{{Start: 0, End: 10, Value: 0.4}}}
	intervals, err := heat.Aggregate(10, 0, nil)
	if err != nil || len(intervals) != 1 {
		t.Fatalf("heatmap dispatch failed: %v (%d intervals)", err, len(intervals))
	}

	chap := signal.Signal{Kind: signal.KindChapters, Chapters: []signal.Chapter{{Start: 0, End: 10, Title: "A"}}}
	intervals, err = chap.Aggregate(10, 0, nil)
	if err != nil || len(intervals) != 1 {
		t.Fatalf("chapters dispatch failed: %v (%d intervals)", err, len(intervals))
	}

	bad := signal.Signal{Kind: "heatmaps"}
	if _, err := bad.Aggregate(10, 0, nil); !errors.Is(err, signal.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if _, err := signal.ParseKind("heatmap"); err != nil {
		t.Fatalf("heatmap should parse: %v", err)
	}
	if _, err := signal.ParseKind("chapters"); err != nil {
		t.Fatalf("chapters should parse: %v", err)
	}
	if _, err := signal.ParseKind("comments"); !errors.Is(err, signal.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func assertOrderedNonOverlapping(t *testing.T, intervals []interval.ScoredInterval) {
	t.Helper()
	for i := 1; i < len(intervals); i++ {
		if intervals[i].Start < intervals[i-1].End {
			t.Fatalf("intervals %d and %d overlap: %v < %v", i-1, i, intervals[i].Start, intervals[i-1].End)
		}
	}
}
