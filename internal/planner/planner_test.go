package planner_test

import (
	"errors"
	"testing"

	"heatcut/internal/planner"
	"heatcut/internal/selector"
	"heatcut/internal/signal"
)

func heatmapRequest(duration float64, samples []signal.RawSample) planner.Request {
	return planner.Request{
		VideoDuration: duration,
		Signal:        signal.Signal{Kind: signal.KindHeatmap, Samples: samples},
	}
}

func TestBuildProducesTimelineOrderedPlan(t *testing.T) {
	req := heatmapRequest(30, []signal.RawSample{
		{Start: 0, End: 10, Value: 0.2},
		{Start: 10, End: 20, Value: 0.9},
		{Start: 20, End: 30, Value: 0.5},
	})
	req.Selection = selector.Config{ClipLength: 4, ClipCount: 2, RankByIntensity: true, Alignment: selector.AlignCenter}

	plan, err := planner.Build(req)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if plan.VideoDuration != 30 {
		t.Fatalf("plan should carry the video duration, got %v", plan.VideoDuration)
	}
	if len(plan.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(plan.Windows))
	}
	if plan.Windows[0].Start >= plan.Windows[1].Start {
		t.Fatal("windows not in timeline order")
	}
	// Highest-scored sample keeps selection priority zero.
	if plan.Windows[0].Rank != 0 || plan.Windows[0].Source.Score != 0.9 {
		t.Fatalf("unexpected priority window: rank %d score %v", plan.Windows[0].Rank, plan.Windows[0].Source.Score)
	}
}

func TestBuildChaptersSignal(t *testing.T) {
	req := planner.Request{
		VideoDuration: 150,
		Signal: signal.Signal{Kind: signal.KindChapters, Chapters: []signal.Chapter{
			{Start: 0, End: 30, Title: "Intro"},
			{Start: 30, End: 120, Title: "Main"},
			{Start: 120, End: 150, Title: "Outro"},
		}},
		Selection: selector.Config{ClipCount: 1, RankByIntensity: true},
	}
	plan, err := planner.Build(req)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if plan.Windows[0].Source.Label != "Main" {
		t.Fatalf("duration scoring should pick the longest chapter, got %q", plan.Windows[0].Source.Label)
	}
}

func TestBuildRejectsShortSpan(t *testing.T) {
	// Samples stop 40 seconds before the declared end.
	req := heatmapRequest(100, []signal.RawSample{
		{Start: 0, End: 30, Value: 0.1},
		{Start: 30, End: 60, Value: 0.2},
	})
	_, err := planner.Build(req)
	if !errors.Is(err, planner.ErrDurationMismatch) {
		t.Fatalf("expected ErrDurationMismatch, got %v", err)
	}
}

func TestBuildRejectsLateStart(t *testing.T) {
	req := heatmapRequest(70, []signal.RawSample{
		{Start: 30, End: 50, Value: 0.1},
		{Start: 50, End: 70, Value: 0.2},
	})
	_, err := planner.Build(req)
	if !errors.Is(err, planner.ErrDurationMismatch) {
		t.Fatalf("expected ErrDurationMismatch, got %v", err)
	}
}

func TestBuildRejectsNonPositiveDuration(t *testing.T) {
	req := heatmapRequest(0, []signal.RawSample{{Start: 0, End: 10, Value: 0.5}})
	_, err := planner.Build(req)
	if !errors.Is(err, planner.ErrDurationMismatch) {
		t.Fatalf("expected ErrDurationMismatch, got %v", err)
	}
}

func TestBuildPropagatesSignalErrors(t *testing.T) {
	_, err := planner.Build(heatmapRequest(100, nil))
	if !errors.Is(err, signal.ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal, got %v", err)
	}
}

func TestBuildPropagatesSelectionErrors(t *testing.T) {
	req := heatmapRequest(10, []signal.RawSample{{Start: 0, End: 10, Value: 0.5}})
	req.Selection = selector.Config{Alignment: "sideways"}
	_, err := planner.Build(req)
	if !errors.Is(err, selector.ErrInvalidAlignment) {
		t.Fatalf("expected ErrInvalidAlignment, got %v", err)
	}
}
