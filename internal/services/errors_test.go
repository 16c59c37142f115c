package services_test

import (
	"errors"
	"fmt"
	"testing"

	"heatcut/internal/planner"
	"heatcut/internal/selector"
	"heatcut/internal/services"
	"heatcut/internal/signal"
)

func TestWrapTagsMarkerAndContext(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "ytdlp", "download", "fetch failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "external tool error: ytdlp: download: fetch failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "render", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default external tool marker, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{fmt.Errorf("parse: %w", selector.ErrInvalidAlignment), services.ErrValidation},
		{fmt.Errorf("agg: %w", signal.ErrNonCoveringSignal), services.ErrSignal},
		{fmt.Errorf("agg: %w", signal.ErrEmptySignal), services.ErrSignal},
		{fmt.Errorf("plan: %w", planner.ErrDurationMismatch), services.ErrSignal},
		{fmt.Errorf("select: %w", selector.ErrNoClipsProduced), services.ErrNoOutput},
		{fmt.Errorf("select: %w", selector.ErrOverlapInvariant), services.ErrInternal},
		{errors.New("connection refused"), services.ErrExternalTool},
	}
	for _, tc := range cases {
		if got := services.Classify(tc.err); !errors.Is(got, tc.want) {
			t.Fatalf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
	if services.Classify(nil) != nil {
		t.Fatal("nil should classify as nil")
	}
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{selector.ErrInvalidConfig, 2},
		{signal.ErrEmptySignal, 3},
		{selector.ErrNoClipsProduced, 4},
		{errors.New("boom"), 5},
		{selector.ErrOverlapInvariant, 1},
	}
	for _, tc := range cases {
		if got := services.ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
