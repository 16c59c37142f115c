package interval_test

import (
	"errors"
	"math"
	"testing"

	"heatcut/internal/interval"
)

func TestNewValidInterval(t *testing.T) {
	iv, err := interval.New(10, 40, 0.8, "intro", 120)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if iv.Start != 10 || iv.End != 40 {
		t.Fatalf("unexpected bounds: [%v, %v)", iv.Start, iv.End)
	}
	if iv.Duration() != 30 {
		t.Fatalf("unexpected duration: %v", iv.Duration())
	}
	if iv.Midpoint() != 25 {
		t.Fatalf("unexpected midpoint: %v", iv.Midpoint())
	}
	if iv.Label != "intro" {
		t.Fatalf("unexpected label: %q", iv.Label)
	}
}

func TestNewRejectsMalformedBounds(t *testing.T) {
	cases := []struct {
		name       string
		start, end float64
	}{
		{"start equals end", 5, 5},
		{"start after end", 9, 3},
		{"negative start", -1, 10},
		{"end past duration", 100, 130},
		{"nan start", math.NaN(), 10},
		{"infinite end", 0, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := interval.New(tc.start, tc.end, 0.5, "", 120)
			if !errors.Is(err, interval.ErrInvalidInterval) {
				t.Fatalf("expected ErrInvalidInterval, got %v", err)
			}
		})
	}
}

func TestNewRejectsBadScores(t *testing.T) {
	for _, score := range []float64{-0.1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := interval.New(0, 10, score, "", 120)
		if !errors.Is(err, interval.ErrInvalidScore) {
			t.Fatalf("score %v: expected ErrInvalidScore, got %v", score, err)
		}
	}
}

func TestNewAllowsZeroScoreAndUnboundedDuration(t *testing.T) {
	if _, err := interval.New(0, 10, 0, "", 120); err != nil {
		t.Fatalf("zero score should be valid: %v", err)
	}
	// videoDuration of zero means the caller has no authoritative bound yet.
	if _, err := interval.New(0, 1e6, 1, "", 0); err != nil {
		t.Fatalf("unbounded duration should skip the end check: %v", err)
	}
}
