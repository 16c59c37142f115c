package interval

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInterval marks intervals whose bounds are malformed or fall
	// outside the declared video duration.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidScore marks scores that are negative or non-finite.
	ErrInvalidScore = errors.New("invalid score")
)

// ScoredInterval is a time range within a video carrying a relative interest
// score. Start and End are seconds from the beginning of the video. Label is
// free-form provenance (a chapter title or heat-marker index) and never
// participates in computation.
type ScoredInterval struct {
	Start float64
	End   float64
	Score float64
	Label string
}

// New validates and constructs a ScoredInterval bounded by videoDuration.
func New(start, end, score float64, label string, videoDuration float64) (ScoredInterval, error) {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return ScoredInterval{}, fmt.Errorf("%w: non-finite bounds [%v, %v)", ErrInvalidInterval, start, end)
	}
	if start < 0 || end < 0 {
		return ScoredInterval{}, fmt.Errorf("%w: negative bounds [%v, %v)", ErrInvalidInterval, start, end)
	}
	if start >= end {
		return ScoredInterval{}, fmt.Errorf("%w: start %v is not before end %v", ErrInvalidInterval, start, end)
	}
	if videoDuration > 0 && end > videoDuration {
		return ScoredInterval{}, fmt.Errorf("%w: end %v exceeds video duration %v", ErrInvalidInterval, end, videoDuration)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return ScoredInterval{}, fmt.Errorf("%w: %v", ErrInvalidScore, score)
	}
	return ScoredInterval{Start: start, End: end, Score: score, Label: label}, nil
}

// Duration returns the interval length in seconds.
func (i ScoredInterval) Duration() float64 {
	return i.End - i.Start
}

// Midpoint returns the center of the interval in seconds.
func (i ScoredInterval) Midpoint() float64 {
	return (i.Start + i.End) / 2
}
