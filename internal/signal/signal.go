package signal

import (
	"errors"
	"fmt"

	"heatcut/internal/interval"
)

var (
	// ErrEmptySignal marks signals with no usable samples or chapters.
	ErrEmptySignal = errors.New("empty signal")
	// ErrNonCoveringSignal marks signals that leave a gap wider than the
	// coverage tolerance. A gap means missing source data that would silently
	// bias selection toward the covered region.
	ErrNonCoveringSignal = errors.New("signal does not cover video")
	// ErrUnknownKind marks signal kinds outside heatmap/chapters.
	ErrUnknownKind = errors.New("unknown signal kind")
)

// Kind discriminates the two supported signal sources.
type Kind string

const (
	KindHeatmap  Kind = "heatmap"
	KindChapters Kind = "chapters"
)

// ParseKind validates a signal kind string.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindHeatmap, KindChapters:
		return Kind(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
}

// RawSample is one heatmap measurement as delivered by the signal provider.
// Value is the normalized engagement score for the sampled range. Label is
// optional provenance (typically the enclosing chapter title).
type RawSample struct {
	Start float64
	End   float64
	Value float64
	Label string
}

// Chapter is one named range as delivered by the signal provider.
type Chapter struct {
	Start float64
	End   float64
	Title string
}

// ScoreFunc computes a chapter's selection score. The default scores by
// duration so longer chapters rank higher under intensity ordering.
type ScoreFunc func(Chapter) float64

// Signal is the tagged union handed to the planner: exactly one of Samples or
// Chapters is populated, according to Kind.
type Signal struct {
	Kind     Kind
	Samples  []RawSample
	Chapters []Chapter
}

// Aggregate dispatches on the signal kind and produces ordered,
// non-overlapping scored intervals. The score function only applies to
// chapter signals and may be nil.
func (s Signal) Aggregate(videoDuration, tolerance float64, score ScoreFunc) ([]interval.ScoredInterval, error) {
	switch s.Kind {
	case KindHeatmap:
		return Heatmap(s.Samples, videoDuration, tolerance)
	case KindChapters:
		return Chapters(s.Chapters, videoDuration, tolerance, score)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}
