package planner

import (
	"errors"
	"fmt"

	"heatcut/internal/selector"
	"heatcut/internal/signal"
)

// ErrDurationMismatch reports aggregated signal whose covered span disagrees
// with the authoritative video duration. The aggregators police gaps between
// neighboring intervals; this check covers the leading and trailing edges.
var ErrDurationMismatch = errors.New("signal span does not match video duration")

// Request carries everything one planning run needs. VideoDuration is the
// authoritative duration from the signal provider. Tolerance bounds both the
// aggregator's gap check and the span check here; zero picks the aggregator
// default.
type Request struct {
	VideoDuration float64
	Signal        signal.Signal
	Tolerance     float64
	Score         signal.ScoreFunc
	Selection     selector.Config
}

// Plan is the ordered clip plan for one video, annotated with the source
// duration for downstream consumers.
type Plan struct {
	VideoDuration float64
	Windows       []selector.Window
}

// Build aggregates the request's signal, validates coverage of the declared
// duration, and runs selection. The result is ready to hand to a renderer.
func Build(req Request) (*Plan, error) {
	if req.VideoDuration <= 0 {
		return nil, fmt.Errorf("%w: video duration %v", ErrDurationMismatch, req.VideoDuration)
	}

	intervals, err := req.Signal.Aggregate(req.VideoDuration, req.Tolerance, req.Score)
	if err != nil {
		return nil, err
	}

	tolerance := req.Tolerance
	if tolerance <= 0 {
		// Mirror the aggregator defaults: one sampling unit for heatmaps,
		// one second for chapter boundaries.
		tolerance = 1
		if req.Signal.Kind == signal.KindHeatmap {
			tolerance = intervals[0].Duration()
		}
	}
	first, last := intervals[0], intervals[len(intervals)-1]
	if first.Start > tolerance {
		return nil, fmt.Errorf("%w: signal starts at %.3fs", ErrDurationMismatch, first.Start)
	}
	if req.VideoDuration-last.End > tolerance {
		return nil, fmt.Errorf("%w: signal ends at %.3fs of %.3fs", ErrDurationMismatch, last.End, req.VideoDuration)
	}

	windows, err := selector.Select(intervals, req.Selection)
	if err != nil {
		return nil, err
	}
	return &Plan{VideoDuration: req.VideoDuration, Windows: windows}, nil
}
