package selector

import (
	"errors"
	"fmt"
	"slices"

	"heatcut/internal/interval"
)

var (
	// ErrNoClipsProduced reports a well-formed request that yields nothing,
	// distinct from a validation fault.
	ErrNoClipsProduced = errors.New("no clips produced")
	// ErrOverlapInvariant reports overlapping output windows. This is an
	// internal consistency fault, never a user error: source intervals are
	// non-overlapping and windowing is per-interval, so a violation means a
	// defect in the selector itself.
	ErrOverlapInvariant = errors.New("overlap invariant violated")
)

// Window is one concrete slice of source video chosen for extraction.
// Rank records selection priority (0-based, in the order windows were
// chosen), which survives the final re-sort onto the timeline.
type Window struct {
	Start  float64
	End    float64
	Source interval.ScoredInterval
	Rank   int
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 {
	return w.End - w.Start
}

// Select derives clip windows from aggregated intervals under cfg. Input
// intervals must be ordered by start and pairwise non-overlapping, which is
// what the signal aggregators guarantee. Output is ordered by start; each
// window keeps the rank it was assigned at selection time.
func Select(intervals []interval.ScoredInterval, cfg Config) ([]Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ordered := slices.Clone(intervals)
	if cfg.RankByIntensity {
		slices.SortStableFunc(ordered, func(a, b interval.ScoredInterval) int {
			switch {
			case a.Score > b.Score:
				return -1
			case a.Score < b.Score:
				return 1
			case a.Start < b.Start:
				return -1
			case a.Start > b.Start:
				return 1
			default:
				return 0
			}
		})
	}

	windows := make([]Window, 0, len(ordered))
	for _, iv := range ordered {
		window, ok := windowFor(iv, cfg)
		if !ok {
			continue
		}
		window.Rank = len(windows)
		windows = append(windows, window)
		if cfg.ClipCount > 0 && len(windows) == cfg.ClipCount {
			break
		}
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: %d source intervals, none viable", ErrNoClipsProduced, len(intervals))
	}

	slices.SortFunc(windows, func(a, b Window) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})

	if err := checkNonOverlap(windows); err != nil {
		return nil, err
	}
	return windows, nil
}

// windowFor computes the candidate window for one interval. Returns false
// when the interval cannot yield a clip of positive length.
func windowFor(iv interval.ScoredInterval, cfg Config) (Window, bool) {
	length := iv.Duration()
	if cfg.ClipLength > 0 && cfg.ClipLength < length {
		length = cfg.ClipLength
	}
	if length <= 0 {
		return Window{}, false
	}

	var start, end float64
	switch cfg.alignment() {
	case AlignRight:
		start, end = iv.End-length, iv.End
	case AlignCenter:
		mid := iv.Midpoint()
		start, end = mid-length/2, mid+length/2
		// Shift, never shrink, when clamping would cut the window.
		if start < iv.Start {
			start, end = iv.Start, iv.Start+length
		} else if end > iv.End {
			start, end = iv.End-length, iv.End
		}
	default:
		start, end = iv.Start, iv.Start+length
	}

	return Window{Start: start, End: end, Source: iv}, true
}

// checkNonOverlap re-validates the output post-condition over windows already
// sorted by start.
func checkNonOverlap(windows []Window) error {
	for i := 1; i < len(windows); i++ {
		if windows[i].Start < windows[i-1].End {
			return fmt.Errorf("%w: window [%v, %v) intersects [%v, %v)",
				ErrOverlapInvariant,
				windows[i].Start, windows[i].End,
				windows[i-1].Start, windows[i-1].End)
		}
	}
	return nil
}
