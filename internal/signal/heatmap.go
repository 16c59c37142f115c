package signal

import (
	"fmt"

	"heatcut/internal/interval"
)

// Heatmap converts raw viewer-engagement samples into scored intervals.
//
// Samples are expected to tile the video in ascending order. Malformed
// samples fail softly: anything zero-length after clamping to the video
// duration, or starting before the previous accepted sample, is skipped.
// When two samples overlap, the later start is shifted up to the earlier
// end so boundaries reconcile without discarding data. A gap wider than
// tolerance is fatal. When tolerance is zero or negative it defaults to one
// sampling unit, taken from the first sample with positive width.
func Heatmap(samples []RawSample, videoDuration, tolerance float64) ([]interval.ScoredInterval, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no heatmap samples", ErrEmptySignal)
	}
	if tolerance <= 0 {
		tolerance = samplingUnit(samples)
	}

	out := make([]interval.ScoredInterval, 0, len(samples))
	for i, sample := range samples {
		start, end := sample.Start, sample.End
		if videoDuration > 0 && end > videoDuration {
			end = videoDuration
		}
		if end-start <= 0 {
			continue
		}
		if len(out) > 0 {
			prev := out[len(out)-1]
			if start < prev.Start {
				continue
			}
			if start < prev.End {
				start = prev.End
			} else if start-prev.End > tolerance {
				return nil, fmt.Errorf("%w: %.3fs gap before sample %d exceeds tolerance %.3fs",
					ErrNonCoveringSignal, start-prev.End, i, tolerance)
			}
			if end-start <= 0 {
				continue
			}
		}
		label := sample.Label
		if label == "" {
			label = fmt.Sprintf("heat-%03d", i)
		}
		iv, err := interval.New(start, end, sample.Value, label, videoDuration)
		if err != nil {
			return nil, fmt.Errorf("heatmap sample %d: %w", i, err)
		}
		out = append(out, iv)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no usable heatmap samples", ErrEmptySignal)
	}
	return out, nil
}

func samplingUnit(samples []RawSample) float64 {
	for _, sample := range samples {
		if width := sample.End - sample.Start; width > 0 {
			return width
		}
	}
	return 1
}
