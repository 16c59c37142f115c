package signal

import (
	"fmt"

	"heatcut/internal/interval"
)

// defaultChapterTolerance is the widest coverage gap accepted between two
// chapters when the caller does not configure one. Chapter boundaries come
// from millisecond timestamps, so a second absorbs rounding without hiding
// genuinely missing ranges.
const defaultChapterTolerance = 1.0

// Chapters converts chapter boundaries into scored intervals. The score
// function may be nil, in which case a chapter scores its own duration so
// longer chapters rank higher under intensity ordering. Boundary
// reconciliation follows the same rules as Heatmap.
func Chapters(chapters []Chapter, videoDuration, tolerance float64, score ScoreFunc) ([]interval.ScoredInterval, error) {
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: no chapters", ErrEmptySignal)
	}
	if tolerance <= 0 {
		tolerance = defaultChapterTolerance
	}

	out := make([]interval.ScoredInterval, 0, len(chapters))
	for _, chapter := range chapters {
		start, end := chapter.Start, chapter.End
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
				return nil, fmt.Errorf("%w: %.3fs gap before chapter %q exceeds tolerance %.3fs",
					ErrNonCoveringSignal, start-prev.End, chapter.Title, tolerance)
			}
			if end-start <= 0 {
				continue
			}
		}
		value := end - start
		if score != nil {
			value = score(Chapter{Start: start, End: end, Title: chapter.Title})
		}
		iv, err := interval.New(start, end, value, chapter.Title, videoDuration)
		if err != nil {
			return nil, fmt.Errorf("chapter %q: %w", chapter.Title, err)
		}
		out = append(out, iv)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no usable chapters", ErrEmptySignal)
	}
	return out, nil
}
