package youtube

import (
	"encoding/json"
	"fmt"

	"heatcut/internal/signal"
)

// Marker map keys YouTube uses inside multiMarkersPlayerBarRenderer.
const (
	markerKeyHeatmap  = "HEATSEEKER"
	markerKeyChapters = "DESCRIPTION_CHAPTERS"
)

type initialData struct {
	PlayerOverlays struct {
		PlayerOverlayRenderer struct {
			DecoratedPlayerBarRenderer struct {
				DecoratedPlayerBarRenderer struct {
					PlayerBar struct {
						MultiMarkersPlayerBarRenderer struct {
							MarkersMap []markersMapEntry `json:"markersMap"`
						} `json:"multiMarkersPlayerBarRenderer"`
					} `json:"playerBar"`
				} `json:"decoratedPlayerBarRenderer"`
			} `json:"decoratedPlayerBarRenderer"`
		} `json:"playerOverlayRenderer"`
	} `json:"playerOverlays"`
}

type markersMapEntry struct {
	Key   string `json:"key"`
	Value struct {
		Heatmap struct {
			HeatmapRenderer struct {
				HeatMarkers []struct {
					HeatMarkerRenderer heatMarker `json:"heatMarkerRenderer"`
				} `json:"heatMarkers"`
			} `json:"heatmapRenderer"`
		} `json:"heatmap"`
		Chapters []struct {
			ChapterRenderer chapterRenderer `json:"chapterRenderer"`
		} `json:"chapters"`
	} `json:"value"`
}

type heatMarker struct {
	TimeRangeStartMillis int64   `json:"timeRangeStartMillis"`
	MarkerDurationMillis int64   `json:"markerDurationMillis"`
	IntensityScore       float64 `json:"heatMarkerIntensityScoreNormalized"`
}

type chapterRenderer struct {
	Title struct {
		SimpleText string `json:"simpleText"`
	} `json:"title"`
	TimeRangeStartMillis int64 `json:"timeRangeStartMillis"`
}

func parseMarkers(blob []byte, videoDuration float64) (*Markers, error) {
	var data initialData
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, fmt.Errorf("decode ytInitialData: %w", err)
	}

	markersMap := data.PlayerOverlays.PlayerOverlayRenderer.
		DecoratedPlayerBarRenderer.DecoratedPlayerBarRenderer.
		PlayerBar.MultiMarkersPlayerBarRenderer.MarkersMap

	markers := &Markers{}
	for _, entry := range markersMap {
		switch entry.Key {
		case markerKeyChapters:
			markers.Chapters = decodeChapters(entry, videoDuration)
		case markerKeyHeatmap:
			markers.Heatmap = decodeHeatMarkers(entry)
		}
	}

	if len(markers.Chapters) > 0 {
		labelWithChapters(markers.Heatmap, markers.Chapters)
	}
	return markers, nil
}

func decodeChapters(entry markersMapEntry, videoDuration float64) []signal.Chapter {
	raw := entry.Value.Chapters
	chapters := make([]signal.Chapter, 0, len(raw))
	for i, chapter := range raw {
		start := millisToSeconds(chapter.ChapterRenderer.TimeRangeStartMillis)
		end := videoDuration
		if i+1 < len(raw) {
			end = millisToSeconds(raw[i+1].ChapterRenderer.TimeRangeStartMillis)
		}
		chapters = append(chapters, signal.Chapter{
			Start: start,
			End:   end,
			Title: chapter.ChapterRenderer.Title.SimpleText,
		})
	}
	return chapters
}

func decodeHeatMarkers(entry markersMapEntry) []signal.RawSample {
	raw := entry.Value.Heatmap.HeatmapRenderer.HeatMarkers
	samples := make([]signal.RawSample, 0, len(raw))
	for _, marker := range raw {
		start := millisToSeconds(marker.HeatMarkerRenderer.TimeRangeStartMillis)
		samples = append(samples, signal.RawSample{
			Start: start,
			End:   start + millisToSeconds(marker.HeatMarkerRenderer.MarkerDurationMillis),
			Value: marker.HeatMarkerRenderer.IntensityScore,
		})
	}
	return samples
}

// labelWithChapters stamps each sample with the last chapter starting at or
// before it.
func labelWithChapters(samples []signal.RawSample, chapters []signal.Chapter) {
	for i := range samples {
		for _, chapter := range chapters {
			if samples[i].Start >= chapter.Start {
				samples[i].Label = chapter.Title
			}
		}
	}
}

func millisToSeconds(millis int64) float64 {
	return float64(millis) / 1000
}
