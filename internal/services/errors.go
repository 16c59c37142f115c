package services

import (
	"errors"
	"fmt"
	"strings"

	"heatcut/internal/interval"
	"heatcut/internal/planner"
	"heatcut/internal/selector"
	"heatcut/internal/signal"
)

var (
	// ErrValidation covers caller mistakes: malformed intervals, scores,
	// alignments, or selection configs. Surfaced immediately, never retried.
	ErrValidation = errors.New("validation error")
	// ErrSignal covers unusable or inconsistent upstream signal data.
	ErrSignal = errors.New("signal error")
	// ErrNoOutput covers well-formed requests that yield no clips.
	ErrNoOutput = errors.New("no output")
	// ErrExternalTool covers failures in yt-dlp, ffmpeg, or the watch-page
	// fetch.
	ErrExternalTool = errors.New("external tool error")
	// ErrInternal covers invariant violations inside the selector. These are
	// defects, not user-facing conditions.
	ErrInternal = errors.New("internal error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided class marker for later classification.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error from anywhere in the pipeline onto one of the class
// markers. Unrecognized errors classify as external tool failures, the only
// non-deterministic part of a run.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSignal), errors.Is(err, ErrNoOutput),
		errors.Is(err, ErrExternalTool), errors.Is(err, ErrInternal):
		return classMarker(err)
	case errors.Is(err, interval.ErrInvalidInterval),
		errors.Is(err, interval.ErrInvalidScore),
		errors.Is(err, selector.ErrInvalidAlignment),
		errors.Is(err, selector.ErrInvalidConfig),
		errors.Is(err, signal.ErrUnknownKind):
		return ErrValidation
	case errors.Is(err, signal.ErrEmptySignal),
		errors.Is(err, signal.ErrNonCoveringSignal),
		errors.Is(err, planner.ErrDurationMismatch):
		return ErrSignal
	case errors.Is(err, selector.ErrNoClipsProduced):
		return ErrNoOutput
	case errors.Is(err, selector.ErrOverlapInvariant):
		return ErrInternal
	default:
		return ErrExternalTool
	}
}

// ExitCode maps an error class to the process exit code the CLI reports.
func ExitCode(err error) int {
	switch Classify(err) {
	case nil:
		return 0
	case ErrValidation:
		return 2
	case ErrSignal:
		return 3
	case ErrNoOutput:
		return 4
	case ErrExternalTool:
		return 5
	default:
		return 1
	}
}

func classMarker(err error) error {
	for _, marker := range []error{ErrValidation, ErrSignal, ErrNoOutput, ErrExternalTool, ErrInternal} {
		if errors.Is(err, marker) {
			return marker
		}
	}
	return ErrExternalTool
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
