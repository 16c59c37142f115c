// Package interval defines the scored time interval that every signal source
// is normalized into before clip selection.
//
// Intervals are immutable value types validated at construction: bounds must
// sit inside the declared video duration and scores must be finite and
// non-negative. A slice of intervals produced by one aggregation run is
// pairwise non-overlapping and ordered by ascending start, which the selector
// relies on when deriving clip windows.
package interval
