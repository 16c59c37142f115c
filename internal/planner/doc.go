// Package planner composes signal aggregation and clip selection into a
// single planning run for one video. It owns the cross-component check that
// the aggregated signal actually spans the declared video duration before any
// selection happens.
package planner
