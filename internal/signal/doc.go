// Package signal normalizes raw interest signals into scored intervals.
//
// Two signal kinds exist: viewer heatmaps (uniform samples with a normalized
// engagement value) and chapter lists (named ranges scored by duration unless
// the caller supplies its own scoring function). Both variants reconcile
// boundaries deterministically and reject signals that are empty or leave
// coverage gaps wider than the tolerance, so the selector downstream never has
// to know where its intervals came from.
package signal
