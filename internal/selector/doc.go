// Package selector turns ordered scored intervals into concrete clip windows.
//
// Selection is a five-step pass: order intervals (chronological or intensity
// descending with ascending-start tie-breaks), derive one candidate window per
// interval according to the configured length and alignment, re-validate the
// non-overlap invariant, truncate to the clip count, and finally re-sort the
// chosen windows onto the timeline while keeping each window's selection rank.
// Selection priority and presentation order are deliberately separate fields.
package selector
