// Package signalcache persists fetched interest signals in SQLite so
// repeated runs against the same video do not re-scrape the watch page.
//
// Only upstream signal data is cached, keyed by video ID and signal kind;
// planning results are never persisted. Entries expire by age and the schema
// carries a version so incompatible databases fail loudly instead of
// misreading.
package signalcache
