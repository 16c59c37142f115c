// Package services defines the shared error taxonomy used by the pipeline
// and the CLI.
//
// Core packages expose their own sentinel errors; this package groups them
// into classes (validation, signal quality, empty production, external tool,
// internal defect) so the CLI can pick exit codes and phrasing without
// knowing every sentinel. Wrap tags an error with one of the class markers
// plus component/operation context for consistent messages.
package services
