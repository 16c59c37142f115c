// Package config loads, normalizes, and validates heatcut configuration.
//
// Configuration comes from a TOML file (~/.config/heatcut/config.toml by
// default, or a project-local heatcut.toml) layered over repository defaults.
// All path fields are tilde-expanded and absolute after Load. CLI flags map
// onto the [selection] section per run; nothing in this package is read from
// ambient state after load, so planning stays independently testable.
package config
