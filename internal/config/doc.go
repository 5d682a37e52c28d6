// Package config defines the persisted user settings and their
// defaults.
//
// Settings are stored as JSON at the platform config location
// (DefaultPath) and loaded with Load; a missing file produces the
// defaults. CLI flags override loaded values per run.
package config
