// Package flags holds read-only feature flags loaded from configuration.
// Unknown flags are always off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/modelctl/internal/log"
)

const (
	// FlagSQLiteMirror makes every registry write from the CLI also refresh the
	// SQLite mirror.
	FlagSQLiteMirror = "sqlite-mirror"

	// FlagStrictDates rejects date-only and offset-less values on the command
	// line, requiring full RFC 3339 timestamps.
	FlagStrictDates = "strict-dates"
)

// Known lists every flag the CLI reads.
func Known() []string {
	return []string{FlagSQLiteMirror, FlagStrictDates}
}

// Registry holds feature flag state. It is never modified after New.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. The map is copied.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	for name := range r.flags {
		if !slices.Contains(Known(), name) {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags), "flags", r.All())
	return r
}

// Enabled reports whether the named flag is on. Nil-safe.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
