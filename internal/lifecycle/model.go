package lifecycle

import (
	"fmt"
	"time"
)

// now is the clock read for defaulted timestamps. Tests replace it.
var now = func() time.Time { return time.Now().UTC() }

// Key is the unique identity of a model within a Registry.
type Key struct {
	Name    string
	Version string
}

// String renders the key as name@version.
func (k Key) String() string {
	return k.Name + "@" + k.Version
}

// Model represents an AI model with lifecycle milestones.
// A Model is immutable once built; to change milestones build a new one and
// replace it in the registry.
type Model struct {
	name        string
	version     string
	created     time.Time
	deprecation *time.Time
	retirement  *time.Time
}

// newModel creates a model (used by builder)
func newModel(name, version string, created time.Time, deprecation, retirement *time.Time) *Model {
	return &Model{
		name:        name,
		version:     version,
		created:     created,
		deprecation: deprecation,
		retirement:  retirement,
	}
}

// Name returns the model name
func (m *Model) Name() string {
	return m.name
}

// Version returns the model version
func (m *Model) Version() string {
	return m.version
}

// Key returns the (name, version) registry key
func (m *Model) Key() Key {
	return Key{Name: m.name, Version: m.version}
}

// Created returns the creation time in UTC
func (m *Model) Created() time.Time {
	return m.created
}

// Deprecation returns the deprecation time and whether one is set.
func (m *Model) Deprecation() (time.Time, bool) {
	if m.deprecation == nil {
		return time.Time{}, false
	}
	return *m.deprecation, true
}

// Retirement returns the retirement time and whether one is set.
func (m *Model) Retirement() (time.Time, bool) {
	if m.retirement == nil {
		return time.Time{}, false
	}
	return *m.retirement, true
}

// StatusAt computes the lifecycle status at the given reference time.
// Retirement takes precedence over deprecation and both milestones are inclusive.
func (m *Model) StatusAt(at time.Time) Status {
	if m.retirement != nil && !at.Before(*m.retirement) {
		return Retired
	}
	if m.deprecation != nil && !at.Before(*m.deprecation) {
		return Deprecated
	}
	return Active
}

// Status computes the lifecycle status now.
func (m *Model) Status() Status {
	return m.StatusAt(now())
}

// IsActive reports whether the model is active at the reference time.
func (m *Model) IsActive(at time.Time) bool {
	return m.StatusAt(at) == Active
}

// IsDeprecated reports whether the model is deprecated at the reference time.
func (m *Model) IsDeprecated(at time.Time) bool {
	return m.StatusAt(at) == Deprecated
}

// IsRetired reports whether the model is retired at the reference time.
func (m *Model) IsRetired(at time.Time) bool {
	return m.StatusAt(at) == Retired
}

// String returns a human-readable form, e.g. "GPT-4 v1.0 [active]".
func (m *Model) String() string {
	return fmt.Sprintf("%s v%s [%s]", m.name, m.version, m.Status())
}
