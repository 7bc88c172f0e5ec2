package lifecycle

import "time"

// Provider defines read-only access to a registry of models.
type Provider interface {
	// Get returns the model with the given name and version.
	// The boolean is false if no model matches.
	Get(name, version string) (*Model, bool)

	// List returns all models in insertion order.
	List() []*Model

	// ListByStatus returns models whose status at the reference time matches.
	// A zero reference time means now.
	ListByStatus(status Status, at time.Time) []*Model

	// ListByName returns all versions of the named model.
	ListByName(name string) []*Model

	// Len returns the number of models.
	Len() int
}

// Compile-time check that Registry implements Provider.
var _ Provider = (*Registry)(nil)
