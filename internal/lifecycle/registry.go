package lifecycle

import "time"

// Registry holds models in insertion order, unique by (name, version).
// The zero value is an empty registry ready to use.
type Registry struct {
	models []*Model
	index  map[Key]int
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		models: make([]*Model, 0),
		index:  make(map[Key]int),
	}
}

// Add appends a model. It returns a *DuplicateKeyError and leaves the registry
// unchanged if a model with the same name and version is already present.
func (r *Registry) Add(m *Model) error {
	if m == nil {
		return ErrNilModel
	}
	key := m.Key()
	if _, exists := r.index[key]; exists {
		return &DuplicateKeyError{Key: key}
	}
	if r.index == nil {
		r.index = make(map[Key]int)
	}
	r.index[key] = len(r.models)
	r.models = append(r.models, m)
	return nil
}

// Remove deletes the model with the given key and reports whether one was removed.
func (r *Registry) Remove(name, version string) bool {
	key := Key{Name: name, Version: version}
	i, ok := r.index[key]
	if !ok {
		return false
	}
	r.models = append(r.models[:i], r.models[i+1:]...)
	delete(r.index, key)
	for j := i; j < len(r.models); j++ {
		r.index[r.models[j].Key()] = j
	}
	return true
}

// Get returns the model with the given key.
func (r *Registry) Get(name, version string) (*Model, bool) {
	i, ok := r.index[Key{Name: name, Version: version}]
	if !ok {
		return nil, false
	}
	return r.models[i], true
}

// Len returns the number of models
func (r *Registry) Len() int {
	return len(r.models)
}

// List returns all models in insertion order. The slice is a copy.
func (r *Registry) List() []*Model {
	result := make([]*Model, len(r.models))
	copy(result, r.models)
	return result
}

// ListByStatus returns the models whose status at the reference time matches.
// A zero reference time means now.
func (r *Registry) ListByStatus(status Status, at time.Time) []*Model {
	if at.IsZero() {
		at = now()
	}
	result := make([]*Model, 0)
	for _, m := range r.models {
		if m.StatusAt(at) == status {
			result = append(result, m)
		}
	}
	return result
}

// Active returns the models active at the reference time.
func (r *Registry) Active(at time.Time) []*Model {
	return r.ListByStatus(Active, at)
}

// Deprecated returns the models deprecated at the reference time.
func (r *Registry) Deprecated(at time.Time) []*Model {
	return r.ListByStatus(Deprecated, at)
}

// Retired returns the models retired at the reference time.
func (r *Registry) Retired(at time.Time) []*Model {
	return r.ListByStatus(Retired, at)
}

// ListByName returns every version of the named model in insertion order.
func (r *Registry) ListByName(name string) []*Model {
	result := make([]*Model, 0)
	for _, m := range r.models {
		if m.Name() == name {
			result = append(result, m)
		}
	}
	return result
}

// Names returns the distinct model names in first-seen order.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, m := range r.models {
		if !seen[m.Name()] {
			seen[m.Name()] = true
			names = append(names, m.Name())
		}
	}
	return names
}

// Replace swaps the registry contents for models. Nothing changes unless every
// model is non-nil and all keys are unique.
func (r *Registry) Replace(models []*Model) error {
	next := make([]*Model, 0, len(models))
	index := make(map[Key]int, len(models))
	for _, m := range models {
		if m == nil {
			return ErrNilModel
		}
		key := m.Key()
		if _, exists := index[key]; exists {
			return &DuplicateKeyError{Key: key}
		}
		index[key] = len(next)
		next = append(next, m)
	}
	r.models = next
	r.index = index
	return nil
}

// Snapshot serializes the registry, deriving each record's status at the
// reference time. A zero reference time means now.
func (r *Registry) Snapshot(at time.Time) Document {
	if at.IsZero() {
		at = now()
	}
	records := make([]Record, 0, len(r.models))
	for _, m := range r.models {
		records = append(records, m.Serialize(at))
	}
	return NewDocument(records)
}
