package lifecycle

import (
	"fmt"
	"time"
)

// Builder provides a fluent API for creating models
type Builder struct {
	name        string
	version     string
	created     time.Time
	createdSet  bool
	deprecation *time.Time
	retirement  *time.Time
}

// NewBuilder creates a new model builder
func NewBuilder(name string) *Builder {
	return &Builder{
		name: name,
	}
}

// Version sets the model version
func (b *Builder) Version(v string) *Builder {
	b.version = v
	return b
}

// CreatedAt sets the creation time. When it is never called, Build uses now.
// An explicit zero time is kept as the zero instant.
func (b *Builder) CreatedAt(t time.Time) *Builder {
	b.created = t
	b.createdSet = true
	return b
}

// DeprecatedAt sets the deprecation milestone
func (b *Builder) DeprecatedAt(t time.Time) *Builder {
	t = t.UTC()
	b.deprecation = &t
	return b
}

// RetiredAt sets the retirement milestone
func (b *Builder) RetiredAt(t time.Time) *Builder {
	t = t.UTC()
	b.retirement = &t
	return b
}

// Build creates the model, validating required fields and milestone ordering.
// Ordering checks run in a fixed order and the first violation is returned.
func (b *Builder) Build() (*Model, error) {
	if b.name == "" {
		return nil, ErrEmptyName
	}
	if b.version == "" {
		return nil, ErrEmptyVersion
	}

	created := b.created.UTC()
	if !b.createdSet {
		created = now()
	}

	if b.deprecation != nil && b.deprecation.Before(created) {
		return nil, ErrDeprecationBeforeCreation
	}
	if b.deprecation != nil && b.retirement != nil && b.retirement.Before(*b.deprecation) {
		return nil, ErrRetirementBeforeDeprecation
	}
	if b.deprecation == nil && b.retirement != nil && b.retirement.Before(created) {
		return nil, ErrRetirementBeforeCreation
	}
	for _, t := range []*time.Time{&created, b.deprecation, b.retirement} {
		if t != nil && !inEncodableRange(*t) {
			return nil, fmt.Errorf("%w: %s", ErrTimestampOutOfRange, t.Format(time.RFC3339))
		}
	}

	return newModel(b.name, b.version, created, copyTime(b.deprecation), copyTime(b.retirement)), nil
}

// Option configures optional fields for NewModel.
type Option func(*Builder)

// WithCreated sets the creation time.
func WithCreated(t time.Time) Option {
	return func(b *Builder) { b.CreatedAt(t) }
}

// WithDeprecation sets the deprecation milestone.
func WithDeprecation(t time.Time) Option {
	return func(b *Builder) { b.DeprecatedAt(t) }
}

// WithRetirement sets the retirement milestone.
func WithRetirement(t time.Time) Option {
	return func(b *Builder) { b.RetiredAt(t) }
}

// NewModel builds a model from a name, version and options.
func NewModel(name, version string, opts ...Option) (*Model, error) {
	b := NewBuilder(name).Version(version)
	for _, opt := range opts {
		opt(b)
	}
	return b.Build()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// inEncodableRange reports whether t has a four-digit year, the range
// FormatTimestamp output can be parsed back from.
func inEncodableRange(t time.Time) bool {
	y := t.Year()
	return y >= 0 && y <= 9999
}
