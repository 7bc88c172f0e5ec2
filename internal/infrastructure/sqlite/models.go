package sqlite

import (
	"time"

	"github.com/zjrosen/modelctl/internal/lifecycle"
)

// ModelRow is a row of the models table. Timestamps use the registry file's
// encoding (lifecycle.FormatTimestamp), so every model the builder accepts
// round-trips exactly.
type ModelRow struct {
	Name          string
	Version       string
	CreatedAt     string
	DeprecationAt *string // nullable
	RetirementAt  *string // nullable
	UpdatedAt     string
}

func toModelRow(m *lifecycle.Model, updated time.Time) *ModelRow {
	row := &ModelRow{
		Name:      m.Name(),
		Version:   m.Version(),
		CreatedAt: lifecycle.FormatTimestamp(m.Created()),
		UpdatedAt: lifecycle.FormatTimestamp(updated),
	}
	if t, ok := m.Deprecation(); ok {
		v := lifecycle.FormatTimestamp(t)
		row.DeprecationAt = &v
	}
	if t, ok := m.Retirement(); ok {
		v := lifecycle.FormatTimestamp(t)
		row.RetirementAt = &v
	}
	return row
}

// toDomain rebuilds the model through the builder so stored rows are held to
// the same invariants as freshly constructed ones. index is the row's position
// and is reported in the returned *lifecycle.ParseError.
func (r *ModelRow) toDomain(index int) (*lifecycle.Model, error) {
	created, err := lifecycle.ParseTimestamp(r.CreatedAt)
	if err != nil {
		return nil, &lifecycle.ParseError{Index: index, Field: "created_at", Err: err}
	}
	b := lifecycle.NewBuilder(r.Name).Version(r.Version).CreatedAt(created)

	if r.DeprecationAt != nil {
		t, err := lifecycle.ParseTimestamp(*r.DeprecationAt)
		if err != nil {
			return nil, &lifecycle.ParseError{Index: index, Field: "deprecation_at", Err: err}
		}
		b.DeprecatedAt(t)
	}
	if r.RetirementAt != nil {
		t, err := lifecycle.ParseTimestamp(*r.RetirementAt)
		if err != nil {
			return nil, &lifecycle.ParseError{Index: index, Field: "retirement_at", Err: err}
		}
		b.RetiredAt(t)
	}

	m, err := b.Build()
	if err != nil {
		return nil, &lifecycle.ParseError{Index: index, Err: err}
	}
	return m, nil
}
