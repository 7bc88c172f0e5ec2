package lifecycle

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the encoding used for every persisted timestamp.
// Values are always written in UTC with an explicit Z suffix.
const TimestampLayout = time.RFC3339Nano

// Accepted layouts for offset-less inputs written by earlier tooling. They are
// interpreted as UTC.
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FormatTimestamp renders t in the persisted timestamp encoding.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp decodes a persisted or user-supplied timestamp.
// RFC 3339 values keep their offset and are converted to UTC. Values without an
// offset, including bare dates, are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Record is the structured form of a model.
// Status is derived when the record is produced and ignored by Deserialize.
type Record struct {
	Name            string  `json:"name" yaml:"name"`
	Version         string  `json:"version" yaml:"version"`
	CreatedDate     string  `json:"created_date" yaml:"created_date"`
	DeprecationDate *string `json:"deprecation_date" yaml:"deprecation_date"`
	RetirementDate  *string `json:"retirement_date" yaml:"retirement_date"`
	Status          string  `json:"status,omitempty" yaml:"status,omitempty"`
}

// Document is the top-level persisted registry shape.
// Models is a pointer so a missing "models" field can be told apart from an empty list.
type Document struct {
	Models *[]Record `json:"models" yaml:"models"`
}

// Records returns the document's records, or nil when the field is absent.
func (d Document) Records() []Record {
	if d.Models == nil {
		return nil
	}
	return *d.Models
}

// NewDocument wraps records in a Document. A nil slice becomes an empty list.
func NewDocument(records []Record) Document {
	if records == nil {
		records = []Record{}
	}
	return Document{Models: &records}
}

// Serialize converts the model to its record form, deriving status at the given time.
func (m *Model) Serialize(at time.Time) Record {
	rec := Record{
		Name:        m.name,
		Version:     m.version,
		CreatedDate: FormatTimestamp(m.created),
		Status:      m.StatusAt(at).String(),
	}
	if m.deprecation != nil {
		s := FormatTimestamp(*m.deprecation)
		rec.DeprecationDate = &s
	}
	if m.retirement != nil {
		s := FormatTimestamp(*m.retirement)
		rec.RetirementDate = &s
	}
	return rec
}

// Deserialize rebuilds a model from its record form. Construction validation runs
// again, so a record with inconsistent milestones fails with the same errors as
// the builder, wrapped in a *ParseError.
func Deserialize(rec Record) (*Model, error) {
	return deserializeAt(rec, -1)
}

func deserializeAt(rec Record, index int) (*Model, error) {
	if rec.Name == "" {
		return nil, &ParseError{Index: index, Field: "name", Err: ErrMissingField}
	}
	if rec.Version == "" {
		return nil, &ParseError{Index: index, Field: "version", Err: ErrMissingField}
	}
	if rec.CreatedDate == "" {
		return nil, &ParseError{Index: index, Field: "created_date", Err: ErrMissingField}
	}

	created, err := ParseTimestamp(rec.CreatedDate)
	if err != nil {
		return nil, &ParseError{Index: index, Field: "created_date", Err: err}
	}
	b := NewBuilder(rec.Name).Version(rec.Version).CreatedAt(created)

	if rec.DeprecationDate != nil && *rec.DeprecationDate != "" {
		t, err := ParseTimestamp(*rec.DeprecationDate)
		if err != nil {
			return nil, &ParseError{Index: index, Field: "deprecation_date", Err: err}
		}
		b.DeprecatedAt(t)
	}
	if rec.RetirementDate != nil && *rec.RetirementDate != "" {
		t, err := ParseTimestamp(*rec.RetirementDate)
		if err != nil {
			return nil, &ParseError{Index: index, Field: "retirement_date", Err: err}
		}
		b.RetiredAt(t)
	}

	m, err := b.Build()
	if err != nil {
		return nil, &ParseError{Index: index, Err: err}
	}
	return m, nil
}

// DecodeDocument deserializes every record in the document. It fails on the first
// bad record and returns no models in that case.
func DecodeDocument(doc Document) ([]*Model, error) {
	if doc.Models == nil {
		return nil, &ParseError{Index: -1, Field: "models", Err: ErrMissingField}
	}
	records := *doc.Models
	models := make([]*Model, 0, len(records))
	for i, rec := range records {
		m, err := deserializeAt(rec, i)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}
