package lifecycle

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every construction error.
var ErrValidation = errors.New("invalid model")

// Construction errors, checked in this order.
var (
	ErrEmptyName                   = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyVersion                = fmt.Errorf("%w: version cannot be empty", ErrValidation)
	ErrDeprecationBeforeCreation   = fmt.Errorf("%w: deprecation date cannot be before creation date", ErrValidation)
	ErrRetirementBeforeDeprecation = fmt.Errorf("%w: retirement date cannot be before deprecation date", ErrValidation)
	ErrRetirementBeforeCreation    = fmt.Errorf("%w: retirement date cannot be before creation date", ErrValidation)
	ErrTimestampOutOfRange         = fmt.Errorf("%w: timestamp year must be between 0000 and 9999", ErrValidation)
)

// Registry errors
var (
	ErrDuplicateKey = errors.New("model already exists in registry")
	ErrNilModel     = errors.New("model cannot be nil")
)

// Record decoding errors
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// DuplicateKeyError reports an Add or Replace that would break key uniqueness.
type DuplicateKeyError struct {
	Key Key
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("model %s v%s already exists in registry", e.Key.Name, e.Key.Version)
}

// Is lets errors.Is(err, ErrDuplicateKey) match.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// ParseError reports structurally malformed persisted data.
// Index is the position of the offending record in its document, or -1.
type ParseError struct {
	Index int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	var where string
	switch {
	case e.Index >= 0 && e.Field != "":
		where = fmt.Sprintf("models[%d].%s", e.Index, e.Field)
	case e.Index >= 0:
		where = fmt.Sprintf("models[%d]", e.Index)
	case e.Field != "":
		where = e.Field
	default:
		return fmt.Sprintf("parse registry: %v", e.Err)
	}
	return fmt.Sprintf("parse registry: %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
