package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStatus is returned by ParseStatus for unknown status names.
var ErrInvalidStatus = errors.New("invalid status")

// Status is the lifecycle state of a model at a reference time.
type Status int

const (
	Active Status = iota
	Deprecated
	Retired
)

// String returns the lowercase persisted form of the status.
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Deprecated:
		return "deprecated"
	case Retired:
		return "retired"
	default:
		return "unknown"
	}
}

// ParseStatus parses "active", "deprecated" or "retired" (case-insensitive).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return Active, nil
	case "deprecated":
		return Deprecated, nil
	case "retired":
		return Retired, nil
	default:
		return Active, fmt.Errorf("%w: %q (want active, deprecated or retired)", ErrInvalidStatus, s)
	}
}

// Statuses returns all statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Active, Deprecated, Retired}
}
