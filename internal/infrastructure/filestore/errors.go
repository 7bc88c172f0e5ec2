package filestore

import (
	"errors"
	"fmt"
	"io/fs"
)

// IOError reports a failure to read or write the registry file.
// It never wraps a decode failure; those surface as *lifecycle.ParseError.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether err is an IOError for a missing file.
func IsNotExist(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr) && errors.Is(ioErr.Err, fs.ErrNotExist)
}
