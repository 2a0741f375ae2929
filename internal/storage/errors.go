package storage

import (
	"fmt"
)

// IOError reports a failure to open, read, create or write the data file.
// It unwraps to the underlying fs error, so errors.Is(err, fs.ErrNotExist)
// identifies a missing file.
type IOError struct {
	Op   string // "read", "write", "mkdir", "lock"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// DeserializationError reports data file content that is not valid JSON or
// does not have the expected document shape.
type DeserializationError struct {
	Path string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
