package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHeader indicates the input has no header row.
var ErrNoHeader = errors.New("no header row")

// LoadError indicates the dataset file could not be opened or read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MissingColumnError indicates a column required by the schema or by an
// aggregation is absent from the loaded header.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("missing column %q", e.Column)
	}
	return fmt.Sprintf("missing column %q (available: %s)", e.Column, strings.Join(e.Available, ", "))
}
