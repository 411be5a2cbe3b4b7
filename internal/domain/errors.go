package domain

import (
	"fmt"
	"strings"
)

// SourceNotFoundError signals that the configured source location does
// not exist. Fatal; surfaced to the caller without retry.
type SourceNotFoundError struct {
	Source string
	Err    error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Source)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// SchemaError signals that the declared text field is absent from the
// loaded schema. The message lists the fields that are available.
type SchemaError struct {
	Field     string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("field %q not found, available: %s", e.Field, strings.Join(e.Available, ", "))
}

// UnsupportedCombinationError signals an invalid source/sink pairing or
// a missing required option, detected before any processing begins.
type UnsupportedCombinationError struct {
	Reason string
}

func (e *UnsupportedCombinationError) Error() string {
	return e.Reason
}
