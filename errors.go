package snp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVariant is wrapped by every InvalidVariantError.
	ErrInvalidVariant = errors.New("invalid variant")

	// ErrMalformedLine is wrapped by every MalformedLineError.
	ErrMalformedLine = errors.New("malformed line")
)

// InvalidVariantError is returned when a Variant or ExtendedVariant would be
// constructed in a state that violates its invariants.
type InvalidVariantError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("invalid variant: %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidVariantError) Unwrap() error {
	return ErrInvalidVariant
}

// MalformedLineError identifies a data line that does not have 4 or 5
// whitespace-delimited fields. Parsing stops at the first such line.
type MalformedLineError struct {
	Source     string
	LineNumber int
	Line       string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("failed to parse line %d from %s. Line was '%s'", e.LineNumber, e.Source, e.Line)
}

func (e *MalformedLineError) Unwrap() error {
	return ErrMalformedLine
}
