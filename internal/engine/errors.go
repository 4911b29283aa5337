package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across components. Wrapped errors carry the
// offending column or template, so callers match with errors.Is.
var (
	ErrColumnNotFound   = errors.New("column not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// EmptyInputError reports input with no parseable content.
type EmptyInputError struct {
	Source string
}

func (e *EmptyInputError) Error() string {
	if e.Source == "" {
		return "empty input"
	}
	return fmt.Sprintf("empty input: %s", e.Source)
}

// EncodingError reports bytes that cannot be decoded under the declared
// encoding. The engine never coerces undecodable input silently.
type EncodingError struct {
	Encoding string
	Detail   string
}

func (e *EncodingError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("encoding error: input is not valid %s", e.Encoding)
	}
	return fmt.Sprintf("encoding error: %s (%s)", e.Detail, e.Encoding)
}

// MissingKeyColumnError reports a join or diff key column that does not
// exist in one of the involved tables.
type MissingKeyColumnError struct {
	Column string
	Table  string
}

func (e *MissingKeyColumnError) Error() string {
	return fmt.Sprintf("key column %q missing from table %q", e.Column, e.Table)
}

// SchemaMismatchError reports an append merge across incompatible headers.
type SchemaMismatchError struct {
	Table string
	Want  []string
	Got   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: table %q has headers [%s], expected [%s]",
		e.Table, strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
}

// DuplicateKeyError reports a repeated key value when the caller asked for
// duplicates to be rejected instead of last-wins.
type DuplicateKeyError struct {
	Key   string
	Table string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in table %q", e.Key, e.Table)
}

// InvalidTemplateError reports a template that fails store validation.
type InvalidTemplateError struct {
	Reason string
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("invalid template: %s", e.Reason)
}
