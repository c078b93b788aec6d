package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrLoad               = errors.New("load error")
	ErrRecordMissingField = errors.New("record missing field")
	ErrWrite              = errors.New("write error")
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrPermission         = errors.New("permission denied")
)

// LoadError reports a source that is missing, unreadable, or structurally
// malformed. It aborts the run before any merge happens.
type LoadError struct {
	Source string
	Path   string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("load %s (%s): %v", e.Source, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// NewLoadError creates a LoadError for the given source.
func NewLoadError(source, path string, err error) *LoadError {
	return &LoadError{Source: source, Path: path, Err: err}
}

// RecordMissingFieldError identifies a record that lacks its key or value.
type RecordMissingFieldError struct {
	Source   string
	Position int
	Field    string
}

func (e *RecordMissingFieldError) Error() string {
	return fmt.Sprintf("record %d of source %s: missing %s", e.Position, e.Source, e.Field)
}

func (e *RecordMissingFieldError) Unwrap() error { return ErrRecordMissingField }

// WriteError reports an output sink that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
