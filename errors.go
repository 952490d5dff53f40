package main

import (
	"errors"
	"sort"
	"strings"
)

// ErrCategoryNotFound is returned when a transaction references a category
// that does not exist for the owner at write time (e.g. deleted between UI
// load and submit). Surfaced separately from validation failures so the
// client can prompt re-selection.
var ErrCategoryNotFound = errors.New("category not found")

// ValidationError carries field-level detail for malformed input. Nothing is
// silently coerced; the caller gets every offending field back.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// isUniqueConstraintError matches the duplicate-key error text of both the
// postgres driver and the sqlite driver used in tests.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
