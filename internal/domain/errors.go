package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrConflict     = errors.New("conflict with current state")
)

// ConflictError is a refusal that protects a referential invariant: deleting a
// client that still has documents, deleting the default VAT rate, and so on.
// Carries enough context (entity, id, dependent count) for the caller to
// resolve the conflict. Matches ErrConflict via errors.Is.
type ConflictError struct {
	Entity     string // "client", "vat_rate"
	ID         string
	Name       string
	Dependents int    // dependent document count, when relevant
	Reason     string
}

func (e *ConflictError) Error() string {
	if e.Dependents > 0 {
		return fmt.Sprintf("%s %q (%s): %s (%d dependent documents)", e.Entity, e.Name, e.ID, e.Reason, e.Dependents)
	}
	return fmt.Sprintf("%s %q (%s): %s", e.Entity, e.Name, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ValidationError wraps ErrInvalidInput with the offending field and detail.
// Out-of-range values are rejected, never clamped.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
