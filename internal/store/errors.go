package store

import (
	"errors"
	"fmt"
)

// StoreError represents a failed store operation.
//
// Store errors include:
//   - Not found: Update or Delete named an id the store does not hold
//   - Protected: Delete named an entity the store refuses to remove
//     (e.g. system parameters)
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Kind names the entity collection ("card", "image", ...).
	Kind string

	// ID is the entity id the operation named.
	ID string
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the id is not present in the store.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeProtected indicates the entity may not be deleted.
	ErrCodeProtected ErrorCode = "PROTECTED"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Code, e.Kind, e.ID)
}

// IsNotFound returns true if the error is a not-found store error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeNotFound
}

// IsProtected returns true if the error is a protected-entity store error.
// Uses errors.As to handle wrapped errors.
func IsProtected(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeProtected
}

// NewNotFoundError creates a StoreError for a missing id.
func NewNotFoundError(kind, id string) *StoreError {
	return &StoreError{Code: ErrCodeNotFound, Kind: kind, ID: id}
}

// NewProtectedError creates a StoreError for an undeletable entity.
func NewProtectedError(kind, id string) *StoreError {
	return &StoreError{Code: ErrCodeProtected, Kind: kind, ID: id}
}
