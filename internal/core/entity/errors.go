package entity

import (
	"errors"
	"fmt"
)

// Error kinds shared by every feature. Feature errors wrap one of these so
// transports can map them with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrValidation          = errors.New("validation failed")
	ErrInvariantViolation  = errors.New("invariant violation")
)

// NotFoundError names the missing entity and the key it was looked up by.
type NotFoundError struct {
	Entity string
	Key    string
}

// NewNotFound builds a NotFoundError for an ID lookup.
func NewNotFound(entityName string, id ID) *NotFoundError {
	return &NotFoundError{Entity: entityName, Key: id.String()}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key '%s' not found", e.Entity, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
