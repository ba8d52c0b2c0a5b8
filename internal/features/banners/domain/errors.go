package domain

import (
	"errors"
	"fmt"

	"banner-service/internal/core/entity"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrNotFound            = entity.ErrNotFound
	ErrConstraintViolation = entity.ErrConstraintViolation
	ErrValidation          = entity.ErrValidation
	ErrInvariantViolation  = entity.ErrInvariantViolation
)

var (
	ErrDuplicateName        = fmt.Errorf("%w: banner name already exists", ErrConstraintViolation)
	ErrDuplicateLanguage    = fmt.Errorf("%w: duplicate translation language", ErrValidation)
	ErrMultipleTargets      = fmt.Errorf("%w: section may link to only one of product, collection or externalLink", ErrValidation)
	ErrMissingTarget        = fmt.Errorf("%w: new section must link to a product, a collection or an externalLink", ErrValidation)
	ErrMissingAsset         = fmt.Errorf("%w: new section requires an assetId", ErrValidation)
	ErrForeignSection       = fmt.Errorf("%w: section belongs to another banner", ErrValidation)
	ErrUnknownTranslation   = fmt.Errorf("%w: translation does not belong to the section", ErrInvariantViolation)
	ErrDuplicateTranslation = fmt.Errorf("%w: translation referenced more than once", ErrInvariantViolation)
)

// NotFoundError is the typed form of ErrNotFound.
type NotFoundError = entity.NotFoundError

// ValidationError carries field level messages from input validation.
type ValidationError struct {
	Fields map[string]string
	err    error
}

// NewValidationError wraps err, flattening ozzo field errors when present.
func NewValidationError(err error) *ValidationError {
	ve := &ValidationError{Fields: map[string]string{}, err: err}
	flatten("", err, ve.Fields)
	return ve
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidation, e.err)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func flatten(prefix string, err error, out map[string]string) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		key := prefix
		if key == "" {
			key = "input"
		}
		out[key] = err.Error()
		return
	}
	for field, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		flatten(key, fieldErr, out)
	}
}
