package service

import (
	"errors"
	"fmt"
	"strings"

	"reviewhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrDuplicateReview    = errors.New("you have already reviewed this title")
	ErrUnknownReference   = errors.New("object with this slug does not exist")
	ErrUniqueViolation    = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid confirmation code")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserConflict       = errors.New("username or email is already registered to another account")
	ErrBlankText          = errors.New("this field may not be blank")
)

// NotFoundError names the missing entity and matches ErrNotFound.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FieldError ties a sentinel to the request field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// notFound maps gorm's missing-row error to a NotFoundError for entity.
func notFound(entity string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return err
}

// uniqueField converts a store unique violation into a field-scoped
// ErrUniqueViolation, guessing the field from the index name.
func uniqueField(err error, fields ...string) error {
	var uv *repository.UniqueViolationError
	if !errors.As(err, &uv) {
		return err
	}
	for _, f := range fields {
		if strings.Contains(uv.Constraint, f) {
			return fieldErr(f, fmt.Errorf("%s %w", f, ErrUniqueViolation))
		}
	}
	return ErrUniqueViolation
}
