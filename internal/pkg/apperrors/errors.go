package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")

	ErrConflict = errors.New("resource conflict")

	// ErrStoreUnavailable marks a credential, session or result store that
	// could not be reached. Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrMissingColumn = errors.New("missing required columns")

	ErrUnmappedCategory = errors.New("unmapped category value")

	ErrModelUnavailable = errors.New("prediction model unavailable")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {

	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// MissingColumnError lists the required upload columns that were absent.
type MissingColumnError struct {
	Missing []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("Missing required columns: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// UnmappedCategoryError reports a binary or categorical value outside the
// field's known levels. Row is zero based within the batch.
type UnmappedCategoryError struct {
	Row   int
	Field string
	Value string
}

func (e *UnmappedCategoryError) Error() string {
	return fmt.Sprintf("row %d: unexpected value %q for field '%s'", e.Row+1, e.Value, e.Field)
}

func (e *UnmappedCategoryError) Unwrap() error {
	return ErrUnmappedCategory
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

func WrapStoreUnavailable(cause error, message string) error {
	return &AppError{
		Code:    "STORE_UNAVAILABLE",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrStoreUnavailable, cause),
	}
}
