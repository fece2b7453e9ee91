package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrIllegalTransition indicates that no transition exists for the plan's current status,
// the acting role and the requested action.
var ErrIllegalTransition = errors.New("illegal transition")

// ErrConflict indicates that the resource changed concurrently; the caller must reload and may retry.
var ErrConflict = errors.New("conflict")

// ErrDocumentGeneration indicates that a required document could not be produced.
var ErrDocumentGeneration = errors.New("document generation failed")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller's role may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// Error kinds surfaced to the presentation layer.
const (
	KindNotFound          = "NotFound"
	KindIllegalTransition = "IllegalTransition"
	KindValidation        = "ValidationError"
	KindConflict          = "Conflict"
	KindDocumentFailure   = "DocumentFailure"
	KindUnauthorized      = "Unauthorized"
	KindForbidden         = "Forbidden"
	KindInternal          = "Internal"
)

// AppError carries an HTTP-ish code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError returns an AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewIllegalTransitionError returns an AppError wrapping ErrIllegalTransition.
func NewIllegalTransitionError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message, Err: ErrIllegalTransition}
}

// NewForbiddenError returns an AppError wrapping ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// Kind classifies err into the taxonomy reported to callers.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrIllegalTransition):
		return KindIllegalTransition
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrDocumentGeneration):
		return KindDocumentFailure
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	}
	return KindInternal
}

// HTTPStatus maps err onto the status code the API responds with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindIllegalTransition:
		return http.StatusUnprocessableEntity
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindDocumentFailure:
		return http.StatusBadGateway
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
