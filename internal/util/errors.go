package util

import (
	"errors"
	"net/http"
)

// ErrorKind is the stable machine-readable failure class returned to callers.
type ErrorKind string

const (
	KindNoCredential        ErrorKind = "NoCredential"
	KindInvalidCredential   ErrorKind = "InvalidCredential"
	KindIdentityGone        ErrorKind = "IdentityGone"
	KindRoleNotPermitted    ErrorKind = "RoleNotPermitted"
	KindOwnershipDenied     ErrorKind = "OwnershipDenied"
	KindResourceNotFound    ErrorKind = "ResourceNotFound"
	KindQuizNotEnabled      ErrorKind = "QuizNotEnabled"
	KindDuplicateSubmission ErrorKind = "DuplicateSubmission"
	KindValidationFailed    ErrorKind = "ValidationFailed"
	KindStoreUnavailable    ErrorKind = "StoreUnavailable"
)

// StatusFor maps a kind to its HTTP status. DuplicateSubmission stays 400
// because existing clients key on it.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindNoCredential, KindInvalidCredential, KindIdentityGone:
		return http.StatusUnauthorized
	case KindRoleNotPermitted, KindOwnershipDenied:
		return http.StatusForbidden
	case KindResourceNotFound, KindQuizNotEnabled:
		return http.StatusNotFound
	case KindDuplicateSubmission, KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any AppError of the same kind, so sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or StoreUnavailable for anything
// that is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreUnavailable
}

var (
	ErrNoCredential        = NewError(KindNoCredential, "Not authorized, no token provided")
	ErrInvalidCredential   = NewError(KindInvalidCredential, "Not authorized, token failed")
	ErrIdentityGone        = NewError(KindIdentityGone, "Not authorized, user not found")
	ErrRoleNotPermitted    = NewError(KindRoleNotPermitted, "Access denied for this role")
	ErrOwnershipDenied     = NewError(KindOwnershipDenied, "Access denied. You can only manage problems you posted")
	ErrResourceNotFound    = NewError(KindResourceNotFound, "Resource not found")
	ErrQuizNotEnabled      = NewError(KindQuizNotEnabled, "Quiz not found or not enabled")
	ErrDuplicateSubmission = NewError(KindDuplicateSubmission, "You have already submitted for this problem")
	ErrStoreUnavailable    = NewError(KindStoreUnavailable, "Internal server error")
	ErrUserExists          = NewError(KindValidationFailed, "User already exists")
	ErrBadLogin            = NewError(KindInvalidCredential, "Invalid username or password")
)

func Validation(message string) *AppError {
	return NewError(KindValidationFailed, message)
}

func NotFoundError(message string) *AppError {
	return NewError(KindResourceNotFound, message)
}
