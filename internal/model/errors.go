package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors reported by store implementations. Repositories translate
// driver-level signals into these; services translate them into APIErrors.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Stable error codes. Each code maps to exactly one outcome category so the
// transport layer can assign a status without inspecting message text.
const (
	CodeInvalidArgument      = "INVALID_ARGUMENT"
	CodeUserAlreadyExists    = "USER_ALREADY_EXISTS"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodePostAlreadyExists    = "POST_ALREADY_EXISTS"
	CodePostNotFound         = "POST_NOT_FOUND"
	CodeCommentNotFound      = "COMMENT_NOT_FOUND"
	CodeAccessDenied         = "ACCESS_DENIED"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeIdentityManager      = "IDENTITY_MANAGER_ERROR"
)

// APIError is a domain error carrying a stable code and transport status.
type APIError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewErrInvalidArgument reports a blank or empty required field. Validation
// failures are detected before any store or provider call.
func NewErrInvalidArgument(field string) *APIError {
	return &APIError{
		Code:       CodeInvalidArgument,
		Message:    fmt.Sprintf("input is empty: %s", field),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewErrUserAlreadyExists reports an email already in use.
func NewErrUserAlreadyExists(email string) *APIError {
	return &APIError{
		Code:       CodeUserAlreadyExists,
		Message:    "User with this email already exists",
		HTTPStatus: http.StatusConflict,
		Err:        ErrConflict,
	}
}

// NewErrUserNotFound reports a missing local user record.
func NewErrUserNotFound() *APIError {
	return &APIError{
		Code:       CodeUserNotFound,
		Message:    "User not found",
		HTTPStatus: http.StatusNotFound,
		Err:        ErrNotFound,
	}
}

// NewErrPostAlreadyExists reports a duplicate (title, owner) pair.
func NewErrPostAlreadyExists(title string) *APIError {
	return &APIError{
		Code:       CodePostAlreadyExists,
		Message:    "Post already exists",
		HTTPStatus: http.StatusConflict,
		Err:        ErrConflict,
	}
}

// NewErrPostNotFound reports a missing post.
func NewErrPostNotFound() *APIError {
	return &APIError{
		Code:       CodePostNotFound,
		Message:    "Post not found",
		HTTPStatus: http.StatusNotFound,
		Err:        ErrNotFound,
	}
}

// NewErrCommentNotFound reports a missing comment.
func NewErrCommentNotFound() *APIError {
	return &APIError{
		Code:       CodeCommentNotFound,
		Message:    "Comment not found",
		HTTPStatus: http.StatusNotFound,
		Err:        ErrNotFound,
	}
}

// NewErrAccessDenied reports an authorization failure on a mutating operation.
func NewErrAccessDenied(message string) *APIError {
	return &APIError{
		Code:       CodeAccessDenied,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewErrAuthenticationFailed reports a credential mismatch or a provider-side
// rejection of authentication.
func NewErrAuthenticationFailed(cause error) *APIError {
	return &APIError{
		Code:       CodeAuthenticationFailed,
		Message:    "Authentication failed",
		HTTPStatus: http.StatusUnauthorized,
		Err:        cause,
	}
}

// NewErrIdentityManager reports a provider operation that failed for a reason
// other than a credential mismatch.
func NewErrIdentityManager(cause error) *APIError {
	return &APIError{
		Code:       CodeIdentityManager,
		Message:    "Identity provider operation failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        cause,
	}
}
