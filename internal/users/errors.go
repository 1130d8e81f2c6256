package users

import (
	"errors"
	"fmt"
)

// UserError represents errors related to user operations
type UserError struct {
	Type    string
	UserID  string
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s] for user %s: %s (caused by: %v)", e.Type, e.UserID, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s] for user %s: %s", e.Type, e.UserID, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// User error types
const (
	UserErrorTypeNotFound       = "not_found"
	UserErrorTypeInvalidRequest = "invalid_request"
	UserErrorTypeTooLarge       = "too_large"
)

// NewUserNotFoundError creates an error for when no user has the requested id
func NewUserNotFoundError(userID string) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		UserID:  userID,
		Message: "not found",
	}
}

// NewInvalidRequestError creates an error for a request body that could not be decoded
func NewInvalidRequestError(userID string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeInvalidRequest,
		UserID:  userID,
		Message: "invalid request body",
		Cause:   cause,
	}
}

// NewRequestTooLargeError creates an error for a request body over the size limit
func NewRequestTooLargeError(userID string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeTooLarge,
		UserID:  userID,
		Message: "request entity too large",
		Cause:   cause,
	}
}

// IsNotFound reports whether err carries a not_found UserError
func IsNotFound(err error) bool {
	return hasType(err, UserErrorTypeNotFound)
}

// IsInvalidRequest reports whether err carries an invalid_request UserError
func IsInvalidRequest(err error) bool {
	return hasType(err, UserErrorTypeInvalidRequest)
}

// IsRequestTooLarge reports whether err carries a too_large UserError
func IsRequestTooLarge(err error) bool {
	return hasType(err, UserErrorTypeTooLarge)
}

func hasType(err error, errType string) bool {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Type == errType
	}
	return false
}
