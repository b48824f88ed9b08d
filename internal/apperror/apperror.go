// Package apperror defines typed application errors and the JSON shape they are
// reported with.
package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorises application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// AuthError represents a missing or invalid caller identity
	AuthError
	// NotFoundError represents a resource not found error
	NotFoundError
	// BadRequestError represents a malformed request
	BadRequestError
	// ConflictError represents a conflict, e.g., resource already exists
	ConflictError
	// InternalError represents a generic internal server error
	InternalError
)

// AppError is an error with a user-facing message and an optional cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body written for an AppError.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ToResponse converts an AppError to its response payload. The cause is never exposed.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// New creates an AppError of the given type.
func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, err error) *AppError {
	return New(DatabaseError, message, err)
}

// NewAuthError creates a new AuthError
func NewAuthError(message string, err error) *AppError {
	return New(AuthError, message, err)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, err error) *AppError {
	return New(NotFoundError, message, err)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, err error) *AppError {
	return New(BadRequestError, message, err)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, err error) *AppError {
	return New(ConflictError, message, err)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, err error) *AppError {
	return New(InternalError, message, err)
}

// From returns err as an *AppError, wrapping anything else as an internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("internal server error", err)
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// Write renders appErr as a JSON response with its status code.
func Write(w http.ResponseWriter, appErr *AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_ = json.NewEncoder(w).Encode(appErr.ToResponse())
}
