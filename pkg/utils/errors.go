package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewUnauthorizedError returns an error for missing or invalid credentials
func NewUnauthorizedError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnauthorized,
		Message: "Authentication required",
		Detail:  detail,
	}
}

// NewAccessDeniedError returns an error for a non-admin reaching the
// moderation surface
func NewAccessDeniedError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusForbidden,
		Message: "Access denied",
		Detail:  detail,
	}
}

// NewUpstreamError returns an error for an unexpected response from an
// external collaborator (document store or identity provider)
func NewUpstreamError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Upstream request failed",
		Detail:  detail,
	}
}

// NewNotFoundError returns an error for a missing document id
func NewNotFoundError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Not found",
		Detail:  detail,
	}
}
