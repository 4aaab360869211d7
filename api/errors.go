package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyResponse indicates the API reported success but sent no response object.
	ErrEmptyResponse = errors.New("empty response from wallet API")
	// ErrInvalidAddress indicates an address failed local Omnicoin address validation.
	ErrInvalidAddress = errors.New("invalid Omnicoin address")
	// ErrMissingMethod indicates a request was built without an API method name.
	ErrMissingMethod = errors.New("api method is required")
)

// APIError is an error reported by the wallet API in the error_info field.
type APIError struct {
	Method string
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Method, e.Message())
}

// Message returns a readable description of the error code.
func (e *APIError) Message() string {
	if msg, ok := errorMessages[e.Code]; ok {
		return msg
	}
	if e.Code == "" {
		return "unknown error"
	}
	return strings.ToLower(strings.ReplaceAll(e.Code, "_", " "))
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed with status %d", e.Method, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed with status %d: %s", e.Method, e.StatusCode, e.Body)
}

// FieldError describes one rejected request parameter.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError is returned before any request is sent when parameters are rejected.
type ValidationError struct {
	Method string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("invalid parameters for %s", e.Method)
	}
	return fmt.Sprintf("invalid parameters for %s: %s", e.Method, strings.Join(parts, ", "))
}

// IsCode reports whether err is an APIError carrying the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
