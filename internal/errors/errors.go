// Package errors provides custom error types and utilities for dormmatch.
//
// This package provides error handling for:
// - Configuration errors (service registry, settings)
// - Validation errors (command input)
// - HTTP errors (non-2xx responses)
// - Transport errors (network and decoding failures)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error categories for dormmatch operations
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNetwork       = errors.New("network error")
	ErrConfiguration = errors.New("configuration error")
)

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return errors.Is(target, ErrConfiguration)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return errors.Is(target, ErrInvalidInput)
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// HTTPError represents a response whose status falls outside 2xx.
// Message, when set, is the first error reported by the backend.
type HTTPError struct {
	StatusCode int
	Reason     string
	Message    string
}

// Error returns the backend message if there is one, otherwise
// a synthesized "HTTP {status}: {reason}" string.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Reason)
}

func (e *HTTPError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusNotFound:
		return errors.Is(target, ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.Is(target, ErrUnauthorized)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.Is(target, ErrInvalidInput)
	default:
		return false
	}
}

// NewHTTPError creates a new HTTP error. An empty reason falls back to the
// standard reason phrase for the status code.
func NewHTTPError(statusCode int, reason, message string) *HTTPError {
	if reason == "" {
		reason = http.StatusText(statusCode)
	}
	return &HTTPError{
		StatusCode: statusCode,
		Reason:     reason,
		Message:    message,
	}
}

// IsHTTPStatus checks if an error represents a specific HTTP status
func IsHTTPStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == statusCode
	}
	return false
}

// TransportError represents a failure before a usable response was obtained:
// dial, TLS, cancellation, or an undecodable body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport failure"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return errors.Is(target, ErrNetwork)
}

// NewTransportError creates a new transport error
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || IsHTTPStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if an error represents an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		IsHTTPStatus(err, http.StatusUnauthorized) ||
		IsHTTPStatus(err, http.StatusForbidden)
}

// IsNetwork checks if an error is network-related
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
