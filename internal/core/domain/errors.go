// Package domain defines the core domain models for the NETCONF client.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a client error with a structured error code.
// Codes follow the format NC-<AREA>-<NNNN>; 4xxx codes are caused by
// document content, 5xxx codes by the environment.
type DomainError struct {
	Code    string // Error code (e.g., "NC-CONF-5001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Configuration Errors (CONF)
// ============================================================================

var (
	// ErrHomeUnresolved indicates neither $HOME nor the user database
	// yielded a home directory. Load and store abort on this error.
	ErrHomeUnresolved = NewDomainError("NC-CONF-5001", "cannot determine home directory")

	// ErrConfigDirUnavailable indicates the configuration directory is
	// missing and cannot be created, or exists but is not accessible.
	ErrConfigDirUnavailable = NewDomainError("NC-CONF-5002", "configuration directory unavailable")

	// ErrHistoryLoad indicates the command history could not be read.
	ErrHistoryLoad = NewDomainError("NC-CONF-5003", "failed to load command history")

	// ErrHistorySave indicates the command history could not be written.
	ErrHistorySave = NewDomainError("NC-CONF-5004", "failed to save command history")

	// ErrDocumentWrite indicates config.xml could not be written.
	ErrDocumentWrite = NewDomainError("NC-CONF-5005", "cannot write configuration document")

	// ErrDocumentMalformed indicates config.xml is not well-formed XML.
	ErrDocumentMalformed = NewDomainError("NC-CONF-4001", "malformed configuration document")

	// ErrKeyPairInvalid indicates a key-path entry could not be turned
	// into a key pair.
	ErrKeyPairInvalid = NewDomainError("NC-CONF-4002", "invalid key pair")

	// ErrPriorityInvalid indicates a non-numeric authentication priority
	// was rejected in strict mode.
	ErrPriorityInvalid = NewDomainError("NC-CONF-4003", "invalid authentication priority")

	// ErrUnknownAuthMethod indicates an authentication method name that
	// is not one of publickey, interactive or password.
	ErrUnknownAuthMethod = NewDomainError("NC-CONF-4004", "unknown authentication method")
)
