// Package errors provides standardized error handling across the assistant
// services.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Routing errors
	ErrCodeClassificationMiss      ErrorCode = "CLASSIFICATION_MISS"
	ErrCodeMissingRequiredArgument ErrorCode = "MISSING_REQUIRED_ARGUMENT"
	ErrCodeCollaboratorUnavailable ErrorCode = "COLLABORATOR_UNAVAILABLE"
	ErrCodeMalformedUpdatePayload  ErrorCode = "MALFORMED_UPDATE_PAYLOAD"
	ErrCodeUnknownCapability       ErrorCode = "UNKNOWN_CAPABILITY"

	// Storage errors
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeRecordNotFound           ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	// Search / notification errors
	ErrCodeSearchQueryFailed      ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	// Transport errors
	ErrCodeAgentCallFailed  ErrorCode = "AGENT_CALL_FAILED"
	ErrCodeAgentCallTimeout ErrorCode = "AGENT_CALL_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewClassificationMiss reports that no capability keywords matched.
func NewClassificationMiss(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationMiss,
		Message:   "No supported capability matched the request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredArgument reports an extractable argument that could
// not be found for a matched capability.
func NewMissingRequiredArgument(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredArgument,
		Message:   fmt.Sprintf("Required argument %q could not be extracted", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewCollaboratorUnavailable wraps a network/connection failure reaching a
// collaborator. Retryable, though the router never retries within a single
// utterance.
func NewCollaboratorUnavailable(domain string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCollaboratorUnavailable,
		Message:   fmt.Sprintf("Unable to contact %s collaborator", domain),
		Details:   cause.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"domain": domain},
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedUpdatePayload reports an update payload that failed schema
// validation.
func NewMalformedUpdatePayload(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedUpdatePayload,
		Message:   "Update payload is not valid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
