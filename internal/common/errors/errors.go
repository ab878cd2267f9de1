// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Matching engine taxonomy
const (
	// Informational: resolved by defaults, never thrown.
	ErrCodeInputIncomplete    ErrorCode = "INPUT_INCOMPLETE"
	ErrCodeLowConfidenceMatch ErrorCode = "LOW_CONFIDENCE_MATCH"

	// Enhancement failures: swallowed at the adapter boundary.
	ErrCodeExternalServiceTimeout       ErrorCode = "EXTERNAL_SERVICE_TIMEOUT"
	ErrCodeExternalServiceError         ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeMalformedEnhancementResponse ErrorCode = "MALFORMED_ENHANCEMENT_RESPONSE"

	// Caller-contract violations.
	ErrCodeInvalidCandidateRecord ErrorCode = "INVALID_CANDIDATE_RECORD"
	ErrCodeInvalidInput           ErrorCode = "INVALID_INPUT"
)

// Infrastructure errors raised by the storage adapters around the engine
const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeCacheUnavailable         ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeIndexingFailed           ErrorCode = "INDEXING_FAILED"
	ErrCodeNotificationSendFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeKnowledgeBaseInvalid     ErrorCode = "KNOWLEDGE_BASE_INVALID"
	ErrCodeInternal                 ErrorCode = "INTERNAL_ERROR"
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

// WithMetadata attaches a key/value pair and returns e.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInputIncompleteError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputIncomplete,
		Message:   "Optional field missing",
		Details:   field,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewLowConfidenceMatchError(field, value string, confidence float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeLowConfidenceMatch,
		Message:   "Normalization confidence below review threshold",
		Details:   fmt.Sprintf("%s=%q confidence=%.2f", field, value, confidence),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalServiceTimeout,
		Message:   fmt.Sprintf("External service '%s' timed out", service),
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalServiceError,
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMalformedEnhancementResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedEnhancementResponse,
		Message:   "Enhancement payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidCandidateRecordError(candidateID, details string) *StandardError {
	return (&StandardError{
		Code:      ErrCodeInvalidCandidateRecord,
		Message:   "Malformed candidate record",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}).WithMetadata("candidateId", candidateID)
}

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid job input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Failed to connect to database",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   fmt.Sprintf("Query '%s' failed", queryType),
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache unavailable",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewIndexingFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexingFailed,
		Message:   fmt.Sprintf("Indexing into '%s' failed", index),
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   fmt.Sprintf("Failed to send %s notification", channel),
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewKnowledgeBaseInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeBaseInvalid,
		Message:   "Knowledge base failed validation",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputIncomplete:              "INPUT_INCOMPLETE",
	ErrCodeLowConfidenceMatch:           "LOW_CONFIDENCE_MATCH",
	ErrCodeExternalServiceTimeout:       "EXTERNAL_SERVICE_TIMEOUT",
	ErrCodeExternalServiceError:         "EXTERNAL_SERVICE_ERROR",
	ErrCodeMalformedEnhancementResponse: "MALFORMED_ENHANCEMENT_RESPONSE",
	ErrCodeInvalidCandidateRecord:       "INVALID_CANDIDATE_RECORD",
	ErrCodeInvalidInput:                 "INVALID_INPUT",
	ErrCodeDatabaseConnectionFailed:     "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:         "QUERY_EXECUTION_FAILED",
	ErrCodeCacheUnavailable:             "CACHE_UNAVAILABLE",
	ErrCodeIndexingFailed:               "INDEXING_FAILED",
	ErrCodeNotificationSendFailed:       "NOTIFICATION_SEND_FAILED",
	ErrCodeKnowledgeBaseInvalid:         "KNOWLEDGE_BASE_INVALID",
	ErrCodeInternal:                     "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a job failing with code.
// Enhancement failures never retry; the adapter already fell back to the base result.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeIndexingFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeCacheUnavailable:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsFatal reports whether code may surface to a caller. Everything else is
// recovered below the single-candidate boundary.
func IsFatal(code ErrorCode) bool {
	switch code {
	case ErrCodeInputIncomplete,
		ErrCodeLowConfidenceMatch,
		ErrCodeExternalServiceTimeout,
		ErrCodeExternalServiceError,
		ErrCodeMalformedEnhancementResponse:
		return false
	default:
		return true
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "ENHANCEMENT"):
		return "ENHANCEMENT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INCOMPLETE") || strings.Contains(codeStr, "CONFIDENCE"):
		return "DATA_QUALITY"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
