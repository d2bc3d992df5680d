package domain

import (
	"errors"
	"fmt"
	"time"
)

// Pipeline error types

var (
	// ErrTransientProvider indicates a rate-limit or quota failure from the LLM service
	ErrTransientProvider = errors.New("llm provider temporarily unavailable")

	// ErrPermanentProvider indicates any other LLM failure; it is never retried
	ErrPermanentProvider = errors.New("llm provider request failed")

	// ErrExhaustedFallback indicates no cache, LLM or question bank entry could serve a question
	ErrExhaustedFallback = errors.New("no unused question available")

	// ErrDuplicateQuestion indicates the LLM returned a question that was already asked
	ErrDuplicateQuestion = errors.New("generated question was already asked")

	// ErrSandboxTimeout indicates a test case exceeded its wall-clock budget
	ErrSandboxTimeout = errors.New("execution timed out")

	// ErrSandboxRuntime indicates the candidate program faulted
	ErrSandboxRuntime = errors.New("runtime error")

	// ErrUnsupportedLanguage indicates no interpreter exists for the language
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrValidation indicates rejected input (empty code, syntax error, bad request)
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState indicates a transition from a terminal session status
	ErrInvalidState = errors.New("invalid session state")

	// ErrNoAnswers indicates completion of a session without any answers
	ErrNoAnswers = errors.New("session has no answers")

	// ErrSessionNotFound indicates the session id is unknown to the store
	ErrSessionNotFound = errors.New("session not found")
)

// ProviderError struct - Classified failure of a single LLM call.
type ProviderError struct {
	Transient  bool
	RetryAfter time.Duration
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s provider error (status %d): %v", kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider error: %v", kind, e.Err)
}

// Unwrap exposes both the classification sentinel and the cause.
func (e *ProviderError) Unwrap() []error {
	sentinel := ErrPermanentProvider
	if e.Transient {
		sentinel = ErrTransientProvider
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// NewTransientError builds a retryable provider error.
func NewTransientError(err error, statusCode int, retryAfter time.Duration) *ProviderError {
	return &ProviderError{Transient: true, StatusCode: statusCode, RetryAfter: retryAfter, Err: err}
}

// NewPermanentError builds a non-retryable provider error.
func NewPermanentError(err error, statusCode int) *ProviderError {
	return &ProviderError{StatusCode: statusCode, Err: err}
}
