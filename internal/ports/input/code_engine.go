package input

import (
	"context"

	"mock-interview/internal/domain"
)

// CodeEngine interface - Input port (use case)
type CodeEngine interface {
	ValidateCode(language, code string) domain.ValidationResult
	// ExecuteCode always returns a report; per test case faults are inline.
	ExecuteCode(ctx context.Context, language, code string, testCases []domain.TestCase) domain.ExecutionReport
}
