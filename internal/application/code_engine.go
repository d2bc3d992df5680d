package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/input"
	"mock-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// DefaultExecutionTimeout is the hard wall-clock budget of one test case
const DefaultExecutionTimeout = 5000 * time.Millisecond

var _ input.CodeEngine = (*CodeEngine)(nil)

// CodeEngine struct - Application service grading candidate code in the sandbox
type CodeEngine struct {
	interpreter output.Interpreter
	timeout     time.Duration
}

// NewCodeEngine func - Creates new code engine; a non-positive timeout uses DefaultExecutionTimeout
func NewCodeEngine(interpreter output.Interpreter, timeout time.Duration) *CodeEngine {
	if timeout <= 0 {
		timeout = DefaultExecutionTimeout
	}
	return &CodeEngine{
		interpreter: interpreter,
		timeout:     timeout,
	}
}

// ValidateCode func - Use case: syntax-only check, nothing is executed
func (e *CodeEngine) ValidateCode(language, code string) domain.ValidationResult {
	if strings.TrimSpace(code) == "" {
		return domain.ValidationResult{Valid: false, Error: "code cannot be empty"}
	}
	if !e.interpreter.Supports(language) {
		return domain.ValidationResult{Valid: false, Error: fmt.Sprintf("%v: %s", domain.ErrUnsupportedLanguage, language)}
	}
	if err := e.interpreter.Check(language, code); err != nil {
		return domain.ValidationResult{Valid: false, Error: err.Error()}
	}
	return domain.ValidationResult{Valid: true}
}

// ExecuteCode func - Use case: run code against every test case independently
func (e *CodeEngine) ExecuteCode(ctx context.Context, language, code string, testCases []domain.TestCase) domain.ExecutionReport {
	report := domain.ExecutionReport{
		Language: language,
		Status:   domain.ExecutionStatusOK,
		Results:  make([]domain.TestCaseResult, 0, len(testCases)),
		Summary:  domain.ExecutionSummary{TotalCount: len(testCases)},
	}

	if !e.interpreter.Supports(language) {
		report.Status = domain.ExecutionStatusUnsupportedLanguage
		report.Error = fmt.Sprintf("%v: %s", domain.ErrUnsupportedLanguage, language)
		return report
	}
	if validation := e.ValidateCode(language, code); !validation.Valid {
		report.Status = domain.ExecutionStatusInvalidCode
		report.Error = validation.Error
		return report
	}

	for _, tc := range testCases {
		report.Results = append(report.Results, e.runTestCase(ctx, language, code, tc))
	}
	report.Summary = summarize(report.Results)

	logrus.WithFields(logrus.Fields{
		"language": language,
		"passed":   report.Summary.PassedCount,
		"total":    report.Summary.TotalCount,
	}).Info("Code execution finished")
	return report
}

func (e *CodeEngine) runTestCase(ctx context.Context, language, code string, tc domain.TestCase) domain.TestCaseResult {
	result := domain.TestCaseResult{
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Hidden:         tc.Hidden,
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	actual, err := e.interpreter.Run(runCtx, language, code, parseInput(tc.Input))
	if err != nil {
		logrus.WithField("language", language).Debugf("Test case failed to run: %v", err)
		result.Error = err.Error()
		return result
	}

	result.ActualOutput = displayOutput(actual)
	result.Passed = outputsMatch(actual, tc.ExpectedOutput)
	return result
}

func summarize(results []domain.TestCaseResult) domain.ExecutionSummary {
	summary := domain.ExecutionSummary{TotalCount: len(results)}
	for _, r := range results {
		if r.Passed {
			summary.PassedCount++
		}
	}
	if summary.TotalCount > 0 {
		summary.AllPassed = summary.PassedCount == summary.TotalCount
		summary.Percentage = domain.RoundDiv(summary.PassedCount*100, summary.TotalCount)
	}
	return summary
}
