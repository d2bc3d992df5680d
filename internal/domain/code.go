package domain

// ExecutionStatus type
type ExecutionStatus string

const (
	// ExecutionStatusOK means every test case was attempted
	ExecutionStatusOK ExecutionStatus = "ok"
	// ExecutionStatusUnsupportedLanguage means nothing was executed
	ExecutionStatusUnsupportedLanguage ExecutionStatus = "unsupported_language"
	// ExecutionStatusInvalidCode means validation rejected the code before execution
	ExecutionStatusInvalidCode ExecutionStatus = "invalid_code"
)

// TestCase struct
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Hidden         bool   `json:"hidden"`
}

// TestCaseResult struct
type TestCaseResult struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	ActualOutput   string `json:"actualOutput"`
	Passed         bool   `json:"passed"`
	Error          string `json:"error,omitempty"`
	Hidden         bool   `json:"hidden"`
}

// ExecutionSummary struct
type ExecutionSummary struct {
	PassedCount int  `json:"passedCount"`
	TotalCount  int  `json:"totalCount"`
	AllPassed   bool `json:"allPassed"`
	Percentage  int  `json:"percentage"`
}

// ExecutionReport struct - CodeExecutionResult for a whole submission.
type ExecutionReport struct {
	Language string           `json:"language"`
	Status   ExecutionStatus  `json:"status"`
	Error    string           `json:"error,omitempty"`
	Results  []TestCaseResult `json:"results"`
	Summary  ExecutionSummary `json:"summary"`
}

// ValidationResult struct
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
