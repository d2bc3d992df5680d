package input

import (
	"context"

	"mock-interview/internal/domain"
)

// Orchestrator interface - Input port (use case)
// Mediates every call to the LLM service with caching, retry and fallback.
type Orchestrator interface {
	// GenerateQuestion never returns an entry of request.PreviousQuestions.
	// It fails with domain.ErrExhaustedFallback when nothing is left.
	GenerateQuestion(ctx context.Context, request domain.QuestionRequest) (string, error)

	// GenerateFollowUpQuestion propagates every failure.
	GenerateFollowUpQuestion(ctx context.Context, request domain.FollowUpRequest) (string, error)

	// EvaluateAnswer never fails; a degraded default is returned instead.
	EvaluateAnswer(ctx context.Context, request domain.EvaluateRequest) domain.Evaluation

	// GenerateOverallFeedback never fails; a generic summary is returned instead.
	GenerateOverallFeedback(ctx context.Context, request domain.OverallFeedbackRequest) domain.OverallFeedback
}
