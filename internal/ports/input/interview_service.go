package input

import (
	"context"

	"mock-interview/internal/domain"
)

// InterviewService interface - Input port (use case)
// Drives one session through answering and completion.
type InterviewService interface {
	StartSession(ctx context.Context, request domain.StartSessionRequest) (*domain.InterviewSession, error)
	GetSession(ctx context.Context, id string) (*domain.InterviewSession, error)
	NextQuestion(ctx context.Context, id string, profile *domain.UserProfile) (string, error)
	SubmitAnswer(ctx context.Context, id string, request domain.SubmitAnswerRequest) (*domain.QuestionRecord, error)
	RecordAnswer(ctx context.Context, id string, answer domain.RecordAnswerInput) (*domain.QuestionRecord, error)
	Complete(ctx context.Context, id string) (*domain.InterviewSession, error)
}
