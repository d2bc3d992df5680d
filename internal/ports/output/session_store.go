package output

import (
	"context"

	"mock-interview/internal/domain"
)

// SessionStore interface - Output port
// Durable owner of InterviewSession aggregates. Implementations serialise
// mutations of the same session and must be safe for concurrent use.
type SessionStore interface {
	// Create stores a new session. The session must carry its ID.
	Create(ctx context.Context, session *domain.InterviewSession) error

	// Load returns a copy of the session or domain.ErrSessionNotFound.
	Load(ctx context.Context, id string) (*domain.InterviewSession, error)

	// AppendQuestionRecord appends one record at the end of the session's list.
	// Appending to a terminal session returns domain.ErrInvalidState.
	AppendQuestionRecord(ctx context.Context, id string, record domain.QuestionRecord) error

	// Finalize moves an in-progress session to completed in one step and returns
	// the stored result. A session that is no longer in progress returns
	// domain.ErrInvalidState and is left untouched, as does a session whose
	// record count no longer equals request.ExpectedRecords.
	Finalize(ctx context.Context, id string, request domain.FinalizeRequest) (*domain.InterviewSession, error)
}
