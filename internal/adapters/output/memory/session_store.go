package memory

import (
	"context"
	"fmt"
	"sync"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// sessionEntry guards one session; mutations of different sessions never contend.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.InterviewSession
}

// MemorySessionStore struct - Output adapter for in-memory interview sessions
// Uses sync.Map for the id index and a mutex per session to serialise
// read-modify-write of the same aggregate.
type MemorySessionStore struct {
	sessions sync.Map
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) entry(id string) (*sessionEntry, error) {
	value, exists := m.sessions.Load(id)
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	e, ok := value.(*sessionEntry)
	if !ok {
		// If data is malformed, delete it
		m.sessions.Delete(id)
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return e, nil
}

// Create stores a copy of session under its ID.
func (m *MemorySessionStore) Create(ctx context.Context, session *domain.InterviewSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil || session.ID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	if _, loaded := m.sessions.LoadOrStore(session.ID, &sessionEntry{session: session.Clone()}); loaded {
		return fmt.Errorf("%w: session %s already exists", domain.ErrValidation, session.ID)
	}
	return nil
}

// Load returns a deep copy of the session.
func (m *MemorySessionStore) Load(ctx context.Context, id string) (*domain.InterviewSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// AppendQuestionRecord appends record at the end of the question list.
func (m *MemorySessionStore) AppendQuestionRecord(ctx context.Context, id string, record domain.QuestionRecord) error {
	e, err := m.entry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if e.session.Status != domain.SessionStatusInProgress {
		return fmt.Errorf("%w: session %s is %s", domain.ErrInvalidState, id, e.session.Status)
	}
	e.session.Questions = append(e.session.Questions, record)
	return nil
}

// Finalize completes an in-progress session exactly once, and only if no
// answer was appended since the caller scored it.
func (m *MemorySessionStore) Finalize(ctx context.Context, id string, request domain.FinalizeRequest) (*domain.InterviewSession, error) {
	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.session.Status != domain.SessionStatusInProgress {
		return nil, fmt.Errorf("%w: session %s is %s", domain.ErrInvalidState, id, e.session.Status)
	}
	if got := len(e.session.Questions); got != request.ExpectedRecords {
		return nil, fmt.Errorf("%w: session %s has %d answers, completion was scored on %d", domain.ErrInvalidState, id, got, request.ExpectedRecords)
	}

	feedback := request.Feedback
	end := request.EndTime
	e.session.OverallScore = domain.ClampScore(request.OverallScore)
	e.session.Feedback = &feedback
	e.session.DurationSeconds = request.DurationSeconds
	e.session.EndTime = &end
	e.session.Status = domain.SessionStatusCompleted
	return e.session.Clone(), nil
}
