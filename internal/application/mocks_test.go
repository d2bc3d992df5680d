package application

import (
	"context"
	"sync"
	"time"

	"mock-interview/internal/domain"
)

// Mock implementations for testing

// MockTextGenerator implements output.TextGenerator for testing
type MockTextGenerator struct {
	GenerateFunc func(ctx context.Context, request domain.GenerationRequest) (string, error)

	// Captured values for assertions
	Requests []domain.GenerationRequest
}

func (m *MockTextGenerator) Generate(ctx context.Context, request domain.GenerationRequest) (string, error) {
	m.Requests = append(m.Requests, request)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, request)
	}
	return "What is a goroutine?", nil
}

// MockQuestionBank implements output.QuestionBank for testing
type MockQuestionBank struct {
	FindFunc func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error)

	Calls int
}

func (m *MockQuestionBank) Find(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
	m.Calls++
	if m.FindFunc != nil {
		return m.FindFunc(ctx, category, difficulty, excluding)
	}
	return "", false, nil
}

// MockQuestionCache implements output.QuestionCache for testing
type MockQuestionCache struct {
	Buckets map[string][]string
}

func (m *MockQuestionCache) Candidates(key string) []string {
	return m.Buckets[key]
}

func (m *MockQuestionCache) Add(key, question string) {
	if m.Buckets == nil {
		m.Buckets = make(map[string][]string)
	}
	for _, q := range m.Buckets[key] {
		if q == question {
			return
		}
	}
	m.Buckets[key] = append(m.Buckets[key], question)
}

// MockFeedbackCache implements output.FeedbackCache for testing
type MockFeedbackCache struct {
	Entries map[string]domain.OverallFeedback
}

func (m *MockFeedbackCache) Get(key string) (domain.OverallFeedback, bool) {
	f, ok := m.Entries[key]
	return f, ok
}

func (m *MockFeedbackCache) Set(key string, feedback domain.OverallFeedback) {
	if m.Entries == nil {
		m.Entries = make(map[string]domain.OverallFeedback)
	}
	m.Entries[key] = feedback
}

// MockInterpreter implements output.Interpreter for testing
type MockInterpreter struct {
	SupportsFunc func(language string) bool
	CheckFunc    func(language, code string) error
	RunFunc      func(ctx context.Context, language, code string, args []any) (any, error)

	RunCalls int
}

func (m *MockInterpreter) Supports(language string) bool {
	if m.SupportsFunc != nil {
		return m.SupportsFunc(language)
	}
	return language == "javascript"
}

func (m *MockInterpreter) Check(language, code string) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(language, code)
	}
	return nil
}

func (m *MockInterpreter) Run(ctx context.Context, language, code string, args []any) (any, error) {
	m.RunCalls++
	if m.RunFunc != nil {
		return m.RunFunc(ctx, language, code, args)
	}
	return nil, nil
}

// MockSessionStore implements output.SessionStore for testing
type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.InterviewSession

	FinalizeCalls int
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.InterviewSession)}
}

func (m *MockSessionStore) Create(ctx context.Context, session *domain.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session.Clone()
	return nil
}

func (m *MockSessionStore) Load(ctx context.Context, id string) (*domain.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (m *MockSessionStore) AppendQuestionRecord(ctx context.Context, id string, record domain.QuestionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if s.Status != domain.SessionStatusInProgress {
		return domain.ErrInvalidState
	}
	s.Questions = append(s.Questions, record)
	return nil
}

func (m *MockSessionStore) Finalize(ctx context.Context, id string, request domain.FinalizeRequest) (*domain.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeCalls++
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.Status != domain.SessionStatusInProgress || len(s.Questions) != request.ExpectedRecords {
		return nil, domain.ErrInvalidState
	}
	feedback := request.Feedback
	end := request.EndTime
	s.Status = domain.SessionStatusCompleted
	s.OverallScore = request.OverallScore
	s.Feedback = &feedback
	s.EndTime = &end
	s.DurationSeconds = request.DurationSeconds
	return s.Clone(), nil
}

// recordingSleeper captures backoff delays without waiting
type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func rateLimited(retryAfter time.Duration) error {
	return domain.NewTransientError(errTestRateLimit, 429, retryAfter)
}

type testError string

func (e testError) Error() string { return string(e) }

const errTestRateLimit = testError("rate limit exceeded")
