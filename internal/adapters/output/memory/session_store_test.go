package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"mock-interview/internal/domain"
)

func newSession(id string) *domain.InterviewSession {
	return &domain.InterviewSession{
		ID:            id,
		JobRole:       "Backend Engineer",
		InterviewType: domain.InterviewTypeTechnical,
		InterviewMode: domain.InterviewModeText,
		Difficulty:    domain.DifficultyBeginner,
		Questions:     []domain.QuestionRecord{},
		Status:        domain.SessionStatusInProgress,
		StartTime:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

// TestLoadUnknownSession tests the not found error
func TestLoadUnknownSession(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.Load(context.Background(), "missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

// TestCreateRejectsDuplicateID tests that an existing session is never replaced
func TestCreateRejectsDuplicateID(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	if err := store.Create(ctx, newSession("s1")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := store.Create(ctx, newSession("s1")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// TestLoadReturnsIsolatedCopy tests that callers cannot mutate stored state
func TestLoadReturnsIsolatedCopy(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	store.Create(ctx, newSession("s1"))

	loaded, _ := store.Load(ctx, "s1")
	loaded.Questions = append(loaded.Questions, domain.QuestionRecord{Question: "injected"})
	loaded.Status = domain.SessionStatusAbandoned

	again, _ := store.Load(ctx, "s1")
	if len(again.Questions) != 0 || again.Status != domain.SessionStatusInProgress {
		t.Errorf("stored session was mutated through a loaded copy: %+v", again)
	}
}

// TestAppendKeepsInsertionOrder tests append-only ordering under concurrency
func TestAppendKeepsInsertionOrder(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	store.Create(ctx, newSession("s1"))

	for i := 0; i < 3; i++ {
		if err := store.AppendQuestionRecord(ctx, "s1", domain.QuestionRecord{Question: fmt.Sprintf("q%d", i)}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AppendQuestionRecord(ctx, "s1", domain.QuestionRecord{Question: "concurrent"})
		}()
	}
	wg.Wait()

	loaded, _ := store.Load(ctx, "s1")
	if len(loaded.Questions) != 23 {
		t.Fatalf("expected 23 records, got %d", len(loaded.Questions))
	}
	for i := 0; i < 3; i++ {
		if loaded.Questions[i].Question != fmt.Sprintf("q%d", i) {
			t.Errorf("record %d out of order: %s", i, loaded.Questions[i].Question)
		}
	}
}

// TestFinalizeOnlyOnce tests the terminal state guard
func TestFinalizeOnlyOnce(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	store.Create(ctx, newSession("s1"))
	store.AppendQuestionRecord(ctx, "s1", domain.QuestionRecord{Question: "q"})

	end := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	done, err := store.Finalize(ctx, "s1", domain.FinalizeRequest{
		ExpectedRecords: 1,
		OverallScore:    77,
		Feedback:        domain.OverallFeedback{Summary: "solid"},
		DurationSeconds: 1800,
		EndTime:         end,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if done.Status != domain.SessionStatusCompleted || done.OverallScore != 77 || done.DurationSeconds != 1800 {
		t.Errorf("unexpected finalized session: %+v", done)
	}
	if done.EndTime == nil || !done.EndTime.Equal(end) {
		t.Errorf("expected end time %v, got %v", end, done.EndTime)
	}

	_, err = store.Finalize(ctx, "s1", domain.FinalizeRequest{ExpectedRecords: 1, OverallScore: 10})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on second finalize, got %v", err)
	}
	if err := store.AppendQuestionRecord(ctx, "s1", domain.QuestionRecord{Question: "late"}); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on append after completion, got %v", err)
	}

	loaded, _ := store.Load(ctx, "s1")
	if loaded.OverallScore != 77 || len(loaded.Questions) != 1 {
		t.Errorf("session changed after rejected calls: %+v", loaded)
	}
}

// TestFinalizeRejectsStaleRecordCount tests that completion fails when answers changed after scoring
func TestFinalizeRejectsStaleRecordCount(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	store.Create(ctx, newSession("s1"))
	store.AppendQuestionRecord(ctx, "s1", domain.QuestionRecord{Question: "q1"})
	store.AppendQuestionRecord(ctx, "s1", domain.QuestionRecord{Question: "q2"})

	_, err := store.Finalize(ctx, "s1", domain.FinalizeRequest{ExpectedRecords: 1, OverallScore: 100})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for a stale record count, got %v", err)
	}
	loaded, _ := store.Load(ctx, "s1")
	if loaded.Status != domain.SessionStatusInProgress || loaded.OverallScore != 0 || loaded.Feedback != nil {
		t.Errorf("expected session untouched, got %+v", loaded)
	}

	if _, err := store.Finalize(ctx, "s1", domain.FinalizeRequest{ExpectedRecords: 2, OverallScore: 50}); err != nil {
		t.Errorf("expected finalize with the current count to succeed, got %v", err)
	}
}

// TestCancelledContextWritesNothing tests that a cancelled request leaves no partial state
func TestCancelledContextWritesNothing(t *testing.T) {
	store := NewMemorySessionStore()
	store.Create(context.Background(), newSession("s1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.AppendQuestionRecord(ctx, "s1", domain.QuestionRecord{Question: "q"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	loaded, _ := store.Load(context.Background(), "s1")
	if len(loaded.Questions) != 0 {
		t.Errorf("expected no records, got %d", len(loaded.Questions))
	}
}
