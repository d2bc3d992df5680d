package application

import (
	"context"
	"fmt"
	"strings"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/input"
	"mock-interview/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var _ input.InterviewService = (*InterviewService)(nil)

// InterviewService struct - Application service for score fusion and the session state machine
type InterviewService struct {
	store        output.SessionStore
	orchestrator input.Orchestrator
	analyzer     SpeechAnalyzer
	clock        domain.Clock
	newID        func() string
}

// NewInterviewService func - Creates new interview service
func NewInterviewService(store output.SessionStore, orchestrator input.Orchestrator, clock domain.Clock) *InterviewService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &InterviewService{
		store:        store,
		orchestrator: orchestrator,
		analyzer:     NewSpeechAnalyzer(),
		clock:        clock,
		newID:        uuid.NewString,
	}
}

// StartSession func - Use case: open a new in-progress session
func (s *InterviewService) StartSession(ctx context.Context, request domain.StartSessionRequest) (*domain.InterviewSession, error) {
	if strings.TrimSpace(request.JobRole) == "" {
		return nil, fmt.Errorf("%w: job role is required", domain.ErrValidation)
	}
	mode := request.InterviewMode
	if mode == "" {
		mode = domain.InterviewModeText
	}

	session := &domain.InterviewSession{
		ID:            s.newID(),
		CandidateID:   request.CandidateID,
		JobRole:       strings.TrimSpace(request.JobRole),
		InterviewType: request.InterviewType,
		InterviewMode: mode,
		Difficulty:    request.Difficulty,
		Questions:     []domain.QuestionRecord{},
		Status:        domain.SessionStatusInProgress,
		StartTime:     s.clock.Now(),
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, err
	}
	logrus.WithField("session_id", session.ID).Info("Interview session started")
	return session, nil
}

// GetSession func
func (s *InterviewService) GetSession(ctx context.Context, id string) (*domain.InterviewSession, error) {
	return s.store.Load(ctx, id)
}

func (s *InterviewService) loadInProgress(ctx context.Context, id string) (*domain.InterviewSession, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionStatusInProgress {
		return nil, fmt.Errorf("%w: session %s is %s", domain.ErrInvalidState, id, session.Status)
	}
	return session, nil
}

// NextQuestion func - Use case: a question not yet asked in this session
func (s *InterviewService) NextQuestion(ctx context.Context, id string, profile *domain.UserProfile) (string, error) {
	session, err := s.loadInProgress(ctx, id)
	if err != nil {
		return "", err
	}
	return s.orchestrator.GenerateQuestion(ctx, domain.QuestionRequest{
		JobRole:           session.JobRole,
		InterviewType:     session.InterviewType,
		Difficulty:        session.Difficulty,
		PreviousQuestions: session.AskedQuestions(),
		UserProfile:       profile,
	})
}

// SubmitAnswer func - Use case: evaluate content, analyze the transcript and record the fused result
func (s *InterviewService) SubmitAnswer(ctx context.Context, id string, request domain.SubmitAnswerRequest) (*domain.QuestionRecord, error) {
	session, err := s.loadInProgress(ctx, id)
	if err != nil {
		return nil, err
	}

	evaluation := s.orchestrator.EvaluateAnswer(ctx, domain.EvaluateRequest{
		Question:      request.Question,
		Answer:        request.Answer,
		InterviewType: session.InterviewType,
		Difficulty:    session.Difficulty,
		JobRole:       session.JobRole,
	})

	speech := request.Speech
	if speech == nil && session.InterviewMode != domain.InterviewModeText {
		speech = s.deriveSpeech(request.Answer, request.DurationSeconds)
	}

	return s.recordAnswer(ctx, session, domain.RecordAnswerInput{
		Question:    request.Question,
		Answer:      request.Answer,
		ContentEval: evaluation,
		Speech:      speech,
		Visual:      request.Visual,
	})
}

// RecordAnswer func - Use case: fuse an already evaluated answer and append it
func (s *InterviewService) RecordAnswer(ctx context.Context, id string, answer domain.RecordAnswerInput) (*domain.QuestionRecord, error) {
	session, err := s.loadInProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	if answer.Speech == nil && session.InterviewMode != domain.InterviewModeText {
		answer.Speech = s.deriveSpeech(answer.Answer, answer.DurationSeconds)
	}
	return s.recordAnswer(ctx, session, answer)
}

// deriveSpeech analyzes the transcript. Without a duration the speed category
// is left empty so no pace feedback is given.
func (s *InterviewService) deriveSpeech(answer string, durationSeconds float64) *domain.SpeechMetrics {
	metrics := s.analyzer.AnalyzeSpeech(answer, durationSeconds)
	if durationSeconds <= 0 {
		metrics.SpeedCategory = ""
	}
	return &metrics
}

func (s *InterviewService) recordAnswer(ctx context.Context, session *domain.InterviewSession, answer domain.RecordAnswerInput) (*domain.QuestionRecord, error) {
	if strings.TrimSpace(answer.Question) == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrValidation)
	}

	fused := fuseAnswer(session.InterviewMode, answer.ContentEval, answer.Speech, answer.Visual, s.analyzer)
	record := domain.QuestionRecord{
		ID:            s.newID(),
		Question:      answer.Question,
		Answer:        answer.Answer,
		Evaluation:    fused.evaluation,
		SpeechMetrics: fused.speech,
		VisualMetrics: fused.visual,
		Timestamp:     s.clock.Now(),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.store.AppendQuestionRecord(ctx, session.ID, record); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"session_id":     session.ID,
		"mode":           session.InterviewMode,
		"combined_score": record.Evaluation.CombinedScore,
	}).Info("Answer recorded")
	return &record, nil
}

// Complete func - Use case: in-progress → completed with overall score and feedback
func (s *InterviewService) Complete(ctx context.Context, id string) (*domain.InterviewSession, error) {
	session, err := s.loadInProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(session.Questions) == 0 {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNoAnswers, id)
	}

	scores := make([]int, 0, len(session.Questions))
	for _, q := range session.Questions {
		scores = append(scores, q.Evaluation.CombinedScore)
	}
	overall := domain.MeanScore(scores)

	feedback := s.orchestrator.GenerateOverallFeedback(ctx, domain.OverallFeedbackRequest{
		Records:       session.Questions,
		AverageScore:  overall,
		InterviewType: session.InterviewType,
		JobRole:       session.JobRole,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	completed, err := s.store.Finalize(ctx, id, domain.FinalizeRequest{
		ExpectedRecords: len(scores),
		OverallScore:    overall,
		Feedback:        feedback,
		DurationSeconds: domain.ElapsedSeconds(session.StartTime, now),
		EndTime:         now,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"session_id":    id,
		"overall_score": overall,
		"answers":       len(scores),
	}).Info("Interview session completed")
	return completed, nil
}
