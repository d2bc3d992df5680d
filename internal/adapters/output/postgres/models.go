package postgres

import (
	"time"

	"mock-interview/internal/domain"
)

// sessionModel is the interview_sessions row
type sessionModel struct {
	ID              string                  `gorm:"primaryKey;type:varchar(36)"`
	CandidateID     string                  `gorm:"index;type:varchar(64)"`
	JobRole         string                  `gorm:"type:varchar(200);not null"`
	InterviewType   string                  `gorm:"type:varchar(32);not null"`
	InterviewMode   string                  `gorm:"type:varchar(32);not null"`
	Difficulty      string                  `gorm:"type:varchar(32);not null"`
	OverallScore    int                     `gorm:"not null;default:0"`
	Feedback        *domain.OverallFeedback `gorm:"serializer:json;type:jsonb"`
	Status          string                  `gorm:"type:varchar(16);index;not null"`
	StartTime       time.Time               `gorm:"not null"`
	EndTime         *time.Time
	DurationSeconds int64 `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName func
func (sessionModel) TableName() string {
	return "interview_sessions"
}

// questionRecordModel is one question_records row; Position keeps asked order
type questionRecordModel struct {
	ID            string                `gorm:"primaryKey;type:varchar(36)"`
	SessionID     string                `gorm:"type:varchar(36);not null;uniqueIndex:idx_session_position"`
	Position      int                   `gorm:"not null;uniqueIndex:idx_session_position"`
	Question      string                `gorm:"type:text;not null"`
	Answer        string                `gorm:"type:text"`
	Evaluation    domain.Evaluation     `gorm:"serializer:json;type:jsonb"`
	SpeechMetrics *domain.SpeechMetrics `gorm:"serializer:json;type:jsonb"`
	VisualMetrics *domain.VisualMetrics `gorm:"serializer:json;type:jsonb"`
	Timestamp     time.Time             `gorm:"not null"`
}

// TableName func
func (questionRecordModel) TableName() string {
	return "question_records"
}

// bankQuestionModel is one question_bank row
type bankQuestionModel struct {
	ID         uint   `gorm:"primaryKey"`
	Category   string `gorm:"type:varchar(32);index:idx_bank_category_difficulty;not null"`
	Difficulty string `gorm:"type:varchar(32);index:idx_bank_category_difficulty"`
	Text       string `gorm:"type:text;uniqueIndex;not null"`
}

// TableName func
func (bankQuestionModel) TableName() string {
	return "question_bank"
}

func toSessionModel(s *domain.InterviewSession) sessionModel {
	return sessionModel{
		ID:              s.ID,
		CandidateID:     s.CandidateID,
		JobRole:         s.JobRole,
		InterviewType:   string(s.InterviewType),
		InterviewMode:   string(s.InterviewMode),
		Difficulty:      string(s.Difficulty),
		OverallScore:    s.OverallScore,
		Feedback:        s.Feedback,
		Status:          string(s.Status),
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationSeconds: s.DurationSeconds,
	}
}

func toRecordModel(sessionID string, position int, r domain.QuestionRecord) questionRecordModel {
	return questionRecordModel{
		ID:            r.ID,
		SessionID:     sessionID,
		Position:      position,
		Question:      r.Question,
		Answer:        r.Answer,
		Evaluation:    r.Evaluation,
		SpeechMetrics: r.SpeechMetrics,
		VisualMetrics: r.VisualMetrics,
		Timestamp:     r.Timestamp,
	}
}

func toDomainSession(m sessionModel, records []questionRecordModel) *domain.InterviewSession {
	questions := make([]domain.QuestionRecord, 0, len(records))
	for _, r := range records {
		questions = append(questions, domain.QuestionRecord{
			ID:            r.ID,
			Question:      r.Question,
			Answer:        r.Answer,
			Evaluation:    r.Evaluation,
			SpeechMetrics: r.SpeechMetrics,
			VisualMetrics: r.VisualMetrics,
			Timestamp:     r.Timestamp,
		})
	}
	return &domain.InterviewSession{
		ID:              m.ID,
		CandidateID:     m.CandidateID,
		JobRole:         m.JobRole,
		InterviewType:   domain.InterviewType(m.InterviewType),
		InterviewMode:   domain.InterviewMode(m.InterviewMode),
		Difficulty:      domain.Difficulty(m.Difficulty),
		Questions:       questions,
		OverallScore:    m.OverallScore,
		Feedback:        m.Feedback,
		Status:          domain.SessionStatus(m.Status),
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		DurationSeconds: m.DurationSeconds,
	}
}
