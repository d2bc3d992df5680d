package postgres

import (
	"testing"
	"time"

	"mock-interview/internal/domain"
)

func TestToDomainSessionKeepsRecordOrder(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	session := &domain.InterviewSession{
		ID:            "s1",
		JobRole:       "SRE",
		InterviewType: domain.InterviewTypeSystemDesign,
		InterviewMode: domain.InterviewModeVoice,
		Difficulty:    domain.DifficultyExpert,
		Status:        domain.SessionStatusInProgress,
		StartTime:     start,
	}

	records := []questionRecordModel{
		toRecordModel("s1", 0, domain.QuestionRecord{ID: "r0", Question: "first", Evaluation: domain.Evaluation{CombinedScore: 70}}),
		toRecordModel("s1", 1, domain.QuestionRecord{ID: "r1", Question: "second", Evaluation: domain.Evaluation{CombinedScore: 90}}),
	}

	got := toDomainSession(toSessionModel(session), records)

	if got.InterviewMode != domain.InterviewModeVoice || got.Status != domain.SessionStatusInProgress || !got.StartTime.Equal(start) {
		t.Errorf("unexpected session fields: %+v", got)
	}
	if len(got.Questions) != 2 || got.Questions[0].Question != "first" || got.Questions[1].Evaluation.CombinedScore != 90 {
		t.Errorf("unexpected records: %+v", got.Questions)
	}
	if records[1].Position != 1 || records[1].SessionID != "s1" {
		t.Errorf("unexpected record model: %+v", records[1])
	}
}
