package domain

import "time"

// DTOs (Data Transfer Objects) - Use case request/response structures

type (
	// QuestionRequest struct - input of question generation
	QuestionRequest struct {
		JobRole           string
		InterviewType     InterviewType
		Difficulty        Difficulty
		PreviousQuestions []string
		UserProfile       *UserProfile
	}

	// FollowUpRequest struct - input of follow-up generation
	FollowUpRequest struct {
		OriginalQuestion string
		UserAnswer       string
		InterviewType    InterviewType
		Difficulty       Difficulty
	}

	// EvaluateRequest struct - input of answer evaluation
	EvaluateRequest struct {
		Question      string
		Answer        string
		InterviewType InterviewType
		Difficulty    Difficulty
		JobRole       string
	}

	// OverallFeedbackRequest struct - input of closing feedback generation
	OverallFeedbackRequest struct {
		Records       []QuestionRecord
		AverageScore  int
		InterviewType InterviewType
		JobRole       string
	}

	// StartSessionRequest struct
	StartSessionRequest struct {
		CandidateID   string
		JobRole       string
		InterviewType InterviewType
		InterviewMode InterviewMode
		Difficulty    Difficulty
	}

	// RecordAnswerInput struct - one answer to fuse and append
	RecordAnswerInput struct {
		Question    string
		Answer      string
		ContentEval Evaluation
		// DurationSeconds is used only when Speech is not supplied; zero means
		// the pace is unknown
		DurationSeconds float64
		Speech          *SpeechMetrics
		Visual          *VisualMetrics
	}

	// SubmitAnswerRequest struct - evaluate, analyze and record in one step
	SubmitAnswerRequest struct {
		Question string
		Answer   string
		// DurationSeconds is the spoken length of the answer, used to derive
		// speech metrics when Speech is not supplied
		DurationSeconds float64
		Speech          *SpeechMetrics
		Visual          *VisualMetrics
	}

	// FinalizeRequest struct - completion data written by the session store.
	// ExpectedRecords is the record count the score was computed from; the
	// store rejects completion when the session holds a different number.
	FinalizeRequest struct {
		ExpectedRecords int
		OverallScore    int
		Feedback        OverallFeedback
		DurationSeconds int64
		EndTime         time.Time
	}

	// SpeechReport struct - full transcript analysis
	SpeechReport struct {
		Metrics  SpeechMetrics `json:"metrics"`
		Tone     ToneAnalysis  `json:"tone"`
		Feedback Feedback      `json:"feedback"`
	}
)
