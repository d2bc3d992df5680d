package domain

import "time"

// InterviewType type
type InterviewType string

const (
	// InterviewTypeTechnical const
	InterviewTypeTechnical InterviewType = "Technical"
	// InterviewTypeBehavioral const
	InterviewTypeBehavioral InterviewType = "Behavioral"
	// InterviewTypeHR const
	InterviewTypeHR InterviewType = "HR"
	// InterviewTypeMixed const
	InterviewTypeMixed InterviewType = "Mixed"
	// InterviewTypeSystemDesign const
	InterviewTypeSystemDesign InterviewType = "SystemDesign"
	// InterviewTypeCoding is the question bank category for code challenges
	InterviewTypeCoding InterviewType = "Coding"
)

// InterviewMode type
type InterviewMode string

const (
	// InterviewModeText const
	InterviewModeText InterviewMode = "Text"
	// InterviewModeVoice const
	InterviewModeVoice InterviewMode = "Voice"
	// InterviewModeVideo const
	InterviewModeVideo InterviewMode = "Video"
	// InterviewModeVideoAdvanced const
	InterviewModeVideoAdvanced InterviewMode = "VideoAdvanced"
)

// Difficulty type
type Difficulty string

const (
	// DifficultyBeginner const
	DifficultyBeginner Difficulty = "Beginner"
	// DifficultyIntermediate const
	DifficultyIntermediate Difficulty = "Intermediate"
	// DifficultyExpert const
	DifficultyExpert Difficulty = "Expert"
)

// SessionStatus type
type SessionStatus string

const (
	// SessionStatusInProgress const
	SessionStatusInProgress SessionStatus = "in-progress"
	// SessionStatusCompleted const
	SessionStatusCompleted SessionStatus = "completed"
	// SessionStatusAbandoned const
	SessionStatusAbandoned SessionStatus = "abandoned"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusAbandoned
}

// DetailedAnalysis holds the per-dimension content scores, each in [0,100].
type DetailedAnalysis struct {
	Relevance         int `json:"relevance"`
	Completeness      int `json:"completeness"`
	Correctness       int `json:"correctness"`
	TechnicalAccuracy int `json:"technicalAccuracy"`
}

// Clamp bounds every dimension to [0,100].
func (d DetailedAnalysis) Clamp() DetailedAnalysis {
	return DetailedAnalysis{
		Relevance:         ClampScore(d.Relevance),
		Completeness:      ClampScore(d.Completeness),
		Correctness:       ClampScore(d.Correctness),
		TechnicalAccuracy: ClampScore(d.TechnicalAccuracy),
	}
}

// Evaluation struct - Scored assessment of one answer.
// ContentScore is what the LLM judged the answer's content to be worth;
// CombinedScore is the fused per-answer score for the session's mode.
type Evaluation struct {
	ContentScore     int              `json:"contentScore"`
	CombinedScore    int              `json:"combinedScore"`
	Feedback         string           `json:"feedback"`
	Strengths        []string         `json:"strengths"`
	Improvements     []string         `json:"improvements"`
	DetailedAnalysis DetailedAnalysis `json:"detailedAnalysis"`
	Degraded         bool             `json:"degraded,omitempty"`
}

// QuestionRecord struct - One asked question with its answer and evaluation.
// Records are immutable once appended to a session.
type QuestionRecord struct {
	ID            string         `json:"id"`
	Question      string         `json:"question"`
	Answer        string         `json:"answer"`
	Evaluation    Evaluation     `json:"evaluation"`
	SpeechMetrics *SpeechMetrics `json:"speechMetrics,omitempty"`
	VisualMetrics *VisualMetrics `json:"visualMetrics,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// OverallFeedback struct - Closing feedback for a whole session.
type OverallFeedback struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

// UserProfile struct - Candidate context used to personalise prompts.
type UserProfile struct {
	Name            string   `json:"name,omitempty"`
	CurrentRole     string   `json:"currentRole,omitempty"`
	TargetRole      string   `json:"targetRole,omitempty"`
	ExperienceYears int      `json:"experienceYears,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}

// InterviewSession struct - The durable aggregate of one interview.
type InterviewSession struct {
	ID              string           `json:"id"`
	CandidateID     string           `json:"candidateId"`
	JobRole         string           `json:"jobRole"`
	InterviewType   InterviewType    `json:"interviewType"`
	InterviewMode   InterviewMode    `json:"interviewMode"`
	Difficulty      Difficulty       `json:"difficulty"`
	Questions       []QuestionRecord `json:"questions"`
	OverallScore    int              `json:"overallScore"`
	Feedback        *OverallFeedback `json:"feedback,omitempty"`
	Status          SessionStatus    `json:"status"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         *time.Time       `json:"endTime,omitempty"`
	DurationSeconds int64            `json:"durationSeconds"`
}

// AskedQuestions returns the question texts in asked order.
func (s *InterviewSession) AskedQuestions() []string {
	asked := make([]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		asked = append(asked, q.Question)
	}
	return asked
}

// Clone returns a deep copy so callers never share slices with a store.
func (s *InterviewSession) Clone() *InterviewSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Questions = make([]QuestionRecord, len(s.Questions))
	copy(out.Questions, s.Questions)
	if s.Feedback != nil {
		fb := *s.Feedback
		out.Feedback = &fb
	}
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	return &out
}

// BankQuestion struct - One canned question of the question bank.
type BankQuestion struct {
	Category   string     `json:"category" yaml:"category"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Text       string     `json:"text" yaml:"text"`
}
