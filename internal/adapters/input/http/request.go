package http

import "mock-interview/internal/domain"

type (
	// UserProfileRequest struct - HTTP request DTO
	UserProfileRequest struct {
		Name            string   `json:"name" validate:"omitempty,max=100"`
		CurrentRole     string   `json:"currentRole" validate:"omitempty,max=100"`
		TargetRole      string   `json:"targetRole" validate:"omitempty,max=100"`
		ExperienceYears int      `json:"experienceYears" validate:"gte=0,lte=60"`
		Skills          []string `json:"skills" validate:"omitempty,max=50,dive,max=60"`
	}

	// GenerateQuestionRequest struct - HTTP request DTO
	GenerateQuestionRequest struct {
		JobRole           string              `json:"jobRole" validate:"required,max=200"`
		InterviewType     string              `json:"interviewType" validate:"required,oneof=Technical Behavioral HR Mixed SystemDesign Coding"`
		Difficulty        string              `json:"difficulty" validate:"required,oneof=Beginner Intermediate Expert"`
		PreviousQuestions []string            `json:"previousQuestions" validate:"omitempty,max=200"`
		UserProfile       *UserProfileRequest `json:"userProfile" validate:"omitempty"`
	}

	// FollowUpRequest struct - HTTP request DTO
	FollowUpRequest struct {
		OriginalQuestion string `json:"originalQuestion" validate:"required"`
		UserAnswer       string `json:"userAnswer" validate:"required"`
		InterviewType    string `json:"interviewType" validate:"required,oneof=Technical Behavioral HR Mixed SystemDesign Coding"`
		Difficulty       string `json:"difficulty" validate:"required,oneof=Beginner Intermediate Expert"`
	}

	// EvaluateAnswerRequest struct - HTTP request DTO
	EvaluateAnswerRequest struct {
		Question      string `json:"question" validate:"required"`
		Answer        string `json:"answer"`
		InterviewType string `json:"interviewType" validate:"required,oneof=Technical Behavioral HR Mixed SystemDesign Coding"`
		Difficulty    string `json:"difficulty" validate:"required,oneof=Beginner Intermediate Expert"`
		JobRole       string `json:"jobRole" validate:"required,max=200"`
	}

	// FeedbackRecordRequest struct - one answered question in an overall feedback request
	FeedbackRecordRequest struct {
		Question string `json:"question" validate:"required"`
		Answer   string `json:"answer"`
		Score    int    `json:"score" validate:"score"`
	}

	// OverallFeedbackRequest struct - HTTP request DTO
	OverallFeedbackRequest struct {
		Records       []FeedbackRecordRequest `json:"records" validate:"required,min=1,dive"`
		AverageScore  int                     `json:"averageScore" validate:"score"`
		InterviewType string                  `json:"interviewType" validate:"required,oneof=Technical Behavioral HR Mixed SystemDesign Coding"`
		JobRole       string                  `json:"jobRole" validate:"required,max=200"`
	}

	// ValidateCodeRequest struct - HTTP request DTO
	ValidateCodeRequest struct {
		Language string `json:"language" validate:"required,max=32"`
		Code     string `json:"code"`
	}

	// TestCaseRequest struct - HTTP request DTO
	TestCaseRequest struct {
		Input          string `json:"input"`
		ExpectedOutput string `json:"expectedOutput"`
		Hidden         bool   `json:"hidden"`
	}

	// ExecuteCodeRequest struct - HTTP request DTO
	ExecuteCodeRequest struct {
		Language  string            `json:"language" validate:"required,max=32"`
		Code      string            `json:"code"`
		TestCases []TestCaseRequest `json:"testCases" validate:"required,min=1,max=50,dive"`
	}

	// AnalyzeSpeechRequest struct - HTTP request DTO
	AnalyzeSpeechRequest struct {
		Transcript      string  `json:"transcript"`
		DurationSeconds float64 `json:"durationSeconds" validate:"gte=0"`
	}

	// StartSessionRequest struct - HTTP request DTO
	StartSessionRequest struct {
		CandidateID   string `json:"candidateId" validate:"omitempty,max=64"`
		JobRole       string `json:"jobRole" validate:"required,max=200"`
		InterviewType string `json:"interviewType" validate:"required,oneof=Technical Behavioral HR Mixed SystemDesign Coding"`
		InterviewMode string `json:"interviewMode" validate:"omitempty,oneof=Text Voice Video VideoAdvanced"`
		Difficulty    string `json:"difficulty" validate:"required,oneof=Beginner Intermediate Expert"`
	}

	// NextQuestionRequest struct - HTTP request DTO
	NextQuestionRequest struct {
		UserProfile *UserProfileRequest `json:"userProfile" validate:"omitempty"`
	}

	// SpeechMetricsRequest struct - pre-computed speech metrics
	SpeechMetricsRequest struct {
		FillerWordCount     int `json:"fillerWordCount" validate:"gte=0"`
		SpeakingRateWPM     int `json:"speakingRateWPM" validate:"gte=0"`
		ClarityScore        int `json:"clarityScore" validate:"score"`
		PauseCount          int `json:"pauseCount" validate:"gte=0"`
		AvgWordsPerSentence int `json:"avgWordsPerSentence" validate:"gte=0"`
		ToneConfidenceScore int `json:"toneConfidenceScore" validate:"score"`
	}

	// VisualMetricsRequest struct - metrics supplied by the capture component
	// Out of range values are clamped rather than rejected.
	VisualMetricsRequest struct {
		EyeContactScore   int    `json:"eyeContactScore"`
		Posture           string `json:"posture"`
		FacialExpression  string `json:"facialExpression"`
		OverallConfidence int    `json:"overallConfidence"`
		LookingAwayCount  int    `json:"lookingAwayCount"`
	}

	// SubmitAnswerRequest struct - HTTP request DTO
	SubmitAnswerRequest struct {
		Question        string                `json:"question" validate:"required"`
		Answer          string                `json:"answer"`
		DurationSeconds float64               `json:"durationSeconds" validate:"gte=0"`
		Speech          *SpeechMetricsRequest `json:"speech" validate:"omitempty"`
		Visual          *VisualMetricsRequest `json:"visual" validate:"omitempty"`
	}

	// ContentEvaluationRequest struct - an evaluation produced elsewhere
	ContentEvaluationRequest struct {
		Score            int                     `json:"score" validate:"score"`
		Feedback         string                  `json:"feedback"`
		Strengths        []string                `json:"strengths"`
		Improvements     []string                `json:"improvements"`
		DetailedAnalysis domain.DetailedAnalysis `json:"detailedAnalysis"`
	}

	// RecordAnswerRequest struct - HTTP request DTO
	RecordAnswerRequest struct {
		Question        string                   `json:"question" validate:"required"`
		Answer          string                   `json:"answer"`
		DurationSeconds float64                  `json:"durationSeconds" validate:"gte=0"`
		ContentEval     ContentEvaluationRequest `json:"contentEval"`
		Speech          *SpeechMetricsRequest    `json:"speech" validate:"omitempty"`
		Visual          *VisualMetricsRequest    `json:"visual" validate:"omitempty"`
	}
)

func (r *UserProfileRequest) toDomain() *domain.UserProfile {
	if r == nil {
		return nil
	}
	return &domain.UserProfile{
		Name:            r.Name,
		CurrentRole:     r.CurrentRole,
		TargetRole:      r.TargetRole,
		ExperienceYears: r.ExperienceYears,
		Skills:          r.Skills,
	}
}

func (r *SpeechMetricsRequest) toDomain() *domain.SpeechMetrics {
	if r == nil {
		return nil
	}
	return &domain.SpeechMetrics{
		FillerWordCount:     r.FillerWordCount,
		SpeakingRateWPM:     r.SpeakingRateWPM,
		SpeedCategory:       domain.SpeedCategoryFor(r.SpeakingRateWPM),
		ClarityScore:        r.ClarityScore,
		PauseCount:          r.PauseCount,
		AvgWordsPerSentence: r.AvgWordsPerSentence,
		ToneConfidenceScore: r.ToneConfidenceScore,
	}
}

func (r *VisualMetricsRequest) toDomain() *domain.VisualMetrics {
	if r == nil {
		return nil
	}
	return &domain.VisualMetrics{
		EyeContactScore:   r.EyeContactScore,
		Posture:           domain.Posture(r.Posture),
		FacialExpression:  domain.FacialExpression(r.FacialExpression),
		OverallConfidence: r.OverallConfidence,
		LookingAwayCount:  r.LookingAwayCount,
	}
}
