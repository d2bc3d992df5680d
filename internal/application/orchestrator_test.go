package application

import (
	"context"
	"errors"
	"testing"

	"mock-interview/internal/domain"
)

func newTestOrchestrator(llm *MockTextGenerator, bank *MockQuestionBank, questions *MockQuestionCache, feedback *MockFeedbackCache) (*Orchestrator, *recordingSleeper) {
	sleeper := &recordingSleeper{}
	o := NewOrchestrator(llm, bank, questions, feedback,
		WithSleeper(sleeper.sleep),
		WithPicker(func(n int) int { return 0 }),
	)
	return o, sleeper
}

func backendRequest(previous ...string) domain.QuestionRequest {
	return domain.QuestionRequest{
		JobRole:           "Backend Engineer",
		InterviewType:     domain.InterviewTypeTechnical,
		Difficulty:        domain.DifficultyIntermediate,
		PreviousQuestions: previous,
	}
}

func TestGenerateQuestion_ServesUnusedCachedQuestion(t *testing.T) {
	llm := &MockTextGenerator{}
	cache := &MockQuestionCache{Buckets: map[string][]string{
		"backend engineer|Technical|Intermediate": {"Q1", "Q2"},
	}}
	o, _ := newTestOrchestrator(llm, &MockQuestionBank{}, cache, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest("Q1"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if question != "Q2" {
		t.Errorf("Expected Q2, got %q", question)
	}
	if len(llm.Requests) != 0 {
		t.Errorf("Expected no LLM call on a cache hit, got %d", len(llm.Requests))
	}
}

func TestGenerateQuestion_CacheKeyNormalisesRole(t *testing.T) {
	cache := &MockQuestionCache{Buckets: map[string][]string{
		"backend engineer|Technical|Intermediate": {"Cached"},
	}}
	o, _ := newTestOrchestrator(&MockTextGenerator{}, &MockQuestionBank{}, cache, &MockFeedbackCache{})

	request := backendRequest()
	request.JobRole = "  Backend   ENGINEER "
	question, err := o.GenerateQuestion(context.Background(), request)
	if err != nil || question != "Cached" {
		t.Errorf("Expected cached question, got %q, %v", question, err)
	}
}

func TestGenerateQuestion_GeneratesAndCaches(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "Question: \"How does the Go scheduler work?\"", nil
		},
	}
	cache := &MockQuestionCache{Buckets: map[string][]string{
		"backend engineer|Technical|Intermediate": {"Q1"},
	}}
	o, _ := newTestOrchestrator(llm, &MockQuestionBank{}, cache, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest("Q1"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if question != "How does the Go scheduler work?" {
		t.Errorf("Expected cleaned question, got %q", question)
	}
	bucket := cache.Buckets["backend engineer|Technical|Intermediate"]
	if len(bucket) != 2 || bucket[1] != question {
		t.Errorf("Expected question appended to bucket, got %v", bucket)
	}
}

func TestGenerateQuestion_FallsBackToBankOnPermanentFailure(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", domain.NewPermanentError(errors.New("unauthorized"), 401)
		},
	}
	var gotCategory string
	var gotDifficulty *domain.Difficulty
	bank := &MockQuestionBank{
		FindFunc: func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
			gotCategory, gotDifficulty = category, difficulty
			return "Bank question", true, nil
		},
	}
	o, sleeper := newTestOrchestrator(llm, bank, &MockQuestionCache{}, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest())
	if err != nil || question != "Bank question" {
		t.Fatalf("Expected bank question, got %q, %v", question, err)
	}
	if len(llm.Requests) != 1 || len(sleeper.delays) != 0 {
		t.Errorf("Expected one LLM attempt without backoff, got %d attempts and %v", len(llm.Requests), sleeper.delays)
	}
	if gotCategory != "Technical" || gotDifficulty == nil || *gotDifficulty != domain.DifficultyIntermediate {
		t.Errorf("Expected first bank lookup by category and difficulty, got %q %v", gotCategory, gotDifficulty)
	}
}

func TestGenerateQuestion_RetriesTransientThenFallsBack(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", rateLimited(0)
		},
	}
	bank := &MockQuestionBank{
		FindFunc: func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
			return "Bank question", true, nil
		},
	}
	o, sleeper := newTestOrchestrator(llm, bank, &MockQuestionCache{}, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest())
	if err != nil || question != "Bank question" {
		t.Fatalf("Expected bank question, got %q, %v", question, err)
	}
	if len(llm.Requests) != 3 {
		t.Errorf("Expected 3 LLM attempts, got %d", len(llm.Requests))
	}
	if len(sleeper.delays) != 2 {
		t.Errorf("Expected 2 backoff waits, got %v", sleeper.delays)
	}
}

func TestGenerateQuestion_DuplicateFromLLMUsesFallback(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "Q1", nil
		},
	}
	bank := &MockQuestionBank{
		FindFunc: func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
			return "Fresh bank question", true, nil
		},
	}
	cache := &MockQuestionCache{}
	o, _ := newTestOrchestrator(llm, bank, cache, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest("Q1"))
	if err != nil || question != "Fresh bank question" {
		t.Fatalf("Expected bank question, got %q, %v", question, err)
	}
	if len(cache.Buckets) != 0 {
		t.Errorf("Expected duplicate not to be cached, got %v", cache.Buckets)
	}
}

func TestGenerateQuestion_WidensFallbackChain(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", domain.NewPermanentError(errors.New("down"), 500)
		},
	}
	bank := &MockQuestionBank{
		FindFunc: func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
			if category == "" {
				return "Any category question", true, nil
			}
			return "", false, nil
		},
	}
	o, _ := newTestOrchestrator(llm, bank, &MockQuestionCache{}, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest())
	if err != nil || question != "Any category question" {
		t.Fatalf("Expected any-category question, got %q, %v", question, err)
	}
	if bank.Calls != 3 {
		t.Errorf("Expected 3 bank lookups, got %d", bank.Calls)
	}
}

func TestGenerateQuestion_ExhaustedFallback(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", domain.NewPermanentError(errors.New("down"), 503)
		},
	}
	bank := &MockQuestionBank{
		// a misbehaving bank that ignores the exclusion set
		FindFunc: func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
			return "Q1", true, nil
		},
	}
	cache := &MockQuestionCache{Buckets: map[string][]string{
		"backend engineer|Technical|Intermediate": {"Q1"},
	}}
	o, _ := newTestOrchestrator(llm, bank, cache, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest("Q1"))
	if !errors.Is(err, domain.ErrExhaustedFallback) {
		t.Fatalf("Expected ErrExhaustedFallback, got %q, %v", question, err)
	}
	if question != "" {
		t.Errorf("Expected no question, got %q", question)
	}
}

func TestGenerateQuestion_BankErrorContinuesChain(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", domain.NewPermanentError(errors.New("down"), 500)
		},
	}
	bank := &MockQuestionBank{
		FindFunc: func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
			if difficulty != nil {
				return "", false, errors.New("connection reset")
			}
			return "Category question", true, nil
		},
	}
	o, _ := newTestOrchestrator(llm, bank, &MockQuestionCache{}, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), backendRequest())
	if err != nil || question != "Category question" {
		t.Errorf("Expected category question, got %q, %v", question, err)
	}
}

func TestGenerateFollowUpQuestion_PropagatesFailure(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", domain.NewPermanentError(errors.New("bad gateway"), 502)
		},
	}
	bank := &MockQuestionBank{}
	o, _ := newTestOrchestrator(llm, bank, &MockQuestionCache{}, &MockFeedbackCache{})

	_, err := o.GenerateFollowUpQuestion(context.Background(), domain.FollowUpRequest{
		OriginalQuestion: "What is a channel?",
		UserAnswer:       "A pipe between goroutines",
		InterviewType:    domain.InterviewTypeTechnical,
		Difficulty:       domain.DifficultyBeginner,
	})
	if !errors.Is(err, domain.ErrPermanentProvider) {
		t.Errorf("Expected permanent provider error, got %v", err)
	}
	if bank.Calls != 0 {
		t.Errorf("Expected no bank fallback for follow-ups, got %d calls", bank.Calls)
	}
}

func TestEvaluateAnswer_ParsesAndClamps(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "```json\n{\"score\": 87.5, \"feedback\": \" Solid \", \"strengths\": [\"clear\"], \"detailedAnalysis\": {\"relevance\": 140, \"completeness\": -3, \"correctness\": 80, \"technicalAccuracy\": 79.4}}\n```", nil
		},
	}
	o, _ := newTestOrchestrator(llm, &MockQuestionBank{}, &MockQuestionCache{}, &MockFeedbackCache{})

	eval := o.EvaluateAnswer(context.Background(), domain.EvaluateRequest{Question: "Q", Answer: "A"})
	if eval.Degraded {
		t.Fatal("Expected a real evaluation")
	}
	if eval.ContentScore != 88 || eval.CombinedScore != 88 {
		t.Errorf("Expected score 88, got %d/%d", eval.ContentScore, eval.CombinedScore)
	}
	if eval.Feedback != "Solid" {
		t.Errorf("Expected trimmed feedback, got %q", eval.Feedback)
	}
	want := domain.DetailedAnalysis{Relevance: 100, Completeness: 0, Correctness: 80, TechnicalAccuracy: 79}
	if eval.DetailedAnalysis != want {
		t.Errorf("Expected %+v, got %+v", want, eval.DetailedAnalysis)
	}
	if eval.Improvements == nil {
		t.Error("Expected missing improvements to decode as an empty list")
	}
	if !llm.Requests[0].JSON {
		t.Error("Expected evaluation to request a JSON response")
	}
}

func TestEvaluateAnswer_DegradesOnFailure(t *testing.T) {
	tests := map[string]func(ctx context.Context, request domain.GenerationRequest) (string, error){
		"provider error": func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", rateLimited(0)
		},
		"unparseable": func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "I think this answer is quite good", nil
		},
	}
	for name, generate := range tests {
		t.Run(name, func(t *testing.T) {
			o, _ := newTestOrchestrator(&MockTextGenerator{GenerateFunc: generate}, &MockQuestionBank{}, &MockQuestionCache{}, &MockFeedbackCache{})

			eval := o.EvaluateAnswer(context.Background(), domain.EvaluateRequest{Question: "Q", Answer: "A"})
			if !eval.Degraded || eval.ContentScore != 50 {
				t.Errorf("Expected degraded evaluation with score 50, got %+v", eval)
			}
		})
	}
}

func TestGenerateOverallFeedback_CachedByDecile(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return `{"strengths":["depth"],"weaknesses":["pace"],"recommendations":["practice"],"summary":"Good run"}`, nil
		},
	}
	feedbackCache := &MockFeedbackCache{}
	o, _ := newTestOrchestrator(llm, &MockQuestionBank{}, &MockQuestionCache{}, feedbackCache)

	request := domain.OverallFeedbackRequest{JobRole: "SRE", InterviewType: domain.InterviewTypeMixed, AverageScore: 72}
	first := o.GenerateOverallFeedback(context.Background(), request)
	if first.Summary != "Good run" {
		t.Fatalf("Expected generated summary, got %+v", first)
	}

	request.AverageScore = 78
	second := o.GenerateOverallFeedback(context.Background(), request)
	if second.Summary != "Good run" {
		t.Errorf("Expected cached summary, got %+v", second)
	}
	if len(llm.Requests) != 1 {
		t.Errorf("Expected one LLM call for the same decile, got %d", len(llm.Requests))
	}
	if _, ok := feedbackCache.Entries["sre|Mixed|7"]; !ok {
		t.Errorf("Expected entry under sre|Mixed|7, got %v", feedbackCache.Entries)
	}
}

func TestGenerateOverallFeedback_GenericOnFailureIsNotCached(t *testing.T) {
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", domain.NewPermanentError(errors.New("down"), 500)
		},
	}
	feedbackCache := &MockFeedbackCache{}
	o, _ := newTestOrchestrator(llm, &MockQuestionBank{}, &MockQuestionCache{}, feedbackCache)

	feedback := o.GenerateOverallFeedback(context.Background(), domain.OverallFeedbackRequest{JobRole: "SRE", AverageScore: 40})
	if feedback.Summary != GenericOverallFeedback().Summary {
		t.Errorf("Expected generic summary, got %+v", feedback)
	}
	if len(feedbackCache.Entries) != 0 {
		t.Errorf("Expected generic feedback not to be cached, got %v", feedbackCache.Entries)
	}
}

func TestGenerateQuestion_SoleBankQuestionAlreadyAsked(t *testing.T) {
	const only = "Write a function that reverses a string."
	llm := &MockTextGenerator{
		GenerateFunc: func(ctx context.Context, request domain.GenerationRequest) (string, error) {
			return "", rateLimited(0)
		},
	}
	bank := &MockQuestionBank{
		FindFunc: func(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
			if _, used := excluding[only]; used {
				return "", false, nil
			}
			return only, true, nil
		},
	}
	o, _ := newTestOrchestrator(llm, bank, &MockQuestionCache{}, &MockFeedbackCache{})

	question, err := o.GenerateQuestion(context.Background(), domain.QuestionRequest{
		JobRole:           "Junior Developer",
		InterviewType:     domain.InterviewTypeCoding,
		Difficulty:        domain.DifficultyBeginner,
		PreviousQuestions: []string{only},
	})
	if !errors.Is(err, domain.ErrExhaustedFallback) {
		t.Fatalf("Expected ErrExhaustedFallback, got %q, %v", question, err)
	}
	if bank.Calls != 3 {
		t.Errorf("Expected each fallback step to be tried once, got %d lookups", bank.Calls)
	}
}
