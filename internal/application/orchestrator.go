package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/input"
	"mock-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

var _ input.Orchestrator = (*Orchestrator)(nil)

// Orchestrator struct - Application service mediating every LLM call
type Orchestrator struct {
	llm       output.TextGenerator
	bank      output.QuestionBank
	questions output.QuestionCache
	feedback  output.FeedbackCache
	retry     retrier
	pick      func(n int) int
}

// OrchestratorOption customises an Orchestrator
type OrchestratorOption func(*Orchestrator)

// WithSleeper replaces the backoff sleeper
func WithSleeper(sleep Sleeper) OrchestratorOption {
	return func(o *Orchestrator) {
		o.retry.sleep = sleep
	}
}

// WithPicker replaces the uniform random choice among cached questions
func WithPicker(pick func(n int) int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.pick = pick
	}
}

// NewOrchestrator func - Creates new LLM orchestrator
func NewOrchestrator(llm output.TextGenerator, bank output.QuestionBank, questions output.QuestionCache, feedback output.FeedbackCache, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		llm:       llm,
		bank:      bank,
		questions: questions,
		feedback:  feedback,
		retry:     retrier{sleep: SleepContext},
		pick:      rand.Intn,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func questionCacheKey(jobRole string, interviewType domain.InterviewType, difficulty domain.Difficulty) string {
	return fmt.Sprintf("%s|%s|%s", normalizeRole(jobRole), interviewType, difficulty)
}

func feedbackCacheKey(jobRole string, interviewType domain.InterviewType, averageScore int) string {
	return fmt.Sprintf("%s|%s|%d", normalizeRole(jobRole), interviewType, domain.ClampScore(averageScore)/10)
}

func normalizeRole(jobRole string) string {
	return strings.ToLower(strings.Join(strings.Fields(jobRole), " "))
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// GenerateQuestion func - Use case: next interview question
// Lookup order is cache bucket, LLM, then the question bank fallback chain.
func (o *Orchestrator) GenerateQuestion(ctx context.Context, request domain.QuestionRequest) (string, error) {
	excluded := toSet(request.PreviousQuestions)
	key := questionCacheKey(request.JobRole, request.InterviewType, request.Difficulty)

	if question, ok := o.pickCached(key, excluded); ok {
		logrus.WithField("cache_key", key).Debug("Serving question from cache")
		return question, nil
	}

	question, err := o.generateFresh(ctx, request, excluded)
	if err == nil {
		o.questions.Add(key, question)
		return question, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("generate question: %w", ctxErr)
	}

	logrus.WithField("cache_key", key).WithError(err).Info("LLM question generation failed, using question bank")
	return o.fallbackQuestion(ctx, request, excluded)
}

func (o *Orchestrator) pickCached(key string, excluded map[string]struct{}) (string, bool) {
	candidates := o.questions.Candidates(key)
	unused := make([]string, 0, len(candidates))
	for _, q := range candidates {
		if _, asked := excluded[q]; !asked {
			unused = append(unused, q)
		}
	}
	if len(unused) == 0 {
		return "", false
	}
	return unused[o.pick(len(unused))], true
}

func (o *Orchestrator) generateFresh(ctx context.Context, request domain.QuestionRequest, excluded map[string]struct{}) (string, error) {
	text, err := o.retry.do(ctx, "generate question", func(ctx context.Context) (string, error) {
		return o.llm.Generate(ctx, domain.GenerationRequest{
			SystemPrompt: interviewerSystemPrompt,
			Prompt:       questionPrompt(request),
		})
	})
	if err != nil {
		return "", err
	}

	question := cleanQuestion(text)
	if question == "" {
		return "", domain.NewPermanentError(errors.New("empty question in response"), 0)
	}
	if _, asked := excluded[question]; asked {
		return "", domain.ErrDuplicateQuestion
	}
	return question, nil
}

type fallbackStep struct {
	name       string
	category   string
	difficulty *domain.Difficulty
}

func (o *Orchestrator) fallbackQuestion(ctx context.Context, request domain.QuestionRequest, excluded map[string]struct{}) (string, error) {
	difficulty := request.Difficulty
	category := string(request.InterviewType)
	steps := []fallbackStep{
		{name: "category and difficulty", category: category, difficulty: &difficulty},
		{name: "category", category: category},
		{name: "any category"},
	}

	for _, step := range steps {
		question, ok, err := o.bank.Find(ctx, step.category, step.difficulty, excluded)
		if err != nil {
			logrus.WithField("step", step.name).WithError(err).Warn("Question bank lookup failed")
			continue
		}
		if !ok {
			continue
		}
		if _, asked := excluded[question]; asked {
			continue
		}
		logrus.WithField("step", step.name).Info("Serving question from question bank")
		return question, nil
	}

	return "", fmt.Errorf("%w: role=%q type=%s difficulty=%s", domain.ErrExhaustedFallback,
		request.JobRole, request.InterviewType, request.Difficulty)
}

// GenerateFollowUpQuestion func - Use case: follow-up on an answer, no cache and no fallback
func (o *Orchestrator) GenerateFollowUpQuestion(ctx context.Context, request domain.FollowUpRequest) (string, error) {
	text, err := o.retry.do(ctx, "generate follow-up question", func(ctx context.Context) (string, error) {
		return o.llm.Generate(ctx, domain.GenerationRequest{
			SystemPrompt: interviewerSystemPrompt,
			Prompt:       followUpPrompt(request),
		})
	})
	if err != nil {
		return "", err
	}

	question := cleanQuestion(text)
	if question == "" {
		return "", domain.NewPermanentError(errors.New("empty follow-up question in response"), 0)
	}
	return question, nil
}

type evaluationPayload struct {
	Score            float64  `json:"score"`
	Feedback         string   `json:"feedback"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	DetailedAnalysis struct {
		Relevance         float64 `json:"relevance"`
		Completeness      float64 `json:"completeness"`
		Correctness       float64 `json:"correctness"`
		TechnicalAccuracy float64 `json:"technicalAccuracy"`
	} `json:"detailedAnalysis"`
}

// DegradedEvaluation is returned whenever the LLM cannot evaluate an answer.
func DegradedEvaluation() domain.Evaluation {
	return domain.Evaluation{
		ContentScore:  50,
		CombinedScore: 50,
		Feedback:      "Your answer has been recorded. Detailed automated feedback is temporarily unavailable, so a provisional score was assigned.",
		Strengths:     []string{"Answer submitted"},
		Improvements:  []string{"Revisit this question later for detailed feedback"},
		DetailedAnalysis: domain.DetailedAnalysis{
			Relevance:         50,
			Completeness:      50,
			Correctness:       50,
			TechnicalAccuracy: 50,
		},
		Degraded: true,
	}
}

// EvaluateAnswer func - Use case: score one answer; never blocks session progress
func (o *Orchestrator) EvaluateAnswer(ctx context.Context, request domain.EvaluateRequest) domain.Evaluation {
	text, err := o.retry.do(ctx, "evaluate answer", func(ctx context.Context) (string, error) {
		return o.llm.Generate(ctx, domain.GenerationRequest{
			SystemPrompt: evaluatorSystemPrompt,
			Prompt:       evaluationPrompt(request),
			JSON:         true,
		})
	})
	if err != nil {
		logrus.WithError(err).Warn("Answer evaluation degraded to default score")
		return DegradedEvaluation()
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &payload); err != nil {
		logrus.WithError(err).Warn("Unparseable evaluation response, degraded to default score")
		return DegradedEvaluation()
	}

	score := roundScore(payload.Score)
	return domain.Evaluation{
		ContentScore:  score,
		CombinedScore: score,
		Feedback:      strings.TrimSpace(payload.Feedback),
		Strengths:     nonNil(payload.Strengths),
		Improvements:  nonNil(payload.Improvements),
		DetailedAnalysis: domain.DetailedAnalysis{
			Relevance:         roundScore(payload.DetailedAnalysis.Relevance),
			Completeness:      roundScore(payload.DetailedAnalysis.Completeness),
			Correctness:       roundScore(payload.DetailedAnalysis.Correctness),
			TechnicalAccuracy: roundScore(payload.DetailedAnalysis.TechnicalAccuracy),
		},
	}
}

// GenericOverallFeedback is returned whenever the LLM cannot summarise a session.
func GenericOverallFeedback() domain.OverallFeedback {
	return domain.OverallFeedback{
		Strengths:       []string{"Completed the full interview"},
		Weaknesses:      []string{"Detailed analysis is temporarily unavailable"},
		Recommendations: []string{"Review the feedback on each question", "Practice again to track your progress"},
		Summary:         "Thank you for completing the interview. Your answers have been scored individually; review the per-question feedback to see where you can improve.",
	}
}

// GenerateOverallFeedback func - Use case: closing feedback, cached per score decile
func (o *Orchestrator) GenerateOverallFeedback(ctx context.Context, request domain.OverallFeedbackRequest) domain.OverallFeedback {
	key := feedbackCacheKey(request.JobRole, request.InterviewType, request.AverageScore)
	if cached, ok := o.feedback.Get(key); ok {
		logrus.WithField("cache_key", key).Debug("Serving overall feedback from cache")
		return cached
	}

	text, err := o.retry.do(ctx, "generate overall feedback", func(ctx context.Context) (string, error) {
		return o.llm.Generate(ctx, domain.GenerationRequest{
			SystemPrompt: evaluatorSystemPrompt,
			Prompt:       overallFeedbackPrompt(request),
			JSON:         true,
		})
	})
	if err != nil {
		logrus.WithError(err).Warn("Overall feedback degraded to generic summary")
		return GenericOverallFeedback()
	}

	var feedback domain.OverallFeedback
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &feedback); err != nil || strings.TrimSpace(feedback.Summary) == "" {
		logrus.WithError(err).Warn("Unparseable overall feedback response, degraded to generic summary")
		return GenericOverallFeedback()
	}
	feedback.Strengths = nonNil(feedback.Strengths)
	feedback.Weaknesses = nonNil(feedback.Weaknesses)
	feedback.Recommendations = nonNil(feedback.Recommendations)
	feedback.Summary = strings.TrimSpace(feedback.Summary)

	o.feedback.Set(key, feedback)
	return feedback
}

func roundScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return domain.ClampScore(int(math.Floor(domain.ClampFloat(v, 0, 100) + 0.5)))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
