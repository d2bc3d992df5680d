package http

import (
	"context"
	"fmt"
	"strings"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/input"
	"mock-interview/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// PingFunc reports whether the backing store is reachable
type PingFunc func(ctx context.Context) error

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	orchestrator input.Orchestrator
	engine       input.CodeEngine
	analyzer     input.SpeechAnalyzer
	interviews   input.InterviewService
	ping         PingFunc
	validator    validator.Validator
}

// New func - Creates new HTTP handler
func New(orchestrator input.Orchestrator, engine input.CodeEngine, analyzer input.SpeechAnalyzer, interviews input.InterviewService, ping PingFunc) *HTTPHandler {
	return &HTTPHandler{
		orchestrator: orchestrator,
		engine:       engine,
		analyzer:     analyzer,
		interviews:   interviews,
		ping:         ping,
		validator:    validator.New(),
	}
}

// Register mounts every route on app
func (hdl *HTTPHandler) Register(app fiber.Router) {
	app.Get("/health", hdl.HealthCheck)

	api := app.Group("/v1/api")
	{
		api.Post("/questions/generate", hdl.GenerateQuestion)
		api.Post("/questions/follow-up", hdl.GenerateFollowUp)
		api.Post("/answers/evaluate", hdl.EvaluateAnswer)
		api.Post("/feedback/overall", hdl.OverallFeedback)
		api.Post("/code/validate", hdl.ValidateCode)
		api.Post("/code/execute", hdl.ExecuteCode)
		api.Post("/speech/analyze", hdl.AnalyzeSpeech)

		api.Post("/sessions", hdl.StartSession)
		api.Get("/sessions/:id", hdl.GetSession)
		api.Post("/sessions/:id/questions", hdl.NextQuestion)
		api.Post("/sessions/:id/answers", hdl.SubmitAnswer)
		api.Post("/sessions/:id/record", hdl.RecordAnswer)
		api.Post("/sessions/:id/complete", hdl.CompleteSession)
	}
}

// bind parses and validates the body
func (hdl *HTTPHandler) bind(c *fiber.Ctx, request interface{}) error {
	if err := c.BodyParser(request); err != nil {
		logrus.Errorln(err)
		return fmt.Errorf("%w: malformed body", domain.ErrValidation)
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func sessionID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: session id must be a uuid", domain.ErrValidation)
	}
	return id, nil
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.ping != nil {
		if err := hdl.ping(c.UserContext()); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
		}
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// GenerateQuestion godoc
// @Summary Generate interview question
// @Description Returns a question not contained in previousQuestions, falling back to the question bank
// @Tags QUESTION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /v1/api/questions/generate	[post]
// @Produce json
// @param GenerateQuestion body GenerateQuestionRequest true "GenerateQuestion"
func (hdl *HTTPHandler) GenerateQuestion(c *fiber.Ctx) error {
	var request GenerateQuestionRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	question, err := hdl.orchestrator.GenerateQuestion(c.UserContext(), domain.QuestionRequest{
		JobRole:           request.JobRole,
		InterviewType:     domain.InterviewType(request.InterviewType),
		Difficulty:        domain.Difficulty(request.Difficulty),
		PreviousQuestions: request.PreviousQuestions,
		UserProfile:       request.UserProfile.toDomain(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: QuestionResponse{Question: question}})
}

// GenerateFollowUp godoc
// @Summary Generate follow-up question
// @Description Probes deeper into the candidate's previous answer
// @Tags QUESTION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/questions/follow-up	[post]
// @Produce json
// @param FollowUp body FollowUpRequest true "FollowUp"
func (hdl *HTTPHandler) GenerateFollowUp(c *fiber.Ctx) error {
	var request FollowUpRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	question, err := hdl.orchestrator.GenerateFollowUpQuestion(c.UserContext(), domain.FollowUpRequest{
		OriginalQuestion: request.OriginalQuestion,
		UserAnswer:       request.UserAnswer,
		InterviewType:    domain.InterviewType(request.InterviewType),
		Difficulty:       domain.Difficulty(request.Difficulty),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: QuestionResponse{Question: question}})
}

// EvaluateAnswer godoc
// @Summary Evaluate answer
// @Description Scores an answer; a degraded evaluation is returned when the LLM is unavailable
// @Tags ANSWER
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/answers/evaluate	[post]
// @Produce json
// @param EvaluateAnswer body EvaluateAnswerRequest true "EvaluateAnswer"
func (hdl *HTTPHandler) EvaluateAnswer(c *fiber.Ctx) error {
	var request EvaluateAnswerRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	evaluation := hdl.orchestrator.EvaluateAnswer(c.UserContext(), domain.EvaluateRequest{
		Question:      request.Question,
		Answer:        request.Answer,
		InterviewType: domain.InterviewType(request.InterviewType),
		Difficulty:    domain.Difficulty(request.Difficulty),
		JobRole:       request.JobRole,
	})
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: evaluation})
}

// OverallFeedback godoc
// @Summary Overall feedback
// @Description Summarises a set of answered questions
// @Tags FEEDBACK
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/feedback/overall	[post]
// @Produce json
// @param OverallFeedback body OverallFeedbackRequest true "OverallFeedback"
func (hdl *HTTPHandler) OverallFeedback(c *fiber.Ctx) error {
	var request OverallFeedbackRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	records := make([]domain.QuestionRecord, 0, len(request.Records))
	for _, r := range request.Records {
		records = append(records, domain.QuestionRecord{
			Question:   r.Question,
			Answer:     r.Answer,
			Evaluation: domain.Evaluation{ContentScore: r.Score, CombinedScore: r.Score},
		})
	}
	feedback := hdl.orchestrator.GenerateOverallFeedback(c.UserContext(), domain.OverallFeedbackRequest{
		Records:       records,
		AverageScore:  request.AverageScore,
		InterviewType: domain.InterviewType(request.InterviewType),
		JobRole:       request.JobRole,
	})
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: feedback})
}

// ValidateCode godoc
// @Summary Validate code
// @Description Syntax check without execution
// @Tags CODE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/code/validate	[post]
// @Produce json
// @param ValidateCode body ValidateCodeRequest true "ValidateCode"
func (hdl *HTTPHandler) ValidateCode(c *fiber.Ctx) error {
	var request ValidateCodeRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	result := hdl.engine.ValidateCode(strings.ToLower(request.Language), request.Code)
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: result})
}

// ExecuteCode godoc
// @Summary Execute code
// @Description Runs the submission against every test case in a fresh sandbox
// @Tags CODE
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/code/execute	[post]
// @Produce json
// @param ExecuteCode body ExecuteCodeRequest true "ExecuteCode"
func (hdl *HTTPHandler) ExecuteCode(c *fiber.Ctx) error {
	var request ExecuteCodeRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	testCases := make([]domain.TestCase, 0, len(request.TestCases))
	for _, tc := range request.TestCases {
		testCases = append(testCases, domain.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			Hidden:         tc.Hidden,
		})
	}
	report := hdl.engine.ExecuteCode(c.UserContext(), strings.ToLower(request.Language), request.Code, testCases)
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: report})
}

// AnalyzeSpeech godoc
// @Summary Analyze speech
// @Description Transcript metrics, tone and feedback
// @Tags SPEECH
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/speech/analyze	[post]
// @Produce json
// @param AnalyzeSpeech body AnalyzeSpeechRequest true "AnalyzeSpeech"
func (hdl *HTTPHandler) AnalyzeSpeech(c *fiber.Ctx) error {
	var request AnalyzeSpeechRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	report := hdl.analyzer.Analyze(request.Transcript, request.DurationSeconds)
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: report})
}

// StartSession godoc
// @Summary Start interview session
// @Tags SESSION
// @Accept application/json
// @Success 201 {object} map[string]interface{}
// @Router /v1/api/sessions	[post]
// @Produce json
// @param StartSession body StartSessionRequest true "StartSession"
func (hdl *HTTPHandler) StartSession(c *fiber.Ctx) error {
	var request StartSessionRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	session, err := hdl.interviews.StartSession(c.UserContext(), domain.StartSessionRequest{
		CandidateID:   request.CandidateID,
		JobRole:       request.JobRole,
		InterviewType: domain.InterviewType(request.InterviewType),
		InterviewMode: domain.InterviewMode(request.InterviewMode),
		Difficulty:    domain.Difficulty(request.Difficulty),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ResponseBody{Status: Created, Data: session})
}

// GetSession godoc
// @Summary Get interview session
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}	[get]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) GetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return respondError(c, err)
	}
	session, err := hdl.interviews.GetSession(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: session})
}

// NextQuestion godoc
// @Summary Next question
// @Description A question not yet asked in the session
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/questions	[post]
// @Produce json
// @param id path string true "uuid"
// @param NextQuestion body NextQuestionRequest false "NextQuestion"
func (hdl *HTTPHandler) NextQuestion(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return respondError(c, err)
	}
	var request NextQuestionRequest
	if len(c.Body()) > 0 {
		if err := hdl.bind(c, &request); err != nil {
			return respondError(c, err)
		}
	}
	question, err := hdl.interviews.NextQuestion(c.UserContext(), id, request.UserProfile.toDomain())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: QuestionResponse{Question: question}})
}

// SubmitAnswer godoc
// @Summary Submit answer
// @Description Evaluates, analyzes and records one answer
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/answers	[post]
// @Produce json
// @param id path string true "uuid"
// @param SubmitAnswer body SubmitAnswerRequest true "SubmitAnswer"
func (hdl *HTTPHandler) SubmitAnswer(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return respondError(c, err)
	}
	var request SubmitAnswerRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	record, err := hdl.interviews.SubmitAnswer(c.UserContext(), id, domain.SubmitAnswerRequest{
		Question:        request.Question,
		Answer:          request.Answer,
		DurationSeconds: request.DurationSeconds,
		Speech:          request.Speech.toDomain(),
		Visual:          request.Visual.toDomain(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: record})
}

// RecordAnswer godoc
// @Summary Record evaluated answer
// @Description Fuses an externally produced evaluation with speech and visual metrics
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/record	[post]
// @Produce json
// @param id path string true "uuid"
// @param RecordAnswer body RecordAnswerRequest true "RecordAnswer"
func (hdl *HTTPHandler) RecordAnswer(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return respondError(c, err)
	}
	var request RecordAnswerRequest
	if err := hdl.bind(c, &request); err != nil {
		return respondError(c, err)
	}
	record, err := hdl.interviews.RecordAnswer(c.UserContext(), id, domain.RecordAnswerInput{
		Question: request.Question,
		Answer:   request.Answer,
		ContentEval: domain.Evaluation{
			ContentScore:     request.ContentEval.Score,
			Feedback:         request.ContentEval.Feedback,
			Strengths:        request.ContentEval.Strengths,
			Improvements:     request.ContentEval.Improvements,
			DetailedAnalysis: request.ContentEval.DetailedAnalysis.Clamp(),
		},
		DurationSeconds: request.DurationSeconds,
		Speech:          request.Speech.toDomain(),
		Visual:          request.Visual.toDomain(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: record})
}

// CompleteSession godoc
// @Summary Complete interview session
// @Description Computes the overall score and closing feedback
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /v1/api/sessions/{id}/complete	[post]
// @Produce json
// @param id path string true "uuid"
func (hdl *HTTPHandler) CompleteSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return respondError(c, err)
	}
	session, err := hdl.interviews.Complete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: session})
}
