package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"mock-interview/configs"
	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
)

var _ output.TextGenerator = (*CompatibleClientAdapter)(nil)

// Error codes OpenAI-compatible servers use for rate limiting and quota exhaustion
var transientErrorCodes = map[string]struct{}{
	"rate_limit_exceeded": {},
	"insufficient_quota":  {},
	"quota_exceeded":      {},
}

// CompatibleClientAdapter struct - Output adapter for any OpenAI-compatible chat API
// (LM Studio, vLLM, Ollama, hosted gateways)
type CompatibleClientAdapter struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	configModel string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	now         func() time.Time

	// Model caching
	cachedModel string
	modelMu     sync.RWMutex
}

// NewCompatibleClientAdapter func - Creates new OpenAI-compatible client adapter
func NewCompatibleClientAdapter(config configs.LLM) (*CompatibleClientAdapter, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:1234"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	adapter := &CompatibleClientAdapter{
		httpClient:  httpClient,
		baseURL:     baseURL,
		apiKey:      config.APIKey,
		configModel: config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		timeout:     timeout,
		now:         time.Now,
	}

	logrus.Infof("OpenAI-compatible client adapter initialized with base URL: %s, timeout: %v", baseURL, timeout)

	return adapter, nil
}

// Generate sends one chat completion request. It makes exactly one attempt;
// the orchestrator owns retrying.
func (a *CompatibleClientAdapter) Generate(ctx context.Context, request domain.GenerationRequest) (string, error) {
	model, err := a.getModel(ctx)
	if err != nil {
		return "", err
	}

	reqBody := chatCompletionAPIRequest{
		Model:    model,
		Messages: make([]chatMessageAPI, 0, 2),
		Stream:   false,
	}
	if request.SystemPrompt != "" {
		reqBody.Messages = append(reqBody.Messages, chatMessageAPI{Role: string(domain.ChatMessageRoleSystem), Content: request.SystemPrompt})
	}
	reqBody.Messages = append(reqBody.Messages, chatMessageAPI{Role: string(domain.ChatMessageRoleUser), Content: request.Prompt})
	if a.temperature > 0 {
		temperature := a.temperature
		reqBody.Temperature = &temperature
	}
	if a.maxTokens > 0 {
		reqBody.MaxTokens = a.maxTokens
	}
	if request.JSON {
		reqBody.ResponseFormat = &responseFormatAPI{Type: "json_object"}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", domain.NewPermanentError(fmt.Errorf("failed to marshal request: %w", err), 0)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", domain.NewPermanentError(fmt.Errorf("failed to create request: %w", err), 0)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", a.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", a.classifyResponse(resp)
	}

	var apiResp chatCompletionAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", domain.NewPermanentError(fmt.Errorf("failed to parse chat completion response: %w", err), resp.StatusCode)
	}
	if len(apiResp.Choices) == 0 {
		return "", domain.NewPermanentError(errors.New("no choices in response"), resp.StatusCode)
	}

	logrus.Debugf("Chat completion successful, model: %s, tokens: %d", apiResp.Model, apiResp.Usage.TotalTokens)

	return apiResp.Choices[0].Message.Content, nil
}

// classifyTransportError treats every network failure as permanent;
// only rate limiting is worth waiting for.
func (a *CompatibleClientAdapter) classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewPermanentError(fmt.Errorf("request aborted: %w", err), 0)
	}
	return domain.NewPermanentError(fmt.Errorf("failed to send chat completion request: %w", err), 0)
}

// classifyResponse turns a non-2xx response into a ProviderError.
// HTTP 429 and rate-limit/quota error codes are transient, everything else is permanent.
func (a *CompatibleClientAdapter) classifyResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	cause := fmt.Errorf("status %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))

	var apiErr errorEnvelopeAPI
	code := ""
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != nil {
		code = apiErr.Error.code()
		if apiErr.Error.Message != "" {
			cause = fmt.Errorf("status %d - %s", resp.StatusCode, apiErr.Error.Message)
		}
	}

	_, transientCode := transientErrorCodes[code]
	if resp.StatusCode == http.StatusTooManyRequests || transientCode {
		return domain.NewTransientError(cause, resp.StatusCode, parseRetryAfter(resp.Header.Get("Retry-After"), a.now()))
	}
	return domain.NewPermanentError(cause, resp.StatusCode)
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds * float64(time.Second))
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// ListModels queries the /v1/models endpoint
func (a *CompatibleClientAdapter) ListModels(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/v1/models", a.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list models request: %w", err)
	}
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, a.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, a.classifyResponse(resp)
	}

	var modelsResp modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, domain.NewPermanentError(fmt.Errorf("failed to parse models response: %w", err), resp.StatusCode)
	}

	models := make([]string, 0, len(modelsResp.Data))
	for _, m := range modelsResp.Data {
		models = append(models, m.ID)
	}

	logrus.Infof("Listed %d models from LLM server", len(models))

	return models, nil
}

// getModel returns the model to use for requests, with caching
func (a *CompatibleClientAdapter) getModel(ctx context.Context) (string, error) {
	// Fast path: check if model is already cached
	a.modelMu.RLock()
	if a.cachedModel != "" {
		model := a.cachedModel
		a.modelMu.RUnlock()
		return model, nil
	}
	a.modelMu.RUnlock()

	a.modelMu.Lock()
	defer a.modelMu.Unlock()

	// Double-check after acquiring write lock
	if a.cachedModel != "" {
		return a.cachedModel, nil
	}

	if a.configModel != "" {
		a.cachedModel = a.configModel
		logrus.Infof("Using configured model: %s", a.cachedModel)
		return a.cachedModel, nil
	}

	models, err := a.ListModels(ctx)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", domain.NewPermanentError(errors.New("no models available on the LLM server"), 0)
	}

	a.cachedModel = models[0]
	logrus.Infof("Selected first available model: %s", a.cachedModel)

	return a.cachedModel, nil
}

// API request/response structures for the OpenAI-compatible API

type chatMessageAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormatAPI struct {
	Type string `json:"type"`
}

type chatCompletionAPIRequest struct {
	Model          string             `json:"model"`
	Messages       []chatMessageAPI   `json:"messages"`
	Stream         bool               `json:"stream"`
	Temperature    *float64           `json:"temperature,omitempty"`
	MaxTokens      int                `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormatAPI `json:"response_format,omitempty"`
}

type chatCompletionAPIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int            `json:"index"`
		Message chatMessageAPI `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// errorEnvelopeAPI is the {"error": {...}} body of a failed request
type errorEnvelopeAPI struct {
	Error *errorAPI `json:"error"`
}

type errorAPI struct {
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Code    json.RawMessage `json:"code"`
}

// code returns the error code, falling back to the type; servers send the code
// as a string, a number or null.
func (e *errorAPI) code() string {
	var s string
	if len(e.Code) > 0 && json.Unmarshal(e.Code, &s) == nil && s != "" {
		return s
	}
	return e.Type
}

type modelsResponse struct {
	Object string `json:"object"`
	Data   []struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}
