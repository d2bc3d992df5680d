package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mock-interview/configs"
	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const defaultModel = goopenai.GPT4oMini

var _ output.TextGenerator = (*ClientAdapter)(nil)

// ClientAdapter struct - Output adapter for the OpenAI API through the official-style SDK
type ClientAdapter struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewClientAdapter func - Creates new OpenAI client adapter
func NewClientAdapter(config configs.LLM) (*ClientAdapter, error) {
	if config.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 60 * time.Second
	}

	clientConfig := goopenai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	logrus.Infof("OpenAI client adapter initialized with model: %s, timeout: %v", model, timeout)

	return &ClientAdapter{
		client:      goopenai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: float32(config.Temperature),
		maxTokens:   config.MaxTokens,
	}, nil
}

// Generate sends one chat completion request; retrying is the caller's decision.
func (a *ClientAdapter) Generate(ctx context.Context, request domain.GenerationRequest) (string, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if request.SystemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: request.SystemPrompt})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: request.Prompt})

	req := goopenai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}
	if request.JSON {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewPermanentError(errors.New("no choices in response"), 0)
	}

	logrus.Debugf("OpenAI completion successful, model: %s, tokens: %d", resp.Model, resp.Usage.TotalTokens)

	return resp.Choices[0].Message.Content, nil
}

// classifyError maps SDK errors onto provider errors. The SDK does not expose
// response headers, so rate limits carry no retry-after hint.
func classifyError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || isQuotaCode(apiErr.Code) || isQuotaCode(apiErr.Type) {
			return domain.NewTransientError(err, apiErr.HTTPStatusCode, 0)
		}
		return domain.NewPermanentError(err, apiErr.HTTPStatusCode)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domain.NewTransientError(err, reqErr.HTTPStatusCode, 0)
		}
		return domain.NewPermanentError(err, reqErr.HTTPStatusCode)
	}

	return domain.NewPermanentError(fmt.Errorf("openai request failed: %w", err), 0)
}

func isQuotaCode(code any) bool {
	s, ok := code.(string)
	if !ok {
		return false
	}
	switch s {
	case "rate_limit_exceeded", "insufficient_quota", "quota_exceeded":
		return true
	}
	return false
}
