package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mock-interview/configs"
	"mock-interview/internal/domain"
)

func newTestAdapter(t *testing.T, serverURL string) *ClientAdapter {
	t.Helper()
	adapter, err := NewClientAdapter(configs.LLM{
		BaseURL: serverURL + "/v1",
		APIKey:  "sk-test",
		Model:   "gpt-test",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	return adapter
}

// TestNewClientAdapterRequiresAPIKey tests constructor validation
func TestNewClientAdapterRequiresAPIKey(t *testing.T) {
	if _, err := NewClientAdapter(configs.LLM{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

// TestGenerateSuccess tests a completion round trip through the SDK
func TestGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("expected path /v1/chat/completions, got: %s", r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != "gpt-test" {
			t.Errorf("expected model gpt-test, got: %v", body["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","model":"gpt-test","choices":[{"index":0,"message":{"role":"assistant","content":"Tell me about a conflict you resolved."},"finish_reason":"stop"}],"usage":{"total_tokens":12}}`))
	}))
	defer server.Close()

	text, err := newTestAdapter(t, server.URL).Generate(context.Background(), domain.GenerationRequest{
		SystemPrompt: "system",
		Prompt:       "question please",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if text != "Tell me about a conflict you resolved." {
		t.Errorf("unexpected content: %s", text)
	}
}

// TestGenerateRateLimitIsTransient tests 429 classification
func TestGenerateRateLimitIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`))
	}))
	defer server.Close()

	_, err := newTestAdapter(t, server.URL).Generate(context.Background(), domain.GenerationRequest{Prompt: "hi"})
	if !errors.Is(err, domain.ErrTransientProvider) {
		t.Fatalf("expected transient error, got: %v", err)
	}
}

// TestGenerateBadRequestIsPermanent tests that other API errors are not retried
func TestGenerateBadRequestIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error","code":"model_not_found"}}`))
	}))
	defer server.Close()

	_, err := newTestAdapter(t, server.URL).Generate(context.Background(), domain.GenerationRequest{Prompt: "hi"})
	if !errors.Is(err, domain.ErrPermanentProvider) {
		t.Fatalf("expected permanent error, got: %v", err)
	}
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) && providerErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got: %d", providerErr.StatusCode)
	}
}
