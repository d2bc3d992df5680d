package output

import (
	"context"

	"mock-interview/internal/domain"
)

// TextGenerator interface - Output port
// Defines what the application needs from the external LLM service.
// Generate performs exactly one attempt; retrying is the caller's decision.
// Failures are returned as *domain.ProviderError so they can be classified
// as transient (rate-limit/quota, optional retry-after hint) or permanent.
type TextGenerator interface {
	Generate(ctx context.Context, request domain.GenerationRequest) (string, error)
}
