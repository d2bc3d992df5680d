package domain

// ChatMessageRole type
type ChatMessageRole string

const (
	// ChatMessageRoleSystem const
	ChatMessageRoleSystem ChatMessageRole = "system"
	// ChatMessageRoleUser const
	ChatMessageRoleUser ChatMessageRole = "user"
)

// GenerationRequest struct - One prompt sent to the text-generation service.
type GenerationRequest struct {
	SystemPrompt string
	Prompt       string
	// JSON asks the provider for a JSON object response when it supports it
	JSON bool
}
