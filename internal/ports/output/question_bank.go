package output

import (
	"context"

	"mock-interview/internal/domain"
)

// QuestionBank interface - Output port for canned questions.
type QuestionBank interface {
	// Find returns one question of the category whose text is not in excluding.
	// An empty category matches every category, a nil difficulty every difficulty.
	// ok is false when nothing matches.
	Find(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (question string, ok bool, err error)
}
