package output

import "mock-interview/internal/domain"

// QuestionCache interface - Output port
// Buckets of generated questions keyed by job role, interview type and difficulty.
// Readers never observe a partially written bucket.
type QuestionCache interface {
	// Candidates returns a snapshot of the bucket
	Candidates(key string) []string
	// Add appends question to the bucket unless it is already present
	Add(key, question string)
}

// FeedbackCache interface - Output port
// Overall feedback keyed by job role, interview type and score decile.
type FeedbackCache interface {
	Get(key string) (domain.OverallFeedback, bool)
	Set(key string, feedback domain.OverallFeedback)
}
