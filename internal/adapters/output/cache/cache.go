package cache

import (
	"sync"
	"time"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"

	gocache "github.com/patrickmn/go-cache"
)

// Default lifetimes used when configuration leaves them at zero
const (
	DefaultTTL             = 12 * time.Hour
	DefaultCleanupInterval = 30 * time.Minute
)

var (
	_ output.QuestionCache = (*QuestionCache)(nil)
	_ output.FeedbackCache = (*FeedbackCache)(nil)
)

func newStore(ttl, cleanup time.Duration) *gocache.Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return gocache.New(ttl, cleanup)
}

// QuestionCache struct - Output adapter holding generated questions per bucket
// Buckets are immutable slices replaced as a whole, so a reader only ever sees
// a complete bucket.
type QuestionCache struct {
	store *gocache.Cache
	// serialises read-modify-write of a bucket
	mu sync.Mutex
}

// NewQuestionCache func - Creates new question cache; entries expire ttl after their last append
func NewQuestionCache(ttl, cleanup time.Duration) *QuestionCache {
	return &QuestionCache{store: newStore(ttl, cleanup)}
}

// Candidates returns the bucket snapshot; callers must not modify it
func (c *QuestionCache) Candidates(key string) []string {
	value, ok := c.store.Get(key)
	if !ok {
		return nil
	}
	bucket, _ := value.([]string)
	return bucket
}

// Add appends question to the bucket unless it is already present
func (c *QuestionCache) Add(key, question string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.Candidates(key)
	for _, q := range current {
		if q == question {
			return
		}
	}
	next := make([]string, len(current), len(current)+1)
	copy(next, current)
	next = append(next, question)
	c.store.SetDefault(key, next)
}

// FeedbackCache struct - Output adapter holding overall feedback per score decile
type FeedbackCache struct {
	store *gocache.Cache
}

// NewFeedbackCache func
func NewFeedbackCache(ttl, cleanup time.Duration) *FeedbackCache {
	return &FeedbackCache{store: newStore(ttl, cleanup)}
}

// Get returns a copy of the cached feedback
func (c *FeedbackCache) Get(key string) (domain.OverallFeedback, bool) {
	value, ok := c.store.Get(key)
	if !ok {
		return domain.OverallFeedback{}, false
	}
	feedback, ok := value.(domain.OverallFeedback)
	if !ok {
		return domain.OverallFeedback{}, false
	}
	return copyFeedback(feedback), true
}

// Set stores a copy of feedback
func (c *FeedbackCache) Set(key string, feedback domain.OverallFeedback) {
	c.store.SetDefault(key, copyFeedback(feedback))
}

func copyFeedback(f domain.OverallFeedback) domain.OverallFeedback {
	return domain.OverallFeedback{
		Strengths:       append([]string{}, f.Strengths...),
		Weaknesses:      append([]string{}, f.Weaknesses...),
		Recommendations: append([]string{}, f.Recommendations...),
		Summary:         f.Summary,
	}
}
