package memory

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var _ output.QuestionBank = (*QuestionBank)(nil)

type bankFile struct {
	Questions []domain.BankQuestion `yaml:"questions"`
}

// QuestionBank struct - Read-only in-memory question bank
type QuestionBank struct {
	questions []domain.BankQuestion
	pick      func(n int) int
}

// NewQuestionBank func - Creates a bank over the given questions
func NewQuestionBank(questions []domain.BankQuestion) *QuestionBank {
	return &QuestionBank{
		questions: append([]domain.BankQuestion{}, questions...),
		pick:      rand.Intn,
	}
}

// LoadQuestionBank func - Reads a YAML question bank; an empty path loads the built-in set
func LoadQuestionBank(path string) (*QuestionBank, error) {
	if path == "" {
		return NewQuestionBank(DefaultQuestions()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse question bank %s: %w", path, err)
	}

	valid := make([]domain.BankQuestion, 0, len(file.Questions))
	for i, q := range file.Questions {
		if strings.TrimSpace(q.Text) == "" || q.Category == "" {
			logrus.Warnf("Skipping question bank entry %d: category and text are required", i)
			continue
		}
		q.Text = strings.TrimSpace(q.Text)
		valid = append(valid, q)
	}
	logrus.Infof("Loaded %d questions from %s", len(valid), path)
	return NewQuestionBank(valid), nil
}

// Questions returns a copy of every loaded entry
func (b *QuestionBank) Questions() []domain.BankQuestion {
	return append([]domain.BankQuestion{}, b.questions...)
}

// Find returns a random question matching category and difficulty that is not excluded.
func (b *QuestionBank) Find(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	matches := make([]string, 0)
	for _, q := range b.questions {
		if category != "" && !strings.EqualFold(q.Category, category) {
			continue
		}
		if difficulty != nil && q.Difficulty != *difficulty {
			continue
		}
		if _, used := excluding[q.Text]; used {
			continue
		}
		matches = append(matches, q.Text)
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	return matches[b.pick(len(matches))], true, nil
}

// DefaultQuestions is the built-in bank used when no file is configured.
func DefaultQuestions() []domain.BankQuestion {
	return []domain.BankQuestion{
		{Category: "Technical", Difficulty: domain.DifficultyBeginner, Text: "What is the difference between a process and a thread?"},
		{Category: "Technical", Difficulty: domain.DifficultyBeginner, Text: "Explain what a REST API is and how HTTP methods map to operations."},
		{Category: "Technical", Difficulty: domain.DifficultyIntermediate, Text: "How would you find and fix a memory leak in a long running service?"},
		{Category: "Technical", Difficulty: domain.DifficultyIntermediate, Text: "Explain how database indexes work and when they hurt performance."},
		{Category: "Technical", Difficulty: domain.DifficultyExpert, Text: "How do you guarantee exactly-once processing in a distributed message pipeline?"},
		{Category: "Behavioral", Difficulty: domain.DifficultyBeginner, Text: "Tell me about a time you had to learn something new quickly."},
		{Category: "Behavioral", Difficulty: domain.DifficultyIntermediate, Text: "Describe a disagreement with a teammate and how you resolved it."},
		{Category: "Behavioral", Difficulty: domain.DifficultyExpert, Text: "Tell me about a project that failed and what you changed afterwards."},
		{Category: "HR", Difficulty: domain.DifficultyBeginner, Text: "Why are you interested in this role?"},
		{Category: "HR", Difficulty: domain.DifficultyIntermediate, Text: "Where do you see yourself in five years?"},
		{Category: "SystemDesign", Difficulty: domain.DifficultyIntermediate, Text: "Design a URL shortener that handles 1,000 writes per second."},
		{Category: "SystemDesign", Difficulty: domain.DifficultyExpert, Text: "Design a real-time chat system for ten million concurrent users."},
		{Category: "Coding", Difficulty: domain.DifficultyBeginner, Text: "Write a function isPalindrome(s) that returns true when s reads the same backwards."},
		{Category: "Coding", Difficulty: domain.DifficultyIntermediate, Text: "Write a function twoSum(nums, target) that returns the indices of the two numbers adding up to target."},
		{Category: "Coding", Difficulty: domain.DifficultyExpert, Text: "Write a function longestSubstring(s) that returns the length of the longest substring without repeating characters."},
	}
}
