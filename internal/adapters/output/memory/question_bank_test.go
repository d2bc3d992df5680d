package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mock-interview/internal/domain"
)

func TestQuestionBankFindFilters(t *testing.T) {
	bank := NewQuestionBank([]domain.BankQuestion{
		{Category: "Coding", Difficulty: domain.DifficultyBeginner, Text: "palindrome"},
		{Category: "Coding", Difficulty: domain.DifficultyExpert, Text: "lru cache"},
		{Category: "HR", Difficulty: domain.DifficultyBeginner, Text: "why us"},
	})
	ctx := context.Background()
	beginner := domain.DifficultyBeginner

	q, ok, err := bank.Find(ctx, "Coding", &beginner, nil)
	if err != nil || !ok || q != "palindrome" {
		t.Errorf("expected palindrome, got %q ok=%v err=%v", q, ok, err)
	}

	q, ok, _ = bank.Find(ctx, "coding", nil, map[string]struct{}{"palindrome": {}})
	if !ok || q != "lru cache" {
		t.Errorf("expected case-insensitive category match without difficulty, got %q", q)
	}

	q, ok, _ = bank.Find(ctx, "", nil, map[string]struct{}{"palindrome": {}, "lru cache": {}})
	if !ok || q != "why us" {
		t.Errorf("expected any-category match, got %q", q)
	}

	_, ok, _ = bank.Find(ctx, "", nil, map[string]struct{}{"palindrome": {}, "lru cache": {}, "why us": {}})
	if ok {
		t.Error("expected no match when everything is excluded")
	}
}

func TestLoadQuestionBankFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	content := `questions:
  - category: Coding
    difficulty: Beginner
    text: "  Reverse a string.  "
  - category: Coding
    difficulty: Beginner
    text: ""
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	bank, err := LoadQuestionBank(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(bank.questions) != 1 || bank.questions[0].Text != "Reverse a string." {
		t.Errorf("unexpected questions: %+v", bank.questions)
	}
}

func TestLoadQuestionBankDefaults(t *testing.T) {
	bank, err := LoadQuestionBank("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(bank.questions) != len(DefaultQuestions()) {
		t.Errorf("expected built-in questions, got %d", len(bank.questions))
	}
}
