package postgres

import (
	"context"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ output.QuestionBank = (*QuestionBank)(nil)

// QuestionBank struct - Secondary/Driven adapter for the question_bank table
type QuestionBank struct {
	dbGorm *gorm.DB
}

// NewQuestionBank func - Migrates the table and seeds it when it is empty
func NewQuestionBank(dbGorm *gorm.DB, seed []domain.BankQuestion) (*QuestionBank, error) {
	if err := dbGorm.AutoMigrate(&bankQuestionModel{}); err != nil {
		return nil, errors.Wrap(err, "migrate question bank")
	}

	var count int64
	if err := dbGorm.Model(&bankQuestionModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 && len(seed) > 0 {
		rows := make([]bankQuestionModel, 0, len(seed))
		for _, q := range seed {
			rows = append(rows, bankQuestionModel{Category: q.Category, Difficulty: string(q.Difficulty), Text: q.Text})
		}
		if err := dbGorm.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return nil, errors.Wrap(err, "seed question bank")
		}
		logrus.Infof("Seeded question bank with %d questions", len(rows))
	}

	return &QuestionBank{dbGorm: dbGorm}, nil
}

// Find func - Picks a random matching question that is not excluded
func (p *QuestionBank) Find(ctx context.Context, category string, difficulty *domain.Difficulty, excluding map[string]struct{}) (string, bool, error) {
	query := p.dbGorm.WithContext(ctx).Model(&bankQuestionModel{})
	if category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if difficulty != nil {
		query = query.Where("difficulty = ?", string(*difficulty))
	}
	if len(excluding) > 0 {
		texts := make([]string, 0, len(excluding))
		for text := range excluding {
			texts = append(texts, text)
		}
		query = query.Where("text NOT IN ?", texts)
	}

	var row bankQuestionModel
	err := query.Order("random()").Limit(1).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		logrus.Errorln(err)
		return "", false, errors.Wrap(err, "select bank question")
	}
	return row.Text, true, nil
}
