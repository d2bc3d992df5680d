package postgres

import (
	"context"
	"fmt"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/output"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ output.SessionStore = (*SessionStore)(nil)

// SessionStore struct - Secondary/Driven adapter for PostgreSQL
// Appends and completion both lock the session row (SELECT ... FOR UPDATE),
// so concurrent writes to one session serialise.
type SessionStore struct {
	dbGorm *gorm.DB
}

// NewSessionStore func - Creates new PostgreSQL session store and migrates its tables
func NewSessionStore(dbGorm *gorm.DB) (*SessionStore, error) {
	logrus.Info("Migrate database ...")
	if err := dbGorm.AutoMigrate(&sessionModel{}, &questionRecordModel{}); err != nil {
		return nil, errors.Wrap(err, "migrate session tables")
	}
	return &SessionStore{
		dbGorm: dbGorm,
	}, nil
}

// Create func - Inserts a new session
func (p *SessionStore) Create(ctx context.Context, session *domain.InterviewSession) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	model := toSessionModel(session)
	if err := p.dbGorm.WithContext(ctx).Create(&model).Error; err != nil {
		logrus.Errorln(err)
		return errors.Wrap(err, "insert session")
	}
	return nil
}

// Load func - Reads the session and its records in asked order
func (p *SessionStore) Load(ctx context.Context, id string) (*domain.InterviewSession, error) {
	return p.load(p.dbGorm.WithContext(ctx), id)
}

func (p *SessionStore) load(db *gorm.DB, id string) (*domain.InterviewSession, error) {
	var session sessionModel
	if err := db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		logrus.Errorln(err)
		return nil, errors.Wrap(err, "select session")
	}

	var records []questionRecordModel
	if err := db.Where("session_id = ?", id).Order("position ASC").Find(&records).Error; err != nil {
		logrus.Errorln(err)
		return nil, errors.Wrap(err, "select question records")
	}
	return toDomainSession(session, records), nil
}

// AppendQuestionRecord func - Appends one record inside a row-locking transaction
func (p *SessionStore) AppendQuestionRecord(ctx context.Context, id string, record domain.QuestionRecord) error {
	return p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session sessionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
			}
			logrus.Errorln(err)
			return errors.Wrap(err, "lock session")
		}
		if session.Status != string(domain.SessionStatusInProgress) {
			return fmt.Errorf("%w: session %s is %s", domain.ErrInvalidState, id, session.Status)
		}

		var count int64
		if err := tx.Model(&questionRecordModel{}).Where("session_id = ?", id).Count(&count).Error; err != nil {
			logrus.Errorln(err)
			return errors.Wrap(err, "count question records")
		}

		model := toRecordModel(id, int(count), record)
		if err := tx.Create(&model).Error; err != nil {
			logrus.Errorln(err)
			return errors.Wrap(err, "insert question record")
		}
		return nil
	})
}

// Finalize func - Completes the session only if it is still in progress and
// holds exactly the records the overall score was computed from
func (p *SessionStore) Finalize(ctx context.Context, id string, request domain.FinalizeRequest) (*domain.InterviewSession, error) {
	var result *domain.InterviewSession
	err := p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session sessionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
			}
			logrus.Errorln(err)
			return errors.Wrap(err, "lock session")
		}
		if session.Status != string(domain.SessionStatusInProgress) {
			return fmt.Errorf("%w: session %s is %s", domain.ErrInvalidState, id, session.Status)
		}

		var count int64
		if err := tx.Model(&questionRecordModel{}).Where("session_id = ?", id).Count(&count).Error; err != nil {
			logrus.Errorln(err)
			return errors.Wrap(err, "count question records")
		}
		if int(count) != request.ExpectedRecords {
			return fmt.Errorf("%w: session %s has %d answers, completion was scored on %d", domain.ErrInvalidState, id, count, request.ExpectedRecords)
		}

		feedback := request.Feedback
		end := request.EndTime
		update := tx.Model(&sessionModel{}).
			Where("id = ?", id).
			Select("overall_score", "feedback", "duration_seconds", "end_time", "status").
			Updates(&sessionModel{
				OverallScore:    domain.ClampScore(request.OverallScore),
				Feedback:        &feedback,
				DurationSeconds: request.DurationSeconds,
				EndTime:         &end,
				Status:          string(domain.SessionStatusCompleted),
			})
		if update.Error != nil {
			logrus.Errorln(update.Error)
			return errors.Wrap(update.Error, "finalize session")
		}

		loaded, err := p.load(tx, id)
		if err != nil {
			return err
		}
		result = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
