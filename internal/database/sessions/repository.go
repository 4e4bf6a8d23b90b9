// Package sessions provides database operations for test sessions and
// their per-question answer rows.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

// Repository handles all test session database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create writes the session row and seeds one test_questions row per
// question with empty answer fields, all in one transaction. Returns the
// session id, generating one when the caller left it empty.
func (r *Repository) Create(ctx context.Context, session *entities.TestSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.StartTime.IsZero() {
		session.StartTime = time.Now().UTC()
	}
	session.Completed = false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *session
		row.Questions = nil
		if err := tx.Omit("Questions").Create(&row).Error; err != nil {
			return err
		}
		for _, q := range session.Questions {
			seed := entities.TestQuestion{
				SessionID:  session.ID,
				QuestionID: q.QuestionID,
			}
			if err := tx.Create(&seed).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", store.WrapWrite("create test session", err)
	}
	return session.ID, nil
}

// GetByID returns one session with its answer rows.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.TestSession, error) {
	var session entities.TestSession
	err := r.db.WithContext(ctx).
		Preload("Questions").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetForUser returns a user's sessions, most recent first.
func (r *Repository) GetForUser(ctx context.Context, userID string) ([]entities.TestSession, error) {
	var sessions []entities.TestSession
	err := r.db.WithContext(ctx).
		Preload("Questions").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&sessions).Error
	return sessions, err
}

// Update applies only the non-nil fields of the patch, leaving everything
// else untouched. An empty patch is a no-op.
func (r *Repository) Update(ctx context.Context, id string, update store.SessionUpdate) error {
	fields := map[string]any{}
	if update.EndTime != nil {
		fields["end_time"] = *update.EndTime
	}
	if update.Duration != nil {
		fields["duration"] = *update.Duration
	}
	if update.CorrectAnswers != nil {
		fields["correct_answers"] = *update.CorrectAnswers
	}
	if update.Score != nil {
		fields["score"] = *update.Score
	}
	if update.Completed != nil {
		fields["completed"] = *update.Completed
	}
	if update.TimedOut != nil {
		fields["timed_out"] = *update.TimedOut
	}
	if len(fields) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&entities.TestSession{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return store.WrapWrite("update test session", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpdateAnswer upserts the single answer row for (sessionID, questionID).
// A second call with a different answer replaces the first; nothing
// accumulates. Session-level aggregates are deliberately left to the
// caller. An unknown session fails with ErrNotFound rather than leaving
// an orphan answer row.
func (r *Repository) UpdateAnswer(ctx context.Context, sessionID, questionID string, answer entities.TestQuestion) error {
	answer.SessionID = sessionID
	answer.QuestionID = questionID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.TestSession{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&answer).Error
	})
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound
	}
	return store.WrapWrite("update test answer", err)
}
