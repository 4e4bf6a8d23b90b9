// Package questions provides database operations for the question bank.
//
// Questions carry their options as an exclusively-owned child set. Display
// order is stored in option_order and honored on every read; it is never
// inferred from option ids or insertion time.
package questions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

// difficultyOrder sorts easy before medium before hard; alphabetical order
// would interleave them. Ties keep insertion order via rowid.
const difficultyOrder = "CASE difficulty WHEN 'easy' THEN 0 WHEN 'medium' THEN 1 WHEN 'hard' THEN 2 ELSE 3 END, rowid ASC"

// Repository handles all question database operations.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRepository creates a new questions repository.
func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

func preloadOptions(db *gorm.DB) *gorm.DB {
	return db.Order("option_order ASC")
}

// Upsert inserts or replaces a question and its full option set in one
// transaction. Options are replaced, not merged: supplying a question with
// an altered option list leaves exactly the new set persisted, no orphans.
func (r *Repository) Upsert(ctx context.Context, question *entities.Question) error {
	if err := store.ValidateQuestion(question); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *question
		row.Options = nil
		if err := tx.Omit("Options").Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&entities.Option{}).Error; err != nil {
			return err
		}
		for i := range question.Options {
			opt := question.Options[i]
			opt.QuestionID = question.ID
			opt.OptionOrder = i
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return store.WrapWrite("upsert question", err)
}

// GetByID returns one question with options in persisted order.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	var q entities.Question
	err := r.db.WithContext(ctx).
		Preload("Options", preloadOptions).
		First(&q, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// GetByCategory returns a category's questions ordered easy to hard, ties
// in insertion order, each with options attached in persisted order. A
// non-positive limit returns all matches.
func (r *Repository) GetByCategory(ctx context.Context, categoryID string, limit int) ([]entities.Question, error) {
	query := r.db.WithContext(ctx).
		Preload("Options", preloadOptions).
		Where("category_id = ?", categoryID).
		Order(difficultyOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var qs []entities.Question
	err := query.Find(&qs).Error
	return qs, err
}

// GetAll returns the whole bank grouped by category then difficulty. Like
// the category list this read degrades to an empty slice on failure.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Question, error) {
	var qs []entities.Question
	err := r.db.WithContext(ctx).
		Preload("Options", preloadOptions).
		Order("category_id ASC").
		Order(difficultyOrder).
		Find(&qs).Error
	if err != nil {
		r.logger.Warn("failed to load question bank, returning empty list", "error", err)
		return []entities.Question{}, nil
	}
	return qs, nil
}

// Search matches a substring against question text, explanation and tags,
// newest first.
func (r *Repository) Search(ctx context.Context, query string) ([]entities.Question, error) {
	pattern := "%" + query + "%"
	var qs []entities.Question
	err := r.db.WithContext(ctx).
		Preload("Options", preloadOptions).
		Where("question LIKE ? OR explanation LIKE ? OR tags LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&qs).Error
	return qs, err
}

// GetRandom draws min(limit, total) distinct questions without
// replacement.
func (r *Repository) GetRandom(ctx context.Context, limit int) ([]entities.Question, error) {
	if limit <= 0 {
		return []entities.Question{}, nil
	}
	var qs []entities.Question
	err := r.db.WithContext(ctx).
		Preload("Options", preloadOptions).
		Order("RANDOM()").
		Limit(limit).
		Find(&qs).Error
	return qs, err
}

// RecordResult folds one answer into the question's running statistics.
// The running average is recomputed in a single UPDATE so all expressions
// see the pre-increment counters.
func (r *Repository) RecordResult(ctx context.Context, questionID string, correct bool, timeSpent int) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&entities.Question{}).
		Where("id = ?", questionID).
		Updates(map[string]any{
			"times_answered": gorm.Expr("times_answered + 1"),
			"times_correct":  gorm.Expr("times_correct + ?", boolToInt(correct)),
			"average_time":   gorm.Expr("(average_time * times_answered + ?) / (times_answered + 1)", float64(timeSpent)),
			"last_seen":      now,
		})
	if res.Error != nil {
		return store.WrapWrite("record question result", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
