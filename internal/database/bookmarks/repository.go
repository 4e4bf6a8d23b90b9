// Package bookmarks provides database operations for per-user question
// bookmarks. A bookmark row's presence is the bookmarked state.
package bookmarks

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle flips the bookmark for (userID, questionID) and returns the state
// after the call. Check and flip run in one transaction so rapid repeated
// calls stay consistent; two toggles always restore the original state.
func (r *Repository) Toggle(ctx context.Context, userID, questionID string) (bool, error) {
	var bookmarked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Bookmark
		err := tx.First(&existing, "user_id = ? AND question_id = ?", userID, questionID).Error
		switch {
		case err == nil:
			bookmarked = false
			return tx.Delete(&entities.Bookmark{}, "user_id = ? AND question_id = ?", userID, questionID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			bookmarked = true
			return tx.Create(&entities.Bookmark{
				UserID:     userID,
				QuestionID: questionID,
				CreatedAt:  time.Now().UTC(),
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, store.WrapWrite("toggle bookmark", err)
	}
	return bookmarked, nil
}

// IsBookmarked reports whether the question is bookmarked for the user.
func (r *Repository) IsBookmarked(ctx context.Context, userID, questionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Bookmark{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count).Error
	return count > 0, err
}

// QuestionIDs returns the user's bookmarked question ids, newest first.
func (r *Repository) QuestionIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&entities.Bookmark{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("question_id", &ids).Error
	return ids, err
}
