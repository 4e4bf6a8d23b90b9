// Package users provides database operations for the device user and the
// per-category progress rows keyed by (user, category).
package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

// Repository handles all user and progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns its id, generating one when the
// caller left it empty.
func (r *Repository) Create(ctx context.Context, user *entities.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return "", store.WrapWrite("create user", err)
	}
	return user.ID, nil
}

// GetByID returns one user.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update replaces all fields of an existing user.
func (r *Repository) Update(ctx context.Context, user *entities.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	return store.WrapWrite("update user", err)
}

// GetProgress returns all per-category progress rows for a user.
func (r *Repository) GetProgress(ctx context.Context, userID string) ([]entities.UserProgress, error) {
	var progress []entities.UserProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category_id ASC").
		Find(&progress).Error
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// UpsertProgress inserts or replaces the progress row for the composite
// (user, category) key. Progress rows are never deleted.
func (r *Repository) UpsertProgress(ctx context.Context, progress *entities.UserProgress) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(progress).Error
	return store.WrapWrite("upsert progress", err)
}
