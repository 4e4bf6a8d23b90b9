// Package categories provides database operations for category and
// subcategory management.
package categories

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

// Repository handles all category database operations.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// GetAll returns all categories ordered by name with their subcategories.
// On read failure it logs and returns an empty list instead of an error:
// the category list is non-critical and the UI must stay responsive. Write
// paths never get this treatment.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Category, error) {
	var cats []entities.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories").
		Order("name ASC").
		Find(&cats).Error
	if err != nil {
		r.logger.Warn("failed to load categories, returning empty list", "error", err)
		return []entities.Category{}, nil
	}
	return cats, nil
}

// GetByID returns a single category with its subcategories.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	var cat entities.Category
	err := r.db.WithContext(ctx).Preload("Subcategories").First(&cat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// Upsert inserts or fully replaces a category by primary key. Calling
// twice with identical input leaves the same end state as calling once.
func (r *Repository) Upsert(ctx context.Context, category *entities.Category) error {
	if err := store.ValidateCategory(category); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Omit("Subcategories").
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(category).Error
	return store.WrapWrite("upsert category", err)
}

// UpsertSubcategory inserts or replaces a subcategory by primary key.
func (r *Repository) UpsertSubcategory(ctx context.Context, subcategory *entities.Subcategory) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(subcategory).Error
	return store.WrapWrite("upsert subcategory", err)
}

// GetSubcategories returns the subcategories of one category by name order.
func (r *Repository) GetSubcategories(ctx context.Context, categoryID string) ([]entities.Subcategory, error) {
	var subs []entities.Subcategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subs).Error
	return subs, err
}
