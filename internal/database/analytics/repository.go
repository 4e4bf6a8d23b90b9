// Package analytics provides database operations for the per-user daily
// study rollups.
package analytics

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

// Repository handles all analytics database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RecordDaily upserts the rollup keyed by (userID, today). Re-invoking on
// the same day replaces the row; callers wanting incremental totals must
// read-modify-write.
func (r *Repository) RecordDaily(ctx context.Context, userID string, stats entities.DailyStats) error {
	row := entities.DailyAnalytics{
		UserID:             userID,
		Day:                datatypes.Date(time.Now().UTC()),
		StudyTime:          stats.StudyTime,
		QuestionsAttempted: stats.QuestionsAttempted,
		QuestionsCorrect:   stats.QuestionsCorrect,
		CategoriesStudied:  stats.CategoriesStudied,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	return store.WrapWrite("record daily analytics", err)
}

// Weekly aggregates the trailing seven days, today included.
func (r *Repository) Weekly(ctx context.Context, userID string) (*entities.WeeklyStats, error) {
	since := datatypes.Date(time.Now().UTC().AddDate(0, 0, -6))

	var rows []entities.DailyAnalytics
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day >= ?", userID, since).
		Order("day ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &entities.WeeklyStats{DaysStudied: len(rows)}
	for _, row := range rows {
		stats.TotalStudyTime += row.StudyTime
		stats.QuestionsAttempted += row.QuestionsAttempted
		stats.QuestionsCorrect += row.QuestionsCorrect
	}
	if stats.QuestionsAttempted > 0 {
		stats.AverageScore = float64(stats.QuestionsCorrect) / float64(stats.QuestionsAttempted) * 100
	}
	return stats, nil
}
