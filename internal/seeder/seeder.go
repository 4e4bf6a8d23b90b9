// Package seeder populates an empty store with the initial category and
// question bank.
package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ndtprep/examtrainer/internal/store"
)

// Seeder loads the static bank through the store's public surface; it has
// no knowledge of the backend behind it.
type Seeder struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a seeder writing through the given store.
func New(st store.Store, logger *slog.Logger) *Seeder {
	return &Seeder{store: st, logger: logger}
}

// Seed populates categories and sample questions. It skips entirely when
// categories already exist. Category ids are stable, so reseeding after a
// partial failure cannot duplicate them; question ids are generated fresh
// each run, so forcing a reseed without clearing first appends duplicate
// question rows. That is accepted behavior, surfaced in the logs rather
// than masked.
func (s *Seeder) Seed(ctx context.Context) error {
	existing, err := s.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("checking existing categories: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("seed skipped, data already present", "categories", len(existing))
		return nil
	}

	for i := range seedCategories {
		cat := seedCategories[i]
		if err := s.store.UpsertCategory(ctx, &cat); err != nil {
			return fmt.Errorf("seeding category %s: %w", cat.ID, err)
		}
	}

	for i := range seedQuestions {
		q := seedQuestions[i]
		q.ID = uuid.NewString()
		if err := s.store.UpsertQuestion(ctx, &q); err != nil {
			return fmt.Errorf("seeding question for %s: %w", q.CategoryID, err)
		}
	}

	s.logger.Info("seed complete",
		"categories", len(seedCategories),
		"questions", len(seedQuestions))
	return nil
}
