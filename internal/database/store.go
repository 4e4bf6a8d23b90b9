package database

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ndtprep/examtrainer/internal/database/analytics"
	"github.com/ndtprep/examtrainer/internal/database/bookmarks"
	"github.com/ndtprep/examtrainer/internal/database/categories"
	"github.com/ndtprep/examtrainer/internal/database/questions"
	"github.com/ndtprep/examtrainer/internal/database/sessions"
	"github.com/ndtprep/examtrainer/internal/database/users"
	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

// Store implements store.Store on the embedded sqlite database by
// delegating to the per-entity repositories. The zero value is unopened;
// every operation before Open fails with store.ErrNotInitialized.
type Store struct {
	path   string
	logger *slog.Logger

	db         *Database
	categories *categories.Repository
	questions  *questions.Repository
	users      *users.Repository
	sessions   *sessions.Repository
	bookmarks  *bookmarks.Repository
	analytics  *analytics.Repository
}

var _ store.Store = (*Store)(nil)

// NewStore returns an unopened sqlite-backed store for the given file path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Open creates or opens the database file and migrates the schema.
// Idempotent; reopening an open store is a no-op.
func (s *Store) Open(_ context.Context) error {
	if s.db != nil {
		return nil
	}
	db, err := Open(s.path, s.logger)
	if err != nil {
		return &store.InitError{Backend: "sqlite", Err: err}
	}
	s.db = db
	s.categories = categories.NewRepository(db.DB, s.logger)
	s.questions = questions.NewRepository(db.DB, s.logger)
	s.users = users.NewRepository(db.DB)
	s.sessions = sessions.NewRepository(db.DB)
	s.bookmarks = bookmarks.NewRepository(db.DB)
	s.analytics = analytics.NewRepository(db.DB)
	return nil
}

// Close releases the sqlite handle. The store can be reopened afterwards.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Ping verifies the underlying connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	sqlDB, err := s.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) ready() error {
	if s.db == nil {
		return store.ErrNotInitialized
	}
	return nil
}

func (s *Store) Categories(ctx context.Context) ([]entities.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.categories.GetAll(ctx)
}

func (s *Store) CategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.categories.GetByID(ctx, id)
}

func (s *Store) UpsertCategory(ctx context.Context, category *entities.Category) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.categories.Upsert(ctx, category)
}

func (s *Store) UpsertSubcategory(ctx context.Context, subcategory *entities.Subcategory) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.categories.UpsertSubcategory(ctx, subcategory)
}

func (s *Store) SubcategoriesByCategory(ctx context.Context, categoryID string) ([]entities.Subcategory, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.categories.GetSubcategories(ctx, categoryID)
}

func (s *Store) UpsertQuestion(ctx context.Context, question *entities.Question) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.questions.Upsert(ctx, question)
}

func (s *Store) QuestionByID(ctx context.Context, id string) (*entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.questions.GetByID(ctx, id)
}

func (s *Store) QuestionsByCategory(ctx context.Context, categoryID string, limit int) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.questions.GetByCategory(ctx, categoryID, limit)
}

func (s *Store) AllQuestions(ctx context.Context) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.questions.GetAll(ctx)
}

func (s *Store) SearchQuestions(ctx context.Context, query string) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.questions.Search(ctx, query)
}

func (s *Store) RandomQuestions(ctx context.Context, limit int) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.questions.GetRandom(ctx, limit)
}

func (s *Store) RecordQuestionResult(ctx context.Context, questionID string, correct bool, timeSpent int) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.questions.RecordResult(ctx, questionID, correct, timeSpent)
}

func (s *Store) CreateUser(ctx context.Context, user *entities.User) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.users.Create(ctx, user)
}

func (s *Store) UserByID(ctx context.Context, id string) (*entities.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *Store) UpdateUser(ctx context.Context, user *entities.User) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.users.Update(ctx, user)
}

func (s *Store) ProgressForUser(ctx context.Context, userID string) ([]entities.UserProgress, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.users.GetProgress(ctx, userID)
}

func (s *Store) UpsertProgress(ctx context.Context, progress *entities.UserProgress) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.users.UpsertProgress(ctx, progress)
}

func (s *Store) CreateSession(ctx context.Context, session *entities.TestSession) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.sessions.Create(ctx, session)
}

func (s *Store) SessionByID(ctx context.Context, id string) (*entities.TestSession, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, id)
}

func (s *Store) SessionsForUser(ctx context.Context, userID string) ([]entities.TestSession, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.sessions.GetForUser(ctx, userID)
}

func (s *Store) UpdateSession(ctx context.Context, id string, update store.SessionUpdate) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.sessions.Update(ctx, id, update)
}

func (s *Store) UpdateAnswer(ctx context.Context, sessionID, questionID string, answer entities.TestQuestion) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.sessions.UpdateAnswer(ctx, sessionID, questionID, answer)
}

func (s *Store) ToggleBookmark(ctx context.Context, userID, questionID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.bookmarks.Toggle(ctx, userID, questionID)
}

func (s *Store) IsBookmarked(ctx context.Context, userID, questionID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.bookmarks.IsBookmarked(ctx, userID, questionID)
}

// BookmarkedQuestions resolves the user's bookmark rows to full questions,
// each flagged IsBookmarked, preserving bookmark recency order.
func (s *Store) BookmarkedQuestions(ctx context.Context, userID string) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	ids, err := s.bookmarks.QuestionIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]entities.Question, 0, len(ids))
	for _, id := range ids {
		q, err := s.questions.GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		q.IsBookmarked = true
		result = append(result, *q)
	}
	return result, nil
}

func (s *Store) RecordDailyStats(ctx context.Context, userID string, stats entities.DailyStats) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.analytics.RecordDaily(ctx, userID, stats)
}

func (s *Store) WeeklyStats(ctx context.Context, userID string) (*entities.WeeklyStats, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.analytics.Weekly(ctx, userID)
}
