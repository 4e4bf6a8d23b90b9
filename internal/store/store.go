// Package store defines the backend-agnostic persistence surface of the
// application and its error taxonomy.
//
// Two implementations exist: the relational sqlite backend in
// internal/database and the redis key-value backend in internal/kvstore.
// They are interchangeable from the caller's perspective; the backend is
// selected once at startup.
package store

import (
	"context"
	"time"

	"github.com/ndtprep/examtrainer/internal/entities"
)

// SessionUpdate is a partial patch of a test session. Only non-nil fields
// are applied; everything else is left untouched.
type SessionUpdate struct {
	EndTime        *time.Time `json:"end_time,omitempty"`
	Duration       *int       `json:"duration,omitempty"`
	CorrectAnswers *int       `json:"correct_answers,omitempty"`
	Score          *float64   `json:"score,omitempty"`
	Completed      *bool      `json:"completed,omitempty"`
	TimedOut       *bool      `json:"timed_out,omitempty"`
}

// Store is the sole access point to persisted entities. Every method
// returns ErrNotInitialized when called before a successful Open, and
// write failures are wrapped in *WriteError.
//
// Two documented read conveniences degrade instead of failing: Categories
// and AllQuestions return an empty slice and log on I/O error, keeping the
// caller responsive when those non-critical lists cannot be loaded.
type Store interface {
	// Lifecycle. Open is idempotent to call on every start; Close releases
	// the underlying handle.
	Open(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Categories.
	Categories(ctx context.Context) ([]entities.Category, error)
	CategoryByID(ctx context.Context, id string) (*entities.Category, error)
	UpsertCategory(ctx context.Context, category *entities.Category) error
	UpsertSubcategory(ctx context.Context, subcategory *entities.Subcategory) error
	SubcategoriesByCategory(ctx context.Context, categoryID string) ([]entities.Subcategory, error)

	// Questions. UpsertQuestion replaces the full option set of an existing
	// question; it never merges.
	UpsertQuestion(ctx context.Context, question *entities.Question) error
	QuestionByID(ctx context.Context, id string) (*entities.Question, error)
	QuestionsByCategory(ctx context.Context, categoryID string, limit int) ([]entities.Question, error)
	AllQuestions(ctx context.Context) ([]entities.Question, error)
	SearchQuestions(ctx context.Context, query string) ([]entities.Question, error)
	RandomQuestions(ctx context.Context, limit int) ([]entities.Question, error)
	RecordQuestionResult(ctx context.Context, questionID string, correct bool, timeSpent int) error

	// Users and per-category progress.
	CreateUser(ctx context.Context, user *entities.User) (string, error)
	UserByID(ctx context.Context, id string) (*entities.User, error)
	UpdateUser(ctx context.Context, user *entities.User) error
	ProgressForUser(ctx context.Context, userID string) ([]entities.UserProgress, error)
	UpsertProgress(ctx context.Context, progress *entities.UserProgress) error

	// Test sessions. CreateSession seeds one TestQuestion row per question
	// with empty answer fields. UpdateAnswer upserts a single answer row by
	// (sessionID, questionID) and never touches session-level aggregates.
	CreateSession(ctx context.Context, session *entities.TestSession) (string, error)
	SessionByID(ctx context.Context, id string) (*entities.TestSession, error)
	SessionsForUser(ctx context.Context, userID string) ([]entities.TestSession, error)
	UpdateSession(ctx context.Context, id string, update SessionUpdate) error
	UpdateAnswer(ctx context.Context, sessionID, questionID string, answer entities.TestQuestion) error

	// Bookmarks. ToggleBookmark is an involution: two calls restore the
	// original state. The returned bool is the state after the call.
	ToggleBookmark(ctx context.Context, userID, questionID string) (bool, error)
	IsBookmarked(ctx context.Context, userID, questionID string) (bool, error)
	BookmarkedQuestions(ctx context.Context, userID string) ([]entities.Question, error)

	// Daily analytics. Recording twice on the same calendar day replaces
	// the rollup; callers wanting accumulation must read-modify-write.
	RecordDailyStats(ctx context.Context, userID string, stats entities.DailyStats) error
	WeeklyStats(ctx context.Context, userID string) (*entities.WeeklyStats, error)
}
