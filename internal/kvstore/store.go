// Package kvstore implements store.Store on redis, one JSON blob per
// logical table under namespaced string keys. Filtering deserializes the
// relevant blob and scans in memory, which is acceptable at question-bank
// scale (hundreds to low thousands of rows).
//
// Multi-key writes are not atomic here; a crash between keys can leave a
// partial write. That is a documented limitation of this backend, not
// something the layer papers over.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

const dayFormat = "2006-01-02"

// Store is the redis-backed implementation of store.Store. The zero value
// is unopened; every operation before Open fails with
// store.ErrNotInitialized.
type Store struct {
	url    string
	ns     string
	logger *slog.Logger
	client *redis.Client
}

var _ store.Store = (*Store)(nil)

// NewStore returns an unopened redis-backed store. All keys are prefixed
// with the given namespace.
func NewStore(url, namespace string, logger *slog.Logger) *Store {
	return &Store{url: url, ns: namespace, logger: logger}
}

// Open connects and pings the redis server. Idempotent.
func (s *Store) Open(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	opt, err := redis.ParseURL(s.url)
	if err != nil {
		return &store.InitError{Backend: "redis", Err: err}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return &store.InitError{Backend: "redis", Err: err}
	}
	s.client = client
	s.logger.Info("key-value store initialized", "namespace", s.ns)
	return nil
}

// Close releases the redis client. The store can be reopened afterwards.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.client.Ping(ctx).Err()
}

func (s *Store) ready() error {
	if s.client == nil {
		return store.ErrNotInitialized
	}
	return nil
}

func (s *Store) key(parts ...string) string {
	return s.ns + ":" + strings.Join(parts, ":")
}

// load reads a JSON blob into dest. A missing key leaves dest untouched
// and returns false.
func (s *Store) load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

// ===== Categories =====

// Categories degrades to an empty list and logs on read failure, like the
// relational backend.
func (s *Store) Categories(ctx context.Context) ([]entities.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cats := []entities.Category{}
	if _, err := s.load(ctx, s.key("categories"), &cats); err != nil {
		s.logger.Warn("failed to load categories, returning empty list", "error", err)
		return []entities.Category{}, nil
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

func (s *Store) CategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cats := []entities.Category{}
	if _, err := s.load(ctx, s.key("categories"), &cats); err != nil {
		return nil, err
	}
	for i := range cats {
		if cats[i].ID == id {
			return &cats[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpsertCategory(ctx context.Context, category *entities.Category) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := store.ValidateCategory(category); err != nil {
		return err
	}
	cats := []entities.Category{}
	if _, err := s.load(ctx, s.key("categories"), &cats); err != nil {
		return store.WrapWrite("upsert category", err)
	}
	replaced := false
	for i := range cats {
		if cats[i].ID == category.ID {
			cats[i] = *category
			replaced = true
			break
		}
	}
	if !replaced {
		cats = append(cats, *category)
	}
	return store.WrapWrite("upsert category", s.save(ctx, s.key("categories"), cats))
}

func (s *Store) UpsertSubcategory(ctx context.Context, subcategory *entities.Subcategory) error {
	if err := s.ready(); err != nil {
		return err
	}
	subs := []entities.Subcategory{}
	if _, err := s.load(ctx, s.key("subcategories"), &subs); err != nil {
		return store.WrapWrite("upsert subcategory", err)
	}
	replaced := false
	for i := range subs {
		if subs[i].ID == subcategory.ID {
			subs[i] = *subcategory
			replaced = true
			break
		}
	}
	if !replaced {
		subs = append(subs, *subcategory)
	}
	return store.WrapWrite("upsert subcategory", s.save(ctx, s.key("subcategories"), subs))
}

func (s *Store) SubcategoriesByCategory(ctx context.Context, categoryID string) ([]entities.Subcategory, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	subs := []entities.Subcategory{}
	if _, err := s.load(ctx, s.key("subcategories"), &subs); err != nil {
		return nil, err
	}
	matched := []entities.Subcategory{}
	for _, sub := range subs {
		if sub.CategoryID == categoryID {
			matched = append(matched, sub)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// ===== Questions =====

func (s *Store) loadQuestions(ctx context.Context) ([]entities.Question, error) {
	qs := []entities.Question{}
	_, err := s.load(ctx, s.key("questions"), &qs)
	return qs, err
}

func (s *Store) UpsertQuestion(ctx context.Context, question *entities.Question) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := store.ValidateQuestion(question); err != nil {
		return err
	}

	// Copy the options before stamping ownership and order so the
	// caller's slice is left untouched.
	q := *question
	q.Options = make([]entities.Option, len(question.Options))
	for i, opt := range question.Options {
		opt.QuestionID = q.ID
		opt.OptionOrder = i
		q.Options[i] = opt
	}

	qs, err := s.loadQuestions(ctx)
	if err != nil {
		return store.WrapWrite("upsert question", err)
	}
	replaced := false
	for i := range qs {
		if qs[i].ID == q.ID {
			qs[i] = q
			replaced = true
			break
		}
	}
	if !replaced {
		qs = append(qs, q)
	}
	return store.WrapWrite("upsert question", s.save(ctx, s.key("questions"), qs))
}

func (s *Store) QuestionByID(ctx context.Context, id string) (*entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	qs, err := s.loadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range qs {
		if qs[i].ID == id {
			return &qs[i], nil
		}
	}
	return nil, store.ErrNotFound
}

var difficultyRank = map[entities.Difficulty]int{
	entities.DifficultyEasy:   0,
	entities.DifficultyMedium: 1,
	entities.DifficultyHard:   2,
}

func (s *Store) QuestionsByCategory(ctx context.Context, categoryID string, limit int) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	qs, err := s.loadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	matched := []entities.Question{}
	for _, q := range qs {
		if q.CategoryID == categoryID {
			matched = append(matched, q)
		}
	}
	// Stable sort keeps insertion order within a difficulty band.
	sort.SliceStable(matched, func(i, j int) bool {
		return difficultyRank[matched[i].Difficulty] < difficultyRank[matched[j].Difficulty]
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// AllQuestions degrades to an empty list and logs on read failure.
func (s *Store) AllQuestions(ctx context.Context) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	qs, err := s.loadQuestions(ctx)
	if err != nil {
		s.logger.Warn("failed to load question bank, returning empty list", "error", err)
		return []entities.Question{}, nil
	}
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].CategoryID != qs[j].CategoryID {
			return qs[i].CategoryID < qs[j].CategoryID
		}
		return difficultyRank[qs[i].Difficulty] < difficultyRank[qs[j].Difficulty]
	})
	return qs, nil
}

func (s *Store) SearchQuestions(ctx context.Context, query string) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	qs, err := s.loadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matched := []entities.Question{}
	for _, q := range qs {
		if strings.Contains(strings.ToLower(q.Question), needle) ||
			strings.Contains(strings.ToLower(q.Explanation), needle) ||
			containsFold(q.Tags, needle) {
			matched = append(matched, q)
		}
	}
	return matched, nil
}

func containsFold(list entities.StringList, needle string) bool {
	for _, item := range list {
		if strings.Contains(strings.ToLower(item), needle) {
			return true
		}
	}
	return false
}

// RandomQuestions draws without replacement, bounded by the bank size.
func (s *Store) RandomQuestions(ctx context.Context, limit int) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []entities.Question{}, nil
	}
	qs, err := s.loadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	if len(qs) > limit {
		qs = qs[:limit]
	}
	return qs, nil
}

func (s *Store) RecordQuestionResult(ctx context.Context, questionID string, correct bool, timeSpent int) error {
	if err := s.ready(); err != nil {
		return err
	}
	qs, err := s.loadQuestions(ctx)
	if err != nil {
		return store.WrapWrite("record question result", err)
	}
	for i := range qs {
		if qs[i].ID != questionID {
			continue
		}
		q := &qs[i]
		q.AverageTime = (q.AverageTime*float64(q.TimesAnswered) + float64(timeSpent)) / float64(q.TimesAnswered+1)
		q.TimesAnswered++
		if correct {
			q.TimesCorrect++
		}
		now := time.Now().UTC()
		q.LastSeen = &now
		return store.WrapWrite("record question result", s.save(ctx, s.key("questions"), qs))
	}
	return store.ErrNotFound
}

// ===== Users and progress =====

func (s *Store) CreateUser(ctx context.Context, user *entities.User) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.save(ctx, s.key("user", user.ID), user); err != nil {
		return "", store.WrapWrite("create user", err)
	}
	return user.ID, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*entities.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var user entities.User
	found, err := s.load(ctx, s.key("user", id), &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *entities.User) error {
	if err := s.ready(); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()
	return store.WrapWrite("update user", s.save(ctx, s.key("user", user.ID), user))
}

func (s *Store) ProgressForUser(ctx context.Context, userID string) ([]entities.UserProgress, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	progress := []entities.UserProgress{}
	if _, err := s.load(ctx, s.key("progress", userID), &progress); err != nil {
		return nil, err
	}
	sort.Slice(progress, func(i, j int) bool { return progress[i].CategoryID < progress[j].CategoryID })
	return progress, nil
}

func (s *Store) UpsertProgress(ctx context.Context, p *entities.UserProgress) error {
	if err := s.ready(); err != nil {
		return err
	}
	progress := []entities.UserProgress{}
	if _, err := s.load(ctx, s.key("progress", p.UserID), &progress); err != nil {
		return store.WrapWrite("upsert progress", err)
	}
	replaced := false
	for i := range progress {
		if progress[i].CategoryID == p.CategoryID {
			progress[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		progress = append(progress, *p)
	}
	return store.WrapWrite("upsert progress", s.save(ctx, s.key("progress", p.UserID), progress))
}

// ===== Sessions =====

func (s *Store) CreateSession(ctx context.Context, session *entities.TestSession) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.StartTime.IsZero() {
		session.StartTime = time.Now().UTC()
	}
	session.Completed = false

	// Seed answer rows with empty answer fields.
	seeded := make([]entities.TestQuestion, 0, len(session.Questions))
	for _, q := range session.Questions {
		seeded = append(seeded, entities.TestQuestion{
			SessionID:  session.ID,
			QuestionID: q.QuestionID,
		})
	}
	session.Questions = seeded

	if err := s.save(ctx, s.key("session", session.ID), session); err != nil {
		return "", store.WrapWrite("create test session", err)
	}

	ids := []string{}
	if _, err := s.load(ctx, s.key("sessions", session.UserID), &ids); err != nil {
		return "", store.WrapWrite("create test session", err)
	}
	ids = append(ids, session.ID)
	if err := s.save(ctx, s.key("sessions", session.UserID), ids); err != nil {
		return "", store.WrapWrite("create test session", err)
	}
	return session.ID, nil
}

func (s *Store) SessionByID(ctx context.Context, id string) (*entities.TestSession, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var session entities.TestSession
	found, err := s.load(ctx, s.key("session", id), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, store.ErrNotFound
	}
	return &session, nil
}

func (s *Store) SessionsForUser(ctx context.Context, userID string) ([]entities.TestSession, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	ids := []string{}
	if _, err := s.load(ctx, s.key("sessions", userID), &ids); err != nil {
		return nil, err
	}
	sessions := make([]entities.TestSession, 0, len(ids))
	for _, id := range ids {
		session, err := s.SessionByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.After(sessions[j].StartTime) })
	return sessions, nil
}

func (s *Store) UpdateSession(ctx context.Context, id string, update store.SessionUpdate) error {
	if err := s.ready(); err != nil {
		return err
	}
	session, err := s.SessionByID(ctx, id)
	if err != nil {
		return err
	}
	if update.EndTime != nil {
		session.EndTime = update.EndTime
	}
	if update.Duration != nil {
		session.Duration = update.Duration
	}
	if update.CorrectAnswers != nil {
		session.CorrectAnswers = *update.CorrectAnswers
	}
	if update.Score != nil {
		session.Score = *update.Score
	}
	if update.Completed != nil {
		session.Completed = *update.Completed
	}
	if update.TimedOut != nil {
		session.TimedOut = *update.TimedOut
	}
	return store.WrapWrite("update test session", s.save(ctx, s.key("session", id), session))
}

func (s *Store) UpdateAnswer(ctx context.Context, sessionID, questionID string, answer entities.TestQuestion) error {
	if err := s.ready(); err != nil {
		return err
	}
	session, err := s.SessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	answer.SessionID = sessionID
	answer.QuestionID = questionID
	replaced := false
	for i := range session.Questions {
		if session.Questions[i].QuestionID == questionID {
			session.Questions[i] = answer
			replaced = true
			break
		}
	}
	if !replaced {
		session.Questions = append(session.Questions, answer)
	}
	return store.WrapWrite("update test answer", s.save(ctx, s.key("session", sessionID), session))
}

// ===== Bookmarks =====

func (s *Store) ToggleBookmark(ctx context.Context, userID, questionID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	ids := []string{}
	if _, err := s.load(ctx, s.key("bookmarks", userID), &ids); err != nil {
		return false, store.WrapWrite("toggle bookmark", err)
	}
	bookmarked := true
	next := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == questionID {
			bookmarked = false
			continue
		}
		next = append(next, id)
	}
	if bookmarked {
		next = append(next, questionID)
	}
	if err := s.save(ctx, s.key("bookmarks", userID), next); err != nil {
		return false, store.WrapWrite("toggle bookmark", err)
	}
	return bookmarked, nil
}

func (s *Store) IsBookmarked(ctx context.Context, userID, questionID string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	ids := []string{}
	if _, err := s.load(ctx, s.key("bookmarks", userID), &ids); err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == questionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) BookmarkedQuestions(ctx context.Context, userID string) ([]entities.Question, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	ids := []string{}
	if _, err := s.load(ctx, s.key("bookmarks", userID), &ids); err != nil {
		return nil, err
	}
	result := make([]entities.Question, 0, len(ids))
	for _, id := range ids {
		q, err := s.QuestionByID(ctx, id)
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

// ===== Analytics =====

func (s *Store) RecordDailyStats(ctx context.Context, userID string, stats entities.DailyStats) error {
	if err := s.ready(); err != nil {
		return err
	}
	day := time.Now().UTC().Format(dayFormat)
	row := map[string]any{
		"user_id":             userID,
		"day":                 day,
		"study_time":          stats.StudyTime,
		"questions_attempted": stats.QuestionsAttempted,
		"questions_correct":   stats.QuestionsCorrect,
		"categories_studied":  stats.CategoriesStudied,
	}
	return store.WrapWrite("record daily analytics", s.save(ctx, s.key("analytics", userID, day), row))
}

func (s *Store) WeeklyStats(ctx context.Context, userID string) (*entities.WeeklyStats, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	stats := &entities.WeeklyStats{}
	now := time.Now().UTC()
	for offset := 0; offset < 7; offset++ {
		day := now.AddDate(0, 0, -offset).Format(dayFormat)
		var row struct {
			StudyTime          int `json:"study_time"`
			QuestionsAttempted int `json:"questions_attempted"`
			QuestionsCorrect   int `json:"questions_correct"`
		}
		found, err := s.load(ctx, s.key("analytics", userID, day), &row)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		stats.DaysStudied++
		stats.TotalStudyTime += row.StudyTime
		stats.QuestionsAttempted += row.QuestionsAttempted
		stats.QuestionsCorrect += row.QuestionsCorrect
	}
	if stats.QuestionsAttempted > 0 {
		stats.AverageScore = float64(stats.QuestionsCorrect) / float64(stats.QuestionsAttempted) * 100
	}
	return stats, nil
}
