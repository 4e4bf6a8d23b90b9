package kvstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)

	st := NewStore("redis://"+mr.Addr(), "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, st.Open(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

func makeQuestion(id, categoryID string, difficulty entities.Difficulty) *entities.Question {
	return &entities.Question{
		ID:         id,
		CategoryID: categoryID,
		Question:   "Which method detects subsurface porosity in welds?",
		Options: []entities.Option{
			{ID: "a", Text: "Visual testing"},
			{ID: "b", Text: "Radiographic testing"},
		},
		CorrectAnswer: "b",
		Difficulty:    difficulty,
	}
}

func TestStore_OperationsBeforeOpen(t *testing.T) {
	st := NewStore("redis://localhost:6379/0", "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	_, err := st.Categories(ctx)
	assert.ErrorIs(t, err, store.ErrNotInitialized)

	err = st.UpsertQuestion(ctx, makeQuestion("q1", "c1", entities.DifficultyEasy))
	assert.ErrorIs(t, err, store.ErrNotInitialized)
}

func TestStore_Open_BadURL(t *testing.T) {
	st := NewStore("not-a-url", "test", slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := st.Open(context.Background())
	var ie *store.InitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "redis", ie.Backend)
}

func TestStore_Categories(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertCategory(ctx, &entities.Category{ID: "c1", Name: "Safety"}))
	require.NoError(t, st.UpsertCategory(ctx, &entities.Category{ID: "c2", Name: "Materials"}))

	// Upserting again with the same id replaces.
	require.NoError(t, st.UpsertCategory(ctx, &entities.Category{ID: "c1", Name: "Safety & Quality"}))

	cats, err := st.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Materials", cats[0].Name)
	assert.Equal(t, "Safety & Quality", cats[1].Name)

	got, err := st.CategoryByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Safety & Quality", got.Name)

	_, err = st.CategoryByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_UpsertCategory_Validates(t *testing.T) {
	st := setupTestStore(t)

	err := st.UpsertCategory(context.Background(), &entities.Category{ID: "no_name"})
	var ve *store.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestStore_Subcategories(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertSubcategory(ctx, &entities.Subcategory{ID: "ut", CategoryID: "c1", Name: "Ultrasonic"}))
	require.NoError(t, st.UpsertSubcategory(ctx, &entities.Subcategory{ID: "rt", CategoryID: "c1", Name: "Radiographic"}))
	require.NoError(t, st.UpsertSubcategory(ctx, &entities.Subcategory{ID: "mt", CategoryID: "c2", Name: "Magnetic"}))

	subs, err := st.SubcategoriesByCategory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Radiographic", subs[0].Name)
}

func TestStore_QuestionsByCategory_OrderedByDifficulty(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertQuestion(ctx, makeQuestion("q_hard", "c1", entities.DifficultyHard)))
	require.NoError(t, st.UpsertQuestion(ctx, makeQuestion("q_easy", "c1", entities.DifficultyEasy)))
	require.NoError(t, st.UpsertQuestion(ctx, makeQuestion("q_medium", "c1", entities.DifficultyMedium)))

	qs, err := st.QuestionsByCategory(ctx, "c1", 0)
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "q_easy", qs[0].ID)
	assert.Equal(t, "q_medium", qs[1].ID)
	assert.Equal(t, "q_hard", qs[2].ID)

	qs, err = st.QuestionsByCategory(ctx, "c1", 2)
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestStore_UpsertQuestion_ReplacesOptions(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertQuestion(ctx, makeQuestion("q1", "c1", entities.DifficultyEasy)))

	q2 := makeQuestion("q1", "c1", entities.DifficultyEasy)
	q2.Options = []entities.Option{
		{ID: "x", Text: "New one"},
		{ID: "y", Text: "New two"},
		{ID: "z", Text: "New three"},
	}
	q2.CorrectAnswer = "z"
	require.NoError(t, st.UpsertQuestion(ctx, q2))

	got, err := st.QuestionByID(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, got.Options, 3)
	assert.Equal(t, "x", got.Options[0].ID)
	assert.Equal(t, 2, got.Options[2].OptionOrder)
	assert.Equal(t, "q1", got.Options[2].QuestionID)
}

func TestStore_UpsertQuestion_RoundTripsOptionOrder(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertQuestion(ctx, makeQuestion("q1", "c1", entities.DifficultyEasy)))

	got, err := st.QuestionByID(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, got.Options, 2)
	for i, opt := range got.Options {
		assert.Equal(t, i, opt.OptionOrder)
		assert.Equal(t, "q1", opt.QuestionID)
	}
}

func TestStore_UpsertQuestion_DoesNotMutateInput(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	q := makeQuestion("q1", "c1", entities.DifficultyEasy)
	require.NoError(t, st.UpsertQuestion(ctx, q))

	// Ownership and order stamps belong to the persisted copy only.
	assert.Empty(t, q.Options[1].QuestionID)
	assert.Zero(t, q.Options[1].OptionOrder)
}

func TestStore_UpsertQuestion_Validates(t *testing.T) {
	st := setupTestStore(t)

	q := makeQuestion("q1", "c1", entities.DifficultyEasy)
	q.CorrectAnswer = "nope"

	var ve *store.ValidationError
	require.ErrorAs(t, st.UpsertQuestion(context.Background(), q), &ve)
}

func TestStore_SearchQuestions(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	q1 := makeQuestion("q1", "c1", entities.DifficultyEasy)
	q1.Question = "What couplant is used in ultrasonic testing?"
	require.NoError(t, st.UpsertQuestion(ctx, q1))

	q2 := makeQuestion("q2", "c1", entities.DifficultyEasy)
	q2.Tags = entities.StringList{"Couplant"}
	require.NoError(t, st.UpsertQuestion(ctx, q2))

	q3 := makeQuestion("q3", "c1", entities.DifficultyEasy)
	require.NoError(t, st.UpsertQuestion(ctx, q3))

	qs, err := st.SearchQuestions(ctx, "couplant")
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestStore_RandomQuestions_BoundedByBankSize(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"q1", "q2", "q3"} {
		require.NoError(t, st.UpsertQuestion(ctx, makeQuestion(id, "c1", entities.DifficultyEasy)))
	}

	qs, err := st.RandomQuestions(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, qs, 3)

	qs, err = st.RandomQuestions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.NotEqual(t, qs[0].ID, qs[1].ID)
}

func TestStore_RecordQuestionResult(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertQuestion(ctx, makeQuestion("q1", "c1", entities.DifficultyEasy)))

	require.NoError(t, st.RecordQuestionResult(ctx, "q1", true, 10))
	require.NoError(t, st.RecordQuestionResult(ctx, "q1", false, 20))

	got, err := st.QuestionByID(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TimesAnswered)
	assert.Equal(t, 1, got.TimesCorrect)
	assert.InDelta(t, 15, got.AverageTime, 0.001)
	assert.NotNil(t, got.LastSeen)

	assert.ErrorIs(t, st.RecordQuestionResult(ctx, "missing", true, 5), store.ErrNotFound)
}

func TestStore_Users(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	id, err := st.CreateUser(ctx, &entities.User{Name: "Jordan", Email: "jordan@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	user, err := st.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", user.Name)

	user.DailyStudyGoal = 45
	require.NoError(t, st.UpdateUser(ctx, user))

	user, err = st.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 45, user.DailyStudyGoal)

	_, err = st.UserByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Progress(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertProgress(ctx, &entities.UserProgress{
		UserID: "u1", CategoryID: "c1", QuestionsAnswered: 5,
	}))
	require.NoError(t, st.UpsertProgress(ctx, &entities.UserProgress{
		UserID: "u1", CategoryID: "c1", QuestionsAnswered: 9,
	}))
	require.NoError(t, st.UpsertProgress(ctx, &entities.UserProgress{
		UserID: "u1", CategoryID: "c2", QuestionsAnswered: 1,
	}))

	rows, err := st.ProgressForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 9, rows[0].QuestionsAnswered)
}

func TestStore_Sessions(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	id, err := st.CreateSession(ctx, &entities.TestSession{
		UserID:         "u1",
		Type:           entities.SessionTypePractice,
		TotalQuestions: 2,
		Questions: []entities.TestQuestion{
			{QuestionID: "q1"},
			{QuestionID: "q2"},
		},
	})
	require.NoError(t, err)

	session, err := st.SessionByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, session.Completed)
	require.Len(t, session.Questions, 2)
	assert.Nil(t, session.Questions[0].UserAnswer)
	assert.Equal(t, id, session.Questions[0].SessionID)

	answer := "b"
	correct := true
	require.NoError(t, st.UpdateAnswer(ctx, id, "q1", entities.TestQuestion{
		UserAnswer: &answer,
		IsCorrect:  &correct,
		TimeSpent:  8,
	}))

	// A second submission replaces the first.
	answer2 := "a"
	wrong := false
	require.NoError(t, st.UpdateAnswer(ctx, id, "q1", entities.TestQuestion{
		UserAnswer: &answer2,
		IsCorrect:  &wrong,
		TimeSpent:  12,
	}))

	session, err = st.SessionByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, session.Questions, 2)
	for _, q := range session.Questions {
		if q.QuestionID == "q1" {
			require.NotNil(t, q.UserAnswer)
			assert.Equal(t, "a", *q.UserAnswer)
		}
	}

	score := 50.0
	completed := true
	require.NoError(t, st.UpdateSession(ctx, id, store.SessionUpdate{Score: &score, Completed: &completed}))

	session, err = st.SessionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 50.0, session.Score)
	assert.True(t, session.Completed)
	assert.False(t, session.TimedOut)

	sessions, err := st.SessionsForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	assert.ErrorIs(t, st.UpdateSession(ctx, "missing", store.SessionUpdate{Completed: &completed}), store.ErrNotFound)
	assert.ErrorIs(t, st.UpdateAnswer(ctx, "missing", "q1", entities.TestQuestion{}), store.ErrNotFound)
}

func TestStore_Bookmarks(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertQuestion(ctx, makeQuestion("q1", "c1", entities.DifficultyEasy)))

	bookmarked, err := st.ToggleBookmark(ctx, "u1", "q1")
	require.NoError(t, err)
	assert.True(t, bookmarked)

	state, err := st.IsBookmarked(ctx, "u1", "q1")
	require.NoError(t, err)
	assert.True(t, state)

	marked, err := st.BookmarkedQuestions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, marked, 1)
	assert.True(t, marked[0].IsBookmarked)

	bookmarked, err = st.ToggleBookmark(ctx, "u1", "q1")
	require.NoError(t, err)
	assert.False(t, bookmarked)

	state, err = st.IsBookmarked(ctx, "u1", "q1")
	require.NoError(t, err)
	assert.False(t, state)
}

func TestStore_Analytics(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.RecordDailyStats(ctx, "u1", entities.DailyStats{
		StudyTime:          20,
		QuestionsAttempted: 10,
		QuestionsCorrect:   5,
	}))

	// Same-day recording replaces.
	require.NoError(t, st.RecordDailyStats(ctx, "u1", entities.DailyStats{
		StudyTime:          40,
		QuestionsAttempted: 20,
		QuestionsCorrect:   10,
	}))

	stats, err := st.WeeklyStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DaysStudied)
	assert.Equal(t, 40, stats.TotalStudyTime)
	assert.Equal(t, 20, stats.QuestionsAttempted)
	assert.InDelta(t, 50, stats.AverageScore, 0.001)

	empty, err := st.WeeklyStats(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.DaysStudied)
}
