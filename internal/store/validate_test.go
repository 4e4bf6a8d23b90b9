package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtprep/examtrainer/internal/entities"
)

func validQuestion() *entities.Question {
	return &entities.Question{
		ID:         "q1",
		CategoryID: "ndt_methods",
		Question:   "Which method uses high-frequency sound waves?",
		Options: []entities.Option{
			{ID: "a", Text: "Radiographic testing"},
			{ID: "b", Text: "Ultrasonic testing"},
		},
		CorrectAnswer: "b",
		Difficulty:    entities.DifficultyEasy,
	}
}

func TestValidateQuestion(t *testing.T) {
	t.Run("valid question passes", func(t *testing.T) {
		assert.NoError(t, ValidateQuestion(validQuestion()))
	})

	t.Run("correct answer must match an option", func(t *testing.T) {
		q := validQuestion()
		q.CorrectAnswer = "z"

		err := ValidateQuestion(q)
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "correct_answer", ve.Field)
	})

	t.Run("duplicate option ids are rejected", func(t *testing.T) {
		q := validQuestion()
		q.Options = append(q.Options, entities.Option{ID: "b", Text: "Duplicate"})

		var ve *ValidationError
		require.ErrorAs(t, ValidateQuestion(q), &ve)
		assert.Equal(t, "correct_answer", ve.Field)
	})

	t.Run("fewer than two options is rejected", func(t *testing.T) {
		q := validQuestion()
		q.Options = q.Options[:1]
		q.CorrectAnswer = "a"

		var ve *ValidationError
		require.ErrorAs(t, ValidateQuestion(q), &ve)
	})

	t.Run("unknown difficulty is rejected", func(t *testing.T) {
		q := validQuestion()
		q.Difficulty = "extreme"

		var ve *ValidationError
		require.ErrorAs(t, ValidateQuestion(q), &ve)
	})
}

func TestValidateCategory(t *testing.T) {
	t.Run("valid category passes", func(t *testing.T) {
		cat := &entities.Category{ID: "ndt_methods", Name: "NDT Methods"}
		assert.NoError(t, ValidateCategory(cat))
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		cat := &entities.Category{ID: "ndt_methods"}

		var ve *ValidationError
		require.ErrorAs(t, ValidateCategory(cat), &ve)
		assert.Equal(t, "category", ve.Entity)
	})
}

func TestWrapWrite(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapWrite("op", nil))
	})

	t.Run("validation errors pass through unwrapped", func(t *testing.T) {
		inner := &ValidationError{Entity: "question", Field: "id", Reason: "failed required check"}
		err := WrapWrite("op", inner)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		var we *WriteError
		assert.False(t, errors.As(err, &we))
	})

	t.Run("write errors are not double wrapped", func(t *testing.T) {
		inner := WrapWrite("inner op", assert.AnError)
		outer := WrapWrite("outer op", inner)
		assert.Equal(t, inner, outer)
	})
}
