package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndtprep/examtrainer/internal/database"
	"github.com/ndtprep/examtrainer/internal/entities"
)

func setupTestStore(t *testing.T) (*database.Store, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	st := database.NewStore(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, st.Open(context.Background()))

	cleanup := func() {
		st.Close()
		os.Remove(dbPath)
	}
	return st, cleanup
}

func seedQuestion(t *testing.T, st *database.Store, id string) {
	t.Helper()
	require.NoError(t, st.UpsertQuestion(context.Background(), &entities.Question{
		ID:         id,
		CategoryID: "ndt_methods",
		Question:   "Which method uses high-frequency sound waves?",
		Options: []entities.Option{
			{ID: "a", Text: "Radiographic testing"},
			{ID: "b", Text: "Ultrasonic testing"},
		},
		CorrectAnswer: "b",
		Difficulty:    entities.DifficultyEasy,
	}))
}

func TestQuestionsController_GetByCategory(t *testing.T) {
	t.Run("returns questions with count", func(t *testing.T) {
		st, cleanup := setupTestStore(t)
		defer cleanup()
		seedQuestion(t, st, "q1")
		seedQuestion(t, st, "q2")

		router := NewRouter(st)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/categories/ndt_methods/questions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(2), response["count"])
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		st, cleanup := setupTestStore(t)
		defer cleanup()

		router := NewRouter(st)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/categories/ndt_methods/questions?limit=-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQuestionsController_GetByID(t *testing.T) {
	t.Run("returns a question with ordered options", func(t *testing.T) {
		st, cleanup := setupTestStore(t)
		defer cleanup()
		seedQuestion(t, st, "q1")

		router := NewRouter(st)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/questions/q1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var question entities.Question
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))
		require.Len(t, question.Options, 2)
		assert.Equal(t, "a", question.Options[0].ID)
	})

	t.Run("missing question maps to 404", func(t *testing.T) {
		st, cleanup := setupTestStore(t)
		defer cleanup()

		router := NewRouter(st)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/questions/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuestionsController_Upsert(t *testing.T) {
	t.Run("persists a valid question", func(t *testing.T) {
		st, cleanup := setupTestStore(t)
		defer cleanup()

		router := NewRouter(st)

		body := `{
			"id": "q_new",
			"category_id": "ndt_methods",
			"question": "What is MT used for?",
			"options": [
				{"id": "a", "text": "Surface cracks in ferromagnetic parts"},
				{"id": "b", "text": "Internal voids in plastics"}
			],
			"correct_answer": "a",
			"difficulty": "medium"
		}`

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/questions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		got, err := st.QuestionByID(context.Background(), "q_new")
		require.NoError(t, err)
		assert.Equal(t, "a", got.CorrectAnswer)
	})

	t.Run("validation failure maps to 400", func(t *testing.T) {
		st, cleanup := setupTestStore(t)
		defer cleanup()

		router := NewRouter(st)

		body := `{
			"id": "q_bad",
			"category_id": "ndt_methods",
			"question": "Broken",
			"options": [
				{"id": "a", "text": "One"},
				{"id": "b", "text": "Two"}
			],
			"correct_answer": "z",
			"difficulty": "easy"
		}`

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/questions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQuestionsController_Search(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()
	seedQuestion(t, st, "q1")

	router := NewRouter(st)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/questions/search?q=sound", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Missing query parameter is a client error.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/questions/search", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	router := NewRouter(st)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
