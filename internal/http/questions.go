package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

type QuestionsController struct {
	store store.Store
}

func NewQuestionsController(st store.Store) *QuestionsController {
	return &QuestionsController{store: st}
}

func (controller *QuestionsController) GetByCategory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	questions, err := controller.store.QuestionsByCategory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

func (controller *QuestionsController) GetByID(c *gin.Context) {
	question, err := controller.store.QuestionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, question)
}

func (controller *QuestionsController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}
	questions, err := controller.store.SearchQuestions(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

func (controller *QuestionsController) GetRandom(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	questions, err := controller.store.RandomQuestions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

func (controller *QuestionsController) Upsert(c *gin.Context) {
	var question entities.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := controller.store.UpsertQuestion(c.Request.Context(), &question); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, question)
}
