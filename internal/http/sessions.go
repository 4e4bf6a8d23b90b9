package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

type SessionsController struct {
	store store.Store
}

func NewSessionsController(st store.Store) *SessionsController {
	return &SessionsController{store: st}
}

func (controller *SessionsController) Create(c *gin.Context) {
	var session entities.TestSession
	if err := c.ShouldBindJSON(&session); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := controller.store.CreateSession(c.Request.Context(), &session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"id": id})
}

func (controller *SessionsController) GetByID(c *gin.Context) {
	session, err := controller.store.SessionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, session)
}

func (controller *SessionsController) GetForUser(c *gin.Context) {
	sessions, err := controller.store.SessionsForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// Update applies a partial patch; absent fields stay untouched.
func (controller *SessionsController) Update(c *gin.Context) {
	var update store.SessionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := controller.store.UpdateSession(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "updated"})
}

// UpdateAnswer upserts one answer row. The session-level score and correct
// count are the caller's to maintain via Update.
func (controller *SessionsController) UpdateAnswer(c *gin.Context) {
	var answer entities.TestQuestion
	if err := c.ShouldBindJSON(&answer); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := controller.store.UpdateAnswer(c.Request.Context(), c.Param("id"), c.Param("questionID"), answer)
	if err != nil {
		respondError(c, err)
		return
	}

	if answer.IsCorrect != nil {
		if err := controller.store.RecordQuestionResult(c.Request.Context(), c.Param("questionID"), *answer.IsCorrect, answer.TimeSpent); err != nil {
			respondError(c, err)
			return
		}
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "recorded"})
}
