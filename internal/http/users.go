package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

type UsersController struct {
	store store.Store
}

func NewUsersController(st store.Store) *UsersController {
	return &UsersController{store: st}
}

func (controller *UsersController) Create(c *gin.Context) {
	var user entities.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := controller.store.CreateUser(c.Request.Context(), &user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"id": id})
}

func (controller *UsersController) GetByID(c *gin.Context) {
	user, err := controller.store.UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, user)
}

func (controller *UsersController) GetProgress(c *gin.Context) {
	progress, err := controller.store.ProgressForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"progress": progress})
}

func (controller *UsersController) UpsertProgress(c *gin.Context) {
	var progress entities.UserProgress
	if err := c.ShouldBindJSON(&progress); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	progress.UserID = c.Param("id")
	if err := controller.store.UpsertProgress(c.Request.Context(), &progress); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, progress)
}

func (controller *UsersController) ToggleBookmark(c *gin.Context) {
	bookmarked, err := controller.store.ToggleBookmark(c.Request.Context(), c.Param("id"), c.Param("questionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

func (controller *UsersController) GetBookmarks(c *gin.Context) {
	questions, err := controller.store.BookmarkedQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"questions": questions, "count": len(questions)})
}

func (controller *UsersController) RecordDailyStats(c *gin.Context) {
	var stats entities.DailyStats
	if err := c.ShouldBindJSON(&stats); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := controller.store.RecordDailyStats(c.Request.Context(), c.Param("id"), stats); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "recorded"})
}

func (controller *UsersController) GetWeeklyStats(c *gin.Context) {
	stats, err := controller.store.WeeklyStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, stats)
}
