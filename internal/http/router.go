package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndtprep/examtrainer/internal/store"
)

// NewRouter wires the controllers onto a gin engine. The store is the
// single collaborator; everything here is a thin translation layer.
func NewRouter(st store.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	categories := NewCategoriesController(st)
	questions := NewQuestionsController(st)
	users := NewUsersController(st)
	sessions := NewSessionsController(st)

	router.GET("/health", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/categories", categories.GetAll)
		api.GET("/categories/:id", categories.GetByID)
		api.PUT("/categories", categories.Upsert)
		api.GET("/categories/:id/questions", questions.GetByCategory)

		api.GET("/questions/search", questions.Search)
		api.GET("/questions/random", questions.GetRandom)
		api.GET("/questions/:id", questions.GetByID)
		api.PUT("/questions", questions.Upsert)

		api.POST("/users", users.Create)
		api.GET("/users/:id", users.GetByID)
		api.GET("/users/:id/progress", users.GetProgress)
		api.PUT("/users/:id/progress", users.UpsertProgress)
		api.POST("/users/:id/bookmarks/:questionID/toggle", users.ToggleBookmark)
		api.GET("/users/:id/bookmarks", users.GetBookmarks)
		api.POST("/users/:id/analytics", users.RecordDailyStats)
		api.GET("/users/:id/analytics/weekly", users.GetWeeklyStats)
		api.GET("/users/:id/sessions", sessions.GetForUser)

		api.POST("/sessions", sessions.Create)
		api.GET("/sessions/:id", sessions.GetByID)
		api.PATCH("/sessions/:id", sessions.Update)
		api.PUT("/sessions/:id/answers/:questionID", sessions.UpdateAnswer)
	}

	return router
}
