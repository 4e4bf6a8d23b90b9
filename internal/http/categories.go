package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndtprep/examtrainer/internal/entities"
	"github.com/ndtprep/examtrainer/internal/store"
)

type CategoriesController struct {
	store store.Store
}

func NewCategoriesController(st store.Store) *CategoriesController {
	return &CategoriesController{store: st}
}

func (controller *CategoriesController) GetAll(c *gin.Context) {
	categories, err := controller.store.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func (controller *CategoriesController) GetByID(c *gin.Context) {
	category, err := controller.store.CategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, category)
}

func (controller *CategoriesController) Upsert(c *gin.Context) {
	var category entities.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := controller.store.UpsertCategory(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, category)
}
