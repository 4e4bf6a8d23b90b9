package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndtprep/examtrainer/internal/store"
)

// respondError maps storage errors onto HTTP statuses in one place so the
// controllers stay thin.
func respondError(c *gin.Context, err error) {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &ve):
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, store.ErrNotInitialized):
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "storage not ready"})
	default:
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
