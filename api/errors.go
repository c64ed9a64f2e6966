package api

import (
	"errors"
	"net/http"

	"github.com/Njoroge1994/garihire/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto the response codes of the API
// contract. Anything unrecognized collapses to a generic 500 so internal
// detail never reaches the caller.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
