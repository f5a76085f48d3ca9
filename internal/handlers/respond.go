package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"tasktracker/internal/auth"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// actorID returns the authenticated user id as the actor pointer threaded
// through the core.
func actorID(c *gin.Context) *int64 {
	id := auth.UserIDFromContext(c)
	return &id
}

// serviceError maps core sentinels to HTTP codes. Validation reasons pass
// through; storage errors stay opaque.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
