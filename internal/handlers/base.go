package handlers

import (
	"rereddit/internal/middleware"
	"rereddit/internal/models"

	"github.com/gin-gonic/gin"
)

// JSONError writes the uniform error body used across the API.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// currentUser returns the session user loaded by middleware.LoadUser, or nil
// for anonymous requests.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// currentUserID is currentUser for callers that only need the id; 0 means
// anonymous.
func currentUserID(c *gin.Context) uint {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return 0
}
