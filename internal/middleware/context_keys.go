package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey     = contextKey("userID")
	workplacesKey = contextKey("workplaces")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx retrieves the authenticated user ID from a standard context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// workplacesFromCtx returns the workplace IDs granted by the token, nil when the token is unrestricted.
func workplacesFromCtx(ctx context.Context) []string {
	workplaces, _ := ctx.Value(workplacesKey).([]string)
	return workplaces
}
