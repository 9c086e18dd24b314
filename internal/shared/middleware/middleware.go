package middleware

import (
	"net/http"
	"strings"

	"cineseat/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserID and ContextConnectionID are the gin context keys the
	// session middleware populates for downstream controllers.
	ContextUserID       = "user_id"
	ContextConnectionID = "connection_id"

	headerUserID       = "X-User-ID"
	headerConnectionID = "X-Connection-ID"
)

// RequireSession extracts the authenticated identity the upstream
// gateway attaches to each request. Token verification happens at the
// gateway; by the time a request reaches this service the headers are
// trusted.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawUserID := strings.TrimSpace(c.GetHeader(headerUserID))
		if rawUserID == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "X-User-ID header is required", nil, nil)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "X-User-ID must be a valid UUID", nil, nil)
			c.Abort()
			return
		}

		connectionID := strings.TrimSpace(c.GetHeader(headerConnectionID))
		if connectionID == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "X-Connection-ID header is required", nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextConnectionID, connectionID)
		c.Next()
	}
}

// SessionUserID returns the user id set by RequireSession.
func SessionUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

// SessionConnectionID returns the connection id set by RequireSession.
func SessionConnectionID(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextConnectionID)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
