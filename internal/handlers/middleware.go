package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionTokenKey = "session_token"

	contextUserIDKey = "user_id"
	contextTokenKey  = "session_token"
)

// AuthRequired resolves the session cookie to a user id and aborts with 401
// and the given message when there is no live session.
func (h *Handler) AuthRequired(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		userID, ok := h.sessions.Resolve(c.Request.Context(), token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Set(contextTokenKey, token)
		c.Next()
	}
}

// sessionToken returns "" when the cookie is missing or fails signature
// verification.
func sessionToken(c *gin.Context) string {
	token, _ := sessions.Default(c).Get(sessionTokenKey).(string)
	return token
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(contextUserIDKey).(uint)
}
