package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey is the session entry holding the authenticated user id.
const SessionUserKey = "userId"

const contextUserKey = "currentUserID"

// RequireAuth rejects requests without an authenticated session and
// stashes the user id on the context for handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get(SessionUserKey).(uint)
		if !ok || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
			return
		}
		c.Set(contextUserKey, id)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
