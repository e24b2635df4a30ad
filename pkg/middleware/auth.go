package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuhub/dish-service/internal/sessions"
)

// AdminSessionKey is the gin context key holding the *sessions.Session of a verified admin.
const AdminSessionKey = "adminSession"

// AdminVerifier resolves a session marker to a live session.
type AdminVerifier interface {
	Verify(ctx context.Context, raw string) (*sessions.Session, error)
}

// RequireAdmin rejects requests whose cookie does not carry a valid admin marker.
func RequireAdmin(ver AdminVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		sess, err := ver.Verify(c.Request.Context(), raw)
		if err != nil || sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		c.Set(AdminSessionKey, sess)
		c.Next()
	}
}

// AdminSession returns the session stored by RequireAdmin.
func AdminSession(c *gin.Context) *sessions.Session {
	v, ok := c.Get(AdminSessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*sessions.Session)
	return s
}
