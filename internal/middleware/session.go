package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"droneport/internal/models"
	"droneport/internal/session"
)

const (
	ContextUserKey  = "current_user"
	ContextTokenKey = "session_token"
)

type SessionReader interface {
	Get(ctx context.Context, token string) (models.SessionUser, error)
}

// Session resolves the cookie-carried token to its server-side session, if
// any, and exposes the user projection to downstream handlers. It never
// rejects a request; handlers that need a user decide that themselves.
func Session(cookieName string, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		c.Set(ContextTokenKey, token)

		user, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				_ = c.Error(err)
			}
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by Session, if present.
func CurrentUser(c *gin.Context) (models.SessionUser, bool) {
	userVal, exists := c.Get(ContextUserKey)
	if !exists {
		return models.SessionUser{}, false
	}
	user, ok := userVal.(models.SessionUser)
	return user, ok
}

// SessionToken returns the raw cookie token, whether or not it resolved to a
// live session.
func SessionToken(c *gin.Context) string {
	tokenVal, exists := c.Get(ContextTokenKey)
	if !exists {
		return ""
	}
	token, _ := tokenVal.(string)
	return token
}
