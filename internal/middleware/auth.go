package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/auth"
)

// SessionCookie holds the session token issued at login.
const SessionCookie = "session"

const (
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "user_id"
	// EmailKey is the gin context key for the authenticated user's email.
	EmailKey = "email"
)

// GetUserID returns the authenticated user ID, or "" before RequireSession.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// RequireSession rejects requests without a valid session token. The token is
// read from the session cookie, falling back to a Bearer Authorization header.
// Browser GETs are redirected to loginPath; everything else gets 401.
func RequireSession(jwtManager *auth.JWTManager, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwtManager.Validate(tokenFrom(c))
		if err != nil {
			if wantsJSON(c) || c.Request.Method != http.MethodGet {
				msg := auth.ErrInvalidToken.Error()
				if errors.Is(err, auth.ErrMissingToken) {
					msg = auth.ErrMissingToken.Error()
				}
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
				return
			}
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
