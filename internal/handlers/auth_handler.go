package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoice-dashboard-backend/internal/auth"
	"invoice-dashboard-backend/internal/middleware"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type AuthHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	secureCookie  bool
}

func NewAuthHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		secureCookie:  secureCookie,
	}
}

// Login handles POST /login with email and password form fields.
func (h *AuthHandler) Login(c *gin.Context) {
	creds := auth.Credentials{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}

	user, msg, err := auth.Authenticate(c.Request.Context(), h.authenticator, c.PostForm("prevState"), creds)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if msg != "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": msg})
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": auth.MsgSomethingWentWrong})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.jwtManager.TokenDuration().Seconds()), "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, safeRedirect(c.PostForm("redirectTo")))
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusSeeOther, LoginPath)
}

// safeRedirect only allows local absolute paths.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return DashboardPath
	}
	return target
}
