package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"invoice-dashboard-backend/internal/auth"
	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/testdb"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	db := testdb.Open(t, true)
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com", Password: string(hash),
	}).Error)

	jwtManager := auth.NewJWTManager("secret", time.Hour)
	h := NewAuthHandler(auth.NewPasswordAuthenticator(repository.NewUserRepository(db)), jwtManager, false)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r, jwtManager
}

func postLogin(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	r, jwtManager := newAuthRouter(t)

	rec := postLogin(r, url.Values{"email": {"USER@nextmail.com"}, "password": {"123456"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	claims, err := jwtManager.Validate(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "410544b2-4001-4271-9855-fec4b6a6442a", claims.UserID)
}

func TestLoginRejected(t *testing.T) {
	r, _ := newAuthRouter(t)

	for _, form := range []url.Values{
		{"email": {"user@nextmail.com"}, "password": {"654321"}},
		{"email": {"someone@nextmail.com"}, "password": {"123456"}},
		{},
	} {
		rec := postLogin(r, form)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials."}`, rec.Body.String())
		assert.Nil(t, sessionCookie(rec))
	}
}

type brokenAuthenticator struct{ err error }

func (b brokenAuthenticator) SignIn(context.Context, string, auth.Credentials) (*models.User, error) {
	return nil, b.err
}

func TestLoginFailures(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	form := url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}}

	r := gin.New()
	r.POST("/login", NewAuthHandler(brokenAuthenticator{&auth.Error{Type: auth.CallbackRouteError}}, jwtManager, false).Login)
	rec := postLogin(r, form)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Something went wrong."}`, rec.Body.String())

	r = gin.New()
	r.POST("/login", NewAuthHandler(brokenAuthenticator{errors.New("pool exhausted")}, jwtManager, false).Login)
	rec = postLogin(r, form)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"pool exhausted"}`, rec.Body.String())
}

func TestLoginRedirectTarget(t *testing.T) {
	r, _ := newAuthRouter(t)
	creds := func(target string) url.Values {
		return url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}, "redirectTo": {target}}
	}

	assert.Equal(t, "/dashboard/invoices?page=2", postLogin(r, creds("/dashboard/invoices?page=2")).Header().Get("Location"))
	assert.Equal(t, "/dashboard", postLogin(r, creds("https://evil.example")).Header().Get("Location"))
	assert.Equal(t, "/dashboard", postLogin(r, creds("//evil.example")).Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

type stubSeeder struct{ err error }

func (s stubSeeder) Run(context.Context) error { return s.err }

func TestSeedHandler(t *testing.T) {
	routeCache := cache.New()
	_, gen, _ := routeCache.Load("/dashboard/invoices", "k")
	routeCache.Store("/dashboard/invoices", "k", gen, []byte("old"))

	r := gin.New()
	r.GET("/seed", NewSeedHandler(stubSeeder{}, routeCache, "/dashboard/invoices").Seed)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seed", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Database seeded successfully"}`, rec.Body.String())
	_, _, ok := routeCache.Load("/dashboard/invoices", "k")
	assert.False(t, ok)

	r = gin.New()
	r.GET("/seed", NewSeedHandler(stubSeeder{errors.New("statement timeout")}, routeCache, "/dashboard/invoices").Seed)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seed", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"statement timeout"}`, rec.Body.String())
}
