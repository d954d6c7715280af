package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-dashboard-backend/internal/auth"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(m *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/dashboard", RequireSession(m, "/login"), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	r.POST("/dashboard/invoices", RequireSession(m, "/login"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireSession(t *testing.T) {
	m := auth.NewJWTManager("secret", time.Hour)
	r := protectedRouter(m)
	token, err := m.Generate(&models.User{ID: "u1", Email: "user@nextmail.com"})
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("browser without session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("json client without session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authorization token required"}`, rec.Body.String())
	})

	t.Run("forged token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/dashboard/invoices", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"invalid or expired token"}`, rec.Body.String())
	})
}

func TestRequestLoggerAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	m := metrics.New()
	r := gin.New()
	r.Use(RequestLogger(logging.New(&buf, slog.LevelInfo)), Metrics(m))
	r.GET("/api/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "/api/health")

	out := httptest.NewRecorder()
	m.Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, out.Body.String(), `dashboard_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}
