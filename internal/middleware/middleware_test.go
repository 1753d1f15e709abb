package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio_backend/internal/auth"
	"portfolio_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORSMiddleware_PreflightIs204(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/api/skills", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/anything", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/skills", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequireAdmin(t *testing.T) {
	gate := auth.NewStaticGate(auth.Credentials{Email: "a@b.c", Password: "pw"}, false)

	r := gin.New()
	r.POST("/api/skills", RequireAdmin(gate), func(c *gin.Context) {
		assert.True(t, IsAdmin(c))
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/skills", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized","code":"UNAUTHORIZED"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/skills", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "true"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

type failingProvider struct{}

func (failingProvider) DB(ctx context.Context) (*gorm.DB, error) {
	return nil, errors.New("connection refused")
}

func TestDBMiddleware_UpstreamFailureIsGeneric500(t *testing.T) {
	r := gin.New()
	r.Use(DBMiddleware(failingProvider{}))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Get(string(contextkeys.DBContextKey))
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
