package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrboots/storefront/pkg/auth"
	"github.com/rrboots/storefront/pkg/middleware"
	"github.com/rrboots/storefront/pkg/session"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func sessionCookie(t *testing.T, d session.Data) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, session.Write(rec, d))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestAdminGate(t *testing.T) {
	next, _ := okHandler()
	gate := middleware.AdminGate(next)

	t.Run("no cookie on admin page redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("cookie on login page redirects to dashboard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		req.AddCookie(sessionCookie(t, session.New(time.Now())))
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
	})

	t.Run("no cookie on login page passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("gate checks presence only, even expired cookies pass", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(sessionCookie(t, session.New(time.Now().Add(-3*time.Hour))))
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("valid cookie passes", func(t *testing.T) {
		next, called := okHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		req.AddCookie(sessionCookie(t, session.New(time.Now())))
		rec := httptest.NewRecorder()
		middleware.RequireAdmin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *called)
	})

	t.Run("no credentials is unauthorized", func(t *testing.T) {
		next, called := okHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		rec := httptest.NewRecorder()
		middleware.RequireAdmin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})

	t.Run("expired cookie is unauthorized", func(t *testing.T) {
		next, _ := okHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		req.AddCookie(sessionCookie(t, session.New(time.Now().Add(-3*time.Hour))))
		rec := httptest.NewRecorder()
		middleware.RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer token passes", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		token, err := auth.GenerateToken("admin")
		require.NoError(t, err)

		next, _ := okHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		middleware.RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		next, _ := okHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		middleware.RequireAdmin(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
